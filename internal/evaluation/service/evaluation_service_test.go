package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	decisionsdomain "github.com/decisio-app/decisio-backend/internal/decisions/domain"
	"github.com/decisio-app/decisio-backend/internal/evaluation/domain"
	"github.com/decisio-app/decisio-backend/internal/evaluation/service"
	contextdomain "github.com/decisio-app/decisio-backend/internal/projectcontext/domain"
)

type fakeDecisions struct {
	decisions map[uuid.UUID]*decisionsdomain.Decision
}

func (f *fakeDecisions) FindByID(_ context.Context, id uuid.UUID) (*decisionsdomain.Decision, error) {
	if d, ok := f.decisions[id]; ok {
		return d, nil
	}
	return nil, &decisionsdomain.NotFoundError{ID: id}
}

type fakeContexts struct {
	current *contextdomain.ProjectContext
}

func (f *fakeContexts) FindLatest(_ context.Context) (*contextdomain.ProjectContext, error) {
	if f.current == nil {
		return nil, contextdomain.ErrNotFound
	}
	return f.current, nil
}

type fakeSnapshots struct {
	byDecision map[uuid.UUID][]domain.ContextSnapshot
}

func (f *fakeSnapshots) Insert(_ context.Context, decisionID uuid.UUID, req *domain.CreateSnapshotRequest) (*domain.ContextSnapshot, error) {
	s := domain.ContextSnapshot{
		ID:                      uuid.New(),
		DecisionID:              decisionID,
		TeamSizeAtDecision:      req.TeamSizeAtDecision,
		ExpectedUsersAtDecision: req.ExpectedUsersAtDecision,
		TimelineAtDecision:      req.TimelineAtDecision,
		Assumptions:             req.Assumptions,
		CreatedAt:               time.Now().UTC(),
	}
	f.byDecision[decisionID] = append(f.byDecision[decisionID], s)
	return &s, nil
}

func (f *fakeSnapshots) FindLatestByDecision(_ context.Context, decisionID uuid.UUID) (*domain.ContextSnapshot, error) {
	snaps := f.byDecision[decisionID]
	if len(snaps) == 0 {
		return nil, &domain.SnapshotNotFoundError{DecisionID: decisionID}
	}
	latest := snaps[len(snaps)-1]
	return &latest, nil
}

func (f *fakeSnapshots) ListByDecision(_ context.Context, decisionID uuid.UUID) ([]domain.ContextSnapshot, error) {
	snaps := f.byDecision[decisionID]
	out := make([]domain.ContextSnapshot, 0, len(snaps))
	for i := len(snaps) - 1; i >= 0; i-- {
		out = append(out, snaps[i])
	}
	return out, nil
}

type fakeEvaluations struct {
	records []domain.Evaluation
}

func (f *fakeEvaluations) Insert(_ context.Context, ev *domain.Evaluation) (*domain.Evaluation, error) {
	stored := *ev
	stored.ID = uuid.New()
	stored.EvaluatedAt = time.Now().UTC()
	f.records = append(f.records, stored)
	return &stored, nil
}

func (f *fakeEvaluations) ListByDecision(_ context.Context, decisionID uuid.UUID) ([]domain.Evaluation, error) {
	out := make([]domain.Evaluation, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].DecisionID == decisionID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

// fakeTxRunner just hands the wired stores to fn; there is no transaction to
// manage in memory.
type fakeTxRunner struct {
	stores service.Stores
}

func (f *fakeTxRunner) WithinTx(_ context.Context, fn func(service.Stores) error) error {
	return fn(f.stores)
}

type fixture struct {
	svc         *service.EvaluationService
	decisions   *fakeDecisions
	contexts    *fakeContexts
	snapshots   *fakeSnapshots
	evaluations *fakeEvaluations
}

func newFixture() *fixture {
	f := &fixture{
		decisions:   &fakeDecisions{decisions: map[uuid.UUID]*decisionsdomain.Decision{}},
		contexts:    &fakeContexts{},
		snapshots:   &fakeSnapshots{byDecision: map[uuid.UUID][]domain.ContextSnapshot{}},
		evaluations: &fakeEvaluations{},
	}
	stores := service.Stores{
		Decisions:   f.decisions,
		Contexts:    f.contexts,
		Snapshots:   f.snapshots,
		Evaluations: f.evaluations,
	}
	f.svc = service.NewEvaluationService(&fakeTxRunner{stores: stores}, stores)
	return f
}

func (f *fixture) addDecision() uuid.UUID {
	id := uuid.New()
	f.decisions.decisions[id] = &decisionsdomain.Decision{
		ID:              id,
		Title:           "Adopt event sourcing",
		Description:     "Move the order pipeline to an event log",
		DecisionType:    decisionsdomain.TypeArchitecture,
		ConfidenceLevel: decisionsdomain.ConfidenceMedium,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	return id
}

func (f *fixture) setContext(team, users, timeline int) {
	f.contexts.current = &contextdomain.ProjectContext{
		ID:             uuid.New(),
		TeamSize:       team,
		ExpectedUsers:  users,
		TimelineMonths: timeline,
		UpdatedAt:      time.Now().UTC(),
	}
}

func (f *fixture) addSnapshot(t *testing.T, decisionID uuid.UUID, team, users, timeline int) {
	t.Helper()
	_, err := f.svc.CreateSnapshot(context.Background(), decisionID, &domain.CreateSnapshotRequest{
		TeamSizeAtDecision:      team,
		ExpectedUsersAtDecision: users,
		TimelineAtDecision:      timeline,
	})
	require.NoError(t, err)
}

func TestEvaluate_DecisionNotFound(t *testing.T) {
	f := newFixture()
	f.setContext(10, 1000, 6)

	missing := uuid.New()
	_, err := f.svc.Evaluate(context.Background(), missing)
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("Decision with id %s not found", missing), err.Error())
	assert.Empty(t, f.evaluations.records, "failed evaluation must not write a record")
}

func TestEvaluate_NoProjectContext(t *testing.T) {
	f := newFixture()
	id := f.addDecision()

	_, err := f.svc.Evaluate(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, "No project context found. Please set project context first.", err.Error())
	assert.Empty(t, f.evaluations.records)
}

func TestEvaluate_NoSnapshot(t *testing.T) {
	f := newFixture()
	f.setContext(10, 1000, 6)
	id := f.addDecision()

	_, err := f.svc.Evaluate(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("No context snapshot found for decision %s. Please create a snapshot first.", id), err.Error())
	assert.Empty(t, f.evaluations.records)
}

func TestEvaluate_Success(t *testing.T) {
	f := newFixture()
	f.setContext(16, 1000, 6)
	id := f.addDecision()
	f.addSnapshot(t, id, 10, 1000, 6)

	ev, err := f.svc.Evaluate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, ev.DecisionID)
	assert.Equal(t, 30, ev.DriftScore)
	assert.Equal(t, domain.RiskLow, ev.RiskLevel)
	assert.Equal(t, "Team size changed by 60.0%. Score: 30/100.", ev.Explanation)
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.False(t, ev.EvaluatedAt.IsZero())
}

func TestEvaluate_UsesLatestSnapshot(t *testing.T) {
	f := newFixture()
	f.setContext(10, 1000, 6)
	id := f.addDecision()
	f.addSnapshot(t, id, 2, 100, 2)
	f.addSnapshot(t, id, 10, 1000, 6)

	// Latest snapshot matches the current context exactly.
	ev, err := f.svc.Evaluate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, ev.DriftScore)
	assert.Equal(t, "No significant drift detected. Score: 0/100.", ev.Explanation)
}

func TestEvaluate_AppendsHistory(t *testing.T) {
	f := newFixture()
	f.setContext(10, 250, 12)
	id := f.addDecision()
	f.addSnapshot(t, id, 10, 100, 12)

	first, err := f.svc.Evaluate(context.Background(), id)
	require.NoError(t, err)
	second, err := f.svc.Evaluate(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first.DriftScore, second.DriftScore)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.Explanation, second.Explanation)
	assert.NotEqual(t, first.ID, second.ID, "each call appends its own audit record")

	history, err := f.svc.ListEvaluations(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestCreateSnapshot_Validation(t *testing.T) {
	f := newFixture()
	id := f.addDecision()

	t.Run("rejects non-positive fields", func(t *testing.T) {
		_, err := f.svc.CreateSnapshot(context.Background(), id, &domain.CreateSnapshotRequest{
			TeamSizeAtDecision:      0,
			ExpectedUsersAtDecision: 100,
			TimelineAtDecision:      6,
		})
		assert.ErrorIs(t, err, domain.ErrNonPositiveSnapshotField)
	})

	t.Run("rejects unknown decision", func(t *testing.T) {
		missing := uuid.New()
		_, err := f.svc.CreateSnapshot(context.Background(), missing, &domain.CreateSnapshotRequest{
			TeamSizeAtDecision:      5,
			ExpectedUsersAtDecision: 100,
			TimelineAtDecision:      6,
		})
		var notFound *decisionsdomain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestListSnapshots_NewestFirst(t *testing.T) {
	f := newFixture()
	id := f.addDecision()
	f.addSnapshot(t, id, 2, 100, 2)
	f.addSnapshot(t, id, 10, 1000, 6)

	snaps, err := f.svc.ListSnapshots(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 10, snaps[0].TeamSizeAtDecision)
	assert.Equal(t, 2, snaps[1].TeamSizeAtDecision)
}
