package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	decisionsdomain "github.com/decisio-app/decisio-backend/internal/decisions/domain"
	"github.com/decisio-app/decisio-backend/internal/evaluation/domain"
	"github.com/decisio-app/decisio-backend/internal/evaluation/drift"
	contextdomain "github.com/decisio-app/decisio-backend/internal/projectcontext/domain"
)

// DecisionStore looks up decisions by id.
type DecisionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*decisionsdomain.Decision, error)
}

// ContextStore looks up the current (latest) project context.
type ContextStore interface {
	FindLatest(ctx context.Context) (*contextdomain.ProjectContext, error)
}

// SnapshotStore persists and queries context snapshots.
type SnapshotStore interface {
	Insert(ctx context.Context, decisionID uuid.UUID, req *domain.CreateSnapshotRequest) (*domain.ContextSnapshot, error)
	FindLatestByDecision(ctx context.Context, decisionID uuid.UUID) (*domain.ContextSnapshot, error)
	ListByDecision(ctx context.Context, decisionID uuid.UUID) ([]domain.ContextSnapshot, error)
}

// EvaluationStore appends and queries evaluation records.
type EvaluationStore interface {
	Insert(ctx context.Context, ev *domain.Evaluation) (*domain.Evaluation, error)
	ListByDecision(ctx context.Context, decisionID uuid.UUID) ([]domain.Evaluation, error)
}

// Stores bundles everything one evaluation needs to read and write.
type Stores struct {
	Decisions   DecisionStore
	Contexts    ContextStore
	Snapshots   SnapshotStore
	Evaluations EvaluationStore
}

// TxRunner executes fn with stores bound to a single transaction, so the
// reads and the final insert of one evaluation share one consistent view.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(Stores) error) error
}

// EvaluationService orchestrates drift evaluations and owns snapshot and
// evaluation history access.
type EvaluationService struct {
	tx     TxRunner
	stores Stores
}

func NewEvaluationService(tx TxRunner, stores Stores) *EvaluationService {
	return &EvaluationService{tx: tx, stores: stores}
}

// Evaluate loads the decision, the current context, and the newest snapshot,
// scores the drift, and appends one evaluation record. Repeated calls with
// unchanged data append further records on purpose: each one is a
// point-in-time audit entry.
func (s *EvaluationService) Evaluate(ctx context.Context, decisionID uuid.UUID) (*domain.Evaluation, error) {
	var out *domain.Evaluation

	err := s.tx.WithinTx(ctx, func(st Stores) error {
		if _, err := st.Decisions.FindByID(ctx, decisionID); err != nil {
			return err
		}

		current, err := st.Contexts.FindLatest(ctx)
		if errors.Is(err, contextdomain.ErrNotFound) {
			return domain.ErrNoProjectContext
		}
		if err != nil {
			return err
		}

		snapshot, err := st.Snapshots.FindLatestByDecision(ctx, decisionID)
		if err != nil {
			return err
		}

		result := drift.Score(
			drift.Values{
				TeamSize:       current.TeamSize,
				ExpectedUsers:  current.ExpectedUsers,
				TimelineMonths: current.TimelineMonths,
			},
			drift.Values{
				TeamSize:       snapshot.TeamSizeAtDecision,
				ExpectedUsers:  snapshot.ExpectedUsersAtDecision,
				TimelineMonths: snapshot.TimelineAtDecision,
			},
		)

		out, err = st.Evaluations.Insert(ctx, &domain.Evaluation{
			DecisionID:  decisionID,
			DriftScore:  result.Score,
			RiskLevel:   result.Risk,
			Explanation: result.Explanation,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSnapshot captures the context values in effect for a decision.
func (s *EvaluationService) CreateSnapshot(ctx context.Context, decisionID uuid.UUID, req *domain.CreateSnapshotRequest) (*domain.ContextSnapshot, error) {
	if req.TeamSizeAtDecision <= 0 || req.ExpectedUsersAtDecision <= 0 || req.TimelineAtDecision <= 0 {
		return nil, domain.ErrNonPositiveSnapshotField
	}

	if _, err := s.stores.Decisions.FindByID(ctx, decisionID); err != nil {
		return nil, err
	}

	return s.stores.Snapshots.Insert(ctx, decisionID, req)
}

// ListSnapshots returns a decision's snapshots, newest first.
func (s *EvaluationService) ListSnapshots(ctx context.Context, decisionID uuid.UUID) ([]domain.ContextSnapshot, error) {
	if _, err := s.stores.Decisions.FindByID(ctx, decisionID); err != nil {
		return nil, err
	}
	return s.stores.Snapshots.ListByDecision(ctx, decisionID)
}

// ListEvaluations returns a decision's evaluation history, newest first.
func (s *EvaluationService) ListEvaluations(ctx context.Context, decisionID uuid.UUID) ([]domain.Evaluation, error) {
	if _, err := s.stores.Decisions.FindByID(ctx, decisionID); err != nil {
		return nil, err
	}
	return s.stores.Evaluations.ListByDecision(ctx, decisionID)
}
