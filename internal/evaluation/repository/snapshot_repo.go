package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/decisio-app/decisio-backend/internal/db"
	"github.com/decisio-app/decisio-backend/internal/evaluation/domain"
)

type SnapshotRepo struct {
	db db.Querier
}

func NewSnapshotRepo(q db.Querier) *SnapshotRepo {
	return &SnapshotRepo{db: q}
}

// WithQuerier returns a copy of the repo bound to q, typically a transaction.
func (r *SnapshotRepo) WithQuerier(q db.Querier) *SnapshotRepo {
	return &SnapshotRepo{db: q}
}

const snapshotColumns = `id, decision_id, team_size_at_decision, expected_users_at_decision, timeline_at_decision, assumptions, created_at`

func scanSnapshot(row pgx.Row) (*domain.ContextSnapshot, error) {
	var s domain.ContextSnapshot
	err := row.Scan(&s.ID, &s.DecisionID, &s.TeamSizeAtDecision, &s.ExpectedUsersAtDecision, &s.TimelineAtDecision, &s.Assumptions, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SnapshotRepo) Insert(ctx context.Context, decisionID uuid.UUID, req *domain.CreateSnapshotRequest) (*domain.ContextSnapshot, error) {
	const q = `
insert into decision_context_snapshots
	(id, decision_id, team_size_at_decision, expected_users_at_decision, timeline_at_decision, assumptions, created_at)
values ($1, $2, $3, $4, $5, $6, $7)
returning ` + snapshotColumns + `;
`
	return scanSnapshot(r.db.QueryRow(ctx, q,
		uuid.New(), decisionID,
		req.TeamSizeAtDecision, req.ExpectedUsersAtDecision, req.TimelineAtDecision,
		req.Assumptions, time.Now().UTC()))
}

// FindLatestByDecision returns the newest snapshot for the decision.
func (r *SnapshotRepo) FindLatestByDecision(ctx context.Context, decisionID uuid.UUID) (*domain.ContextSnapshot, error) {
	const q = `
select ` + snapshotColumns + `
from decision_context_snapshots
where decision_id = $1
order by created_at desc
limit 1;
`
	s, err := scanSnapshot(r.db.QueryRow(ctx, q, decisionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.SnapshotNotFoundError{DecisionID: decisionID}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SnapshotRepo) ListByDecision(ctx context.Context, decisionID uuid.UUID) ([]domain.ContextSnapshot, error) {
	const q = `
select ` + snapshotColumns + `
from decision_context_snapshots
where decision_id = $1
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ContextSnapshot, 0, 8)
	for rows.Next() {
		var s domain.ContextSnapshot
		if err := rows.Scan(&s.ID, &s.DecisionID, &s.TeamSizeAtDecision, &s.ExpectedUsersAtDecision, &s.TimelineAtDecision, &s.Assumptions, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
