package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/decisio-app/decisio-backend/internal/db"
	"github.com/decisio-app/decisio-backend/internal/evaluation/domain"
)

type EvaluationRepo struct {
	db db.Querier
}

func NewEvaluationRepo(q db.Querier) *EvaluationRepo {
	return &EvaluationRepo{db: q}
}

// WithQuerier returns a copy of the repo bound to q, typically a transaction.
func (r *EvaluationRepo) WithQuerier(q db.Querier) *EvaluationRepo {
	return &EvaluationRepo{db: q}
}

const evaluationColumns = `id, decision_id, drift_score, risk_level, explanation, evaluated_at`

func scanEvaluation(row pgx.Row) (*domain.Evaluation, error) {
	var e domain.Evaluation
	err := row.Scan(&e.ID, &e.DecisionID, &e.DriftScore, &e.RiskLevel, &e.Explanation, &e.EvaluatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Insert appends one evaluation record; prior evaluations are never touched.
func (r *EvaluationRepo) Insert(ctx context.Context, ev *domain.Evaluation) (*domain.Evaluation, error) {
	const q = `
insert into decision_evaluations (id, decision_id, drift_score, risk_level, explanation, evaluated_at)
values ($1, $2, $3, $4, $5, $6)
returning ` + evaluationColumns + `;
`
	return scanEvaluation(r.db.QueryRow(ctx, q,
		uuid.New(), ev.DecisionID, ev.DriftScore, ev.RiskLevel, ev.Explanation, time.Now().UTC()))
}

func (r *EvaluationRepo) ListByDecision(ctx context.Context, decisionID uuid.UUID) ([]domain.Evaluation, error) {
	const q = `
select ` + evaluationColumns + `
from decision_evaluations
where decision_id = $1
order by evaluated_at desc;
`
	rows, err := r.db.Query(ctx, q, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Evaluation, 0, 8)
	for rows.Next() {
		var e domain.Evaluation
		if err := rows.Scan(&e.ID, &e.DecisionID, &e.DriftScore, &e.RiskLevel, &e.Explanation, &e.EvaluatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
