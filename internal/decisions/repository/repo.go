package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/decisio-app/decisio-backend/internal/db"
	"github.com/decisio-app/decisio-backend/internal/decisions/domain"
)

type Repo struct {
	db db.Querier
}

func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

// WithQuerier returns a copy of the repo bound to q, typically a transaction.
func (r *Repo) WithQuerier(q db.Querier) *Repo {
	return &Repo{db: q}
}

const decisionColumns = `id, title, description, decision_type, confidence_level, created_at, updated_at`

func scanDecision(row pgx.Row) (*domain.Decision, error) {
	var d domain.Decision
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.DecisionType, &d.ConfidenceLevel, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) Create(ctx context.Context, req *domain.CreateDecisionRequest) (*domain.Decision, error) {
	const q = `
insert into decisions (id, title, description, decision_type, confidence_level, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $6)
returning ` + decisionColumns + `;
`
	now := time.Now().UTC()
	return scanDecision(r.db.QueryRow(ctx, q, uuid.New(), req.Title, req.Description, req.DecisionType, req.ConfidenceLevel, now))
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	const q = `select ` + decisionColumns + ` from decisions where id = $1;`

	d, err := scanDecision(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repo) List(ctx context.Context, skip, limit int) ([]domain.Decision, error) {
	const q = `
select ` + decisionColumns + `
from decisions
order by created_at desc
offset $1 limit $2;
`
	rows, err := r.db.Query(ctx, q, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Decision, 0, 16)
	for rows.Next() {
		var d domain.Decision
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.DecisionType, &d.ConfidenceLevel, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateDecisionRequest) (*domain.Decision, error) {
	const q = `
update decisions
set title            = coalesce($2, title),
    description      = coalesce($3, description),
    decision_type    = coalesce($4, decision_type),
    confidence_level = coalesce($5, confidence_level),
    updated_at       = now()
where id = $1
returning ` + decisionColumns + `;
`
	d, err := scanDecision(r.db.QueryRow(ctx, q, id, req.Title, req.Description, req.DecisionType, req.ConfidenceLevel))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a decision; snapshots and evaluations go with it via
// the on delete cascade constraints.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `delete from decisions where id = $1;`

	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// ListIDs returns every decision id, oldest first. Used by the sweep.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	const q = `select id from decisions order by created_at asc;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, 16)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
