package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/decisio-app/decisio-backend/internal/db"
	"github.com/decisio-app/decisio-backend/internal/projectcontext/domain"
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

const contextColumns = `id, team_size, expected_users, timeline_months, constraints, updated_at`

func scanContext(row pgx.Row) (*domain.ProjectContext, error) {
	var pc domain.ProjectContext
	err := row.Scan(&pc.ID, &pc.TeamSize, &pc.ExpectedUsers, &pc.TimelineMonths, &pc.Constraints, &pc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

// FindLatest returns the current project context: the most recently updated
// row across the whole system.
func (r *Repo) FindLatest(ctx context.Context) (*domain.ProjectContext, error) {
	const q = `
select ` + contextColumns + `
from project_contexts
order by updated_at desc
limit 1;
`
	pc, err := scanContext(r.db.QueryRow(ctx, q))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pc, nil
}

func (r *Repo) Create(ctx context.Context, teamSize, expectedUsers, timelineMonths int, constraints *string) (*domain.ProjectContext, error) {
	const q = `
insert into project_contexts (id, team_size, expected_users, timeline_months, constraints, updated_at)
values ($1, $2, $3, $4, $5, $6)
returning ` + contextColumns + `;
`
	return scanContext(r.db.QueryRow(ctx, q, uuid.New(), teamSize, expectedUsers, timelineMonths, constraints, time.Now().UTC()))
}

// Update merges the provided fields into the row, leaving nil fields untouched.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, req *domain.UpsertContextRequest) (*domain.ProjectContext, error) {
	const q = `
update project_contexts
set team_size       = coalesce($2, team_size),
    expected_users  = coalesce($3, expected_users),
    timeline_months = coalesce($4, timeline_months),
    constraints     = coalesce($5, constraints),
    updated_at      = now()
where id = $1
returning ` + contextColumns + `;
`
	pc, err := scanContext(r.db.QueryRow(ctx, q, id, req.TeamSize, req.ExpectedUsers, req.TimelineMonths, req.Constraints))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pc, nil
}
