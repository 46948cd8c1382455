package postgres

import (
	"database/sql"
	"fmt"
)

// Statements are idempotent so the bootstrap can run on every start.
var schemaStatements = []string{
	`create table if not exists project_contexts (
		id uuid primary key,
		team_size integer not null check (team_size > 0),
		expected_users integer not null check (expected_users > 0),
		timeline_months integer not null check (timeline_months > 0),
		constraints text,
		updated_at timestamptz not null default now()
	)`,
	`create table if not exists decisions (
		id uuid primary key,
		title varchar(255) not null,
		description text not null,
		decision_type text not null,
		confidence_level text not null,
		created_at timestamptz not null default now(),
		updated_at timestamptz not null default now()
	)`,
	`create table if not exists decision_context_snapshots (
		id uuid primary key,
		decision_id uuid not null references decisions(id) on delete cascade,
		team_size_at_decision integer not null check (team_size_at_decision > 0),
		expected_users_at_decision integer not null check (expected_users_at_decision > 0),
		timeline_at_decision integer not null check (timeline_at_decision > 0),
		assumptions text,
		created_at timestamptz not null default now()
	)`,
	`create table if not exists decision_evaluations (
		id uuid primary key,
		decision_id uuid not null references decisions(id) on delete cascade,
		drift_score integer not null check (drift_score >= 0 and drift_score <= 100),
		risk_level text not null,
		explanation text not null,
		evaluated_at timestamptz not null default now()
	)`,
	`create index if not exists idx_project_contexts_updated_at
		on project_contexts (updated_at desc)`,
	`create index if not exists idx_snapshots_decision_created
		on decision_context_snapshots (decision_id, created_at desc)`,
	`create index if not exists idx_evaluations_decision_evaluated
		on decision_evaluations (decision_id, evaluated_at desc)`,
}

// EnsureSchema creates the tables and indexes the service needs.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
