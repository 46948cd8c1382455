package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	decisionsrepo "github.com/decisio-app/decisio-backend/internal/decisions/repository"
	"github.com/decisio-app/decisio-backend/internal/evaluation/service"
	contextrepo "github.com/decisio-app/decisio-backend/internal/projectcontext/repository"
)

// PgxTxRunner runs an evaluation's reads and its single write inside one
// postgres transaction.
type PgxTxRunner struct {
	pool *pgxpool.Pool
}

func NewPgxTxRunner(pool *pgxpool.Pool) *PgxTxRunner {
	return &PgxTxRunner{pool: pool}
}

func (r *PgxTxRunner) WithinTx(ctx context.Context, fn func(service.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	stores := service.Stores{
		Decisions:   decisionsrepo.NewRepo(tx),
		Contexts:    contextrepo.NewRepo(tx),
		Snapshots:   NewSnapshotRepo(tx),
		Evaluations: NewEvaluationRepo(tx),
	}

	if err := fn(stores); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
