// Package schedule runs the periodic drift sweep: every decision that has a
// snapshot gets a fresh evaluation appended, so drift shows up without anyone
// asking for it.
package schedule

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	evaluationdomain "github.com/decisio-app/decisio-backend/internal/evaluation/domain"
	evaluationsvc "github.com/decisio-app/decisio-backend/internal/evaluation/service"
)

// DecisionLister enumerates the decisions to sweep; *repository.Repo
// implements it.
type DecisionLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

type Scheduler struct {
	spec      string
	decisions DecisionLister
	evals     *evaluationsvc.EvaluationService
	cron      *cron.Cron
	// Paces the sweep so a large decision backlog does not hammer the db.
	limiter *rate.Limiter
}

func NewScheduler(spec string, decisions DecisionLister, evals *evaluationsvc.EvaluationService) *Scheduler {
	return &Scheduler{
		spec:      spec,
		decisions: decisions,
		evals:     evals,
		limiter:   rate.NewLimiter(rate.Limit(5), 1),
	}
}

// Start registers the cron entry and begins scheduling.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.spec, func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("drift sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("Drift sweep scheduled (%s)", s.spec)
	s.cron = c
	c.Start()
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep evaluates every decision once. Decisions without a snapshot are
// skipped; one failing decision does not abort the rest.
func (s *Scheduler) Sweep(ctx context.Context) error {
	started := time.Now()

	ids, err := s.decisions.ListIDs(ctx)
	if err != nil {
		return err
	}

	evaluated, skipped := 0, 0
	for _, id := range ids {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		_, err := s.evals.Evaluate(ctx, id)
		switch {
		case err == nil:
			evaluated++
		case errors.Is(err, evaluationdomain.ErrNoProjectContext):
			// Nothing to compare against yet; the whole sweep is moot.
			log.Printf("drift sweep: no project context set, skipping remaining decisions")
			return nil
		case isMissingSnapshot(err):
			skipped++
		default:
			log.Printf("drift sweep: evaluating decision %s failed: %v", id, err)
		}
	}

	log.Printf("Drift sweep done: %d evaluated, %d without snapshots, took %s",
		evaluated, skipped, time.Since(started).Round(time.Millisecond))
	return nil
}

func isMissingSnapshot(err error) bool {
	var snapshotNotFound *evaluationdomain.SnapshotNotFoundError
	return errors.As(err, &snapshotNotFound)
}
