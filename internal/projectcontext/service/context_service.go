package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/decisio-app/decisio-backend/internal/projectcontext/domain"
)

// Store is the persistence surface the service needs; *repository.Repo
// implements it.
type Store interface {
	FindLatest(ctx context.Context) (*domain.ProjectContext, error)
	Create(ctx context.Context, teamSize, expectedUsers, timelineMonths int, constraints *string) (*domain.ProjectContext, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpsertContextRequest) (*domain.ProjectContext, error)
}

// CacheStore keeps the current context warm for reads; *repository.Cache
// implements it.
type CacheStore interface {
	Get(ctx context.Context) (*domain.ProjectContext, error)
	Set(ctx context.Context, pc *domain.ProjectContext) error
	Invalidate(ctx context.Context) error
}

// ContextService handles the single current project context.
type ContextService struct {
	repo  Store
	cache CacheStore
}

// NewContextService creates the service. cache may be nil when redis is not
// configured.
func NewContextService(repo Store, cache CacheStore) *ContextService {
	return &ContextService{repo: repo, cache: cache}
}

// Current returns the latest project context, serving from cache when warm.
func (s *ContextService) Current(ctx context.Context) (*domain.ProjectContext, error) {
	if s.cache != nil {
		pc, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("context cache read failed, falling back to db: %v", err)
		} else if pc != nil {
			return pc, nil
		}
	}

	pc, err := s.repo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, pc); err != nil {
			log.Printf("context cache write failed: %v", err)
		}
	}
	return pc, nil
}

// Upsert merges into the latest context row, or creates the first one.
func (s *ContextService) Upsert(ctx context.Context, req *domain.UpsertContextRequest) (*domain.ProjectContext, error) {
	if !positive(req.TeamSize) || !positive(req.ExpectedUsers) || !positive(req.TimelineMonths) {
		return nil, domain.ErrNonPositiveField
	}

	existing, err := s.repo.FindLatest(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if req.TeamSize == nil || req.ExpectedUsers == nil || req.TimelineMonths == nil {
			return nil, domain.ErrFirstContextIncomplete
		}
		existing = nil
	case err != nil:
		return nil, err
	}

	var pc *domain.ProjectContext
	if existing == nil {
		pc, err = s.repo.Create(ctx, *req.TeamSize, *req.ExpectedUsers, *req.TimelineMonths, req.Constraints)
	} else {
		pc, err = s.repo.Update(ctx, existing.ID, req)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("context cache invalidation failed: %v", err)
		}
	}
	return pc, nil
}

// positive reports whether v is nil (field omitted) or a positive value.
func positive(v *int) bool {
	return v == nil || *v > 0
}
