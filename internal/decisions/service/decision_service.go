package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/decisio-app/decisio-backend/internal/decisions/domain"
)

// Store is the persistence surface the service needs; *repository.Repo
// implements it.
type Store interface {
	Create(ctx context.Context, req *domain.CreateDecisionRequest) (*domain.Decision, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error)
	List(ctx context.Context, skip, limit int) ([]domain.Decision, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpdateDecisionRequest) (*domain.Decision, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DecisionService handles business logic for decision records.
type DecisionService struct {
	repo Store
}

func NewDecisionService(repo Store) *DecisionService {
	return &DecisionService{repo: repo}
}

func (s *DecisionService) Create(ctx context.Context, req *domain.CreateDecisionRequest) (*domain.Decision, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if req.Title == "" || len(req.Title) > 255 {
		return nil, domain.ErrInvalidTitle
	}
	if req.Description == "" {
		return nil, domain.ErrInvalidDescription
	}
	if !req.DecisionType.Valid() {
		return nil, domain.ErrInvalidDecisionType
	}
	if !req.ConfidenceLevel.Valid() {
		return nil, domain.ErrInvalidConfidenceLevel
	}

	return s.repo.Create(ctx, req)
}

func (s *DecisionService) Get(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DecisionService) List(ctx context.Context, skip, limit int) ([]domain.Decision, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *DecisionService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateDecisionRequest) (*domain.Decision, error) {
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" || len(t) > 255 {
			return nil, domain.ErrInvalidTitle
		}
		req.Title = &t
	}
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		if d == "" {
			return nil, domain.ErrInvalidDescription
		}
		req.Description = &d
	}
	if req.DecisionType != nil && !req.DecisionType.Valid() {
		return nil, domain.ErrInvalidDecisionType
	}
	if req.ConfidenceLevel != nil && !req.ConfidenceLevel.Valid() {
		return nil, domain.ErrInvalidConfidenceLevel
	}

	return s.repo.Update(ctx, id, req)
}

func (s *DecisionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
