package budget

import (
	"context"
	"errors"
	"fmt"

	"soldo/internal/shared/apperror"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Budget not found")
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return b, nil
}

func (s *Service) GetAll(ctx context.Context, userID string) ([]*Budget, error) {
	budgets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, params UpdateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, userID, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Budget not found")
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("Budget not found")
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
