package guarantee

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

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Guarantee, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create guarantee: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Guarantee, error) {
	g, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Guarantee not found")
		}
		return nil, fmt.Errorf("failed to get guarantee: %w", err)
	}
	return g, nil
}

func (s *Service) GetAll(ctx context.Context, userID string) ([]*Guarantee, error) {
	guarantees, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guarantees: %w", err)
	}
	return guarantees, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, params UpdateParams) (*Guarantee, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, userID, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Guarantee not found")
		}
		return nil, fmt.Errorf("failed to update guarantee: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("Guarantee not found")
		}
		return fmt.Errorf("failed to delete guarantee: %w", err)
	}
	return nil
}
