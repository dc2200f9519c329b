package debt

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

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Debt, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Debt, error) {
	d, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Debt not found")
		}
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return d, nil
}

func (s *Service) GetAll(ctx context.Context, userID string) ([]*Debt, error) {
	debts, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, params UpdateParams) (*Debt, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, userID, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Debt not found")
		}
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("Debt not found")
		}
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}

// AddPayment appends a payment to a debt the user owns. The ownership
// check runs before the write; a foreign debt reads as absent.
func (s *Service) AddPayment(ctx context.Context, debtID, userID string, params CreatePaymentParams) (*Payment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, debtID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Debt not found")
		}
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	payment, err := s.repo.AddPayment(ctx, debtID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to add payment: %w", err)
	}
	return payment, nil
}
