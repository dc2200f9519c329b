package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soldo/internal/domain/account"
	"soldo/internal/shared/apperror"
)

// AccountResolver is the slice of the account repository this service
// needs: resolving an account id under an owning user.
type AccountResolver interface {
	GetByID(ctx context.Context, id, userID string) (*account.Account, error)
}

// Service enforces the ownership invariant on every transaction operation:
// the target account must belong to the requesting user before any write.
type Service struct {
	repo     Repository
	accounts AccountResolver
}

func NewService(repo Repository, accounts AccountResolver) *Service {
	return &Service{repo: repo, accounts: accounts}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Ownership check runs before any write.
	if _, err := s.accounts.GetByID(ctx, params.AccountID, userID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, apperror.NotFound("Account not found or unauthorized")
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	params.Tags = SanitizeTags(params.Tags)

	created, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, params UpdateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindOwned(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Transaction not found")
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if params.Tags != nil {
		clean := SanitizeTags(*params.Tags)
		params.Tags = &clean
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Transaction not found")
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.repo.FindOwned(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("Transaction not found")
		}
		return fmt.Errorf("failed to find transaction: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *Service) GetAll(ctx context.Context, userID string, filter Filter) ([]*Transaction, error) {
	txs, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// GetStatistics aggregates the user's transactions inside the optional
// inclusive date range. Recomputed from scratch on every call.
func (s *Service) GetStatistics(ctx context.Context, userID string, startDate, endDate *time.Time) (*Statistics, error) {
	txs, err := s.repo.List(ctx, userID, Filter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	stats := ComputeStatistics(txs)
	return &stats, nil
}
