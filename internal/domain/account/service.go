package account

import (
	"context"
	"errors"
	"fmt"

	"soldo/internal/shared/apperror"
)

// Service contains the ledger business logic: per-user name uniqueness
// and derived balances.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, apperror.Validation("Validation failed",
			apperror.FieldError{Field: "name", Message: err.Error()})
	}

	// Friendly pre-check; the (user_id, name) unique index is the final
	// authority when two requests race.
	taken, err := s.repo.NameExists(ctx, userID, params.Name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check account name: %w", err)
	}
	if taken {
		return nil, apperror.Conflict(NameConflictMessage(params.Name))
	}

	created, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			return nil, apperror.Conflict(NameConflictMessage(params.Name))
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return created, nil
}

// GetAll returns every account of the user, newest first, with transaction
// count and the balance recomputed from the transaction set.
func (s *Service) GetAll(ctx context.Context, userID string) ([]*Summary, error) {
	accounts, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	counts, err := s.repo.TransactionCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	summaries := make([]*Summary, 0, len(accounts))
	for _, acc := range accounts {
		amounts, err := s.repo.TransactionAmounts(ctx, acc.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load amounts for account %s: %w", acc.ID, err)
		}
		summaries = append(summaries, &Summary{
			Account:          *acc,
			TransactionCount: counts[acc.ID],
			Balance:          Balance(acc.StartingAmount, amounts),
		})
	}
	return summaries, nil
}

// Get returns one account with its recent transactions and derived
// balance. Absence and foreign ownership are both NotFound.
func (s *Service) Get(ctx context.Context, id, userID string) (*Detail, error) {
	acc, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	amounts, err := s.repo.TransactionAmounts(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load amounts: %w", err)
	}

	recent, err := s.repo.RecentTransactions(ctx, acc.ID, RecentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}
	if recent == nil {
		recent = []TransactionRecord{}
	}

	return &Detail{
		Account:      *acc,
		Balance:      Balance(acc.StartingAmount, amounts),
		Transactions: recent,
	}, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, params UpdateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, apperror.Validation("Validation failed",
			apperror.FieldError{Field: "name", Message: err.Error()})
	}

	current, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if params.Name != nil && *params.Name != current.Name {
		taken, err := s.repo.NameExists(ctx, userID, *params.Name, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check account name: %w", err)
		}
		if taken {
			return nil, apperror.Conflict(NameConflictMessage(*params.Name))
		}
	}

	updated, err := s.repo.Update(ctx, id, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperror.NotFound("Account not found")
		case errors.Is(err, ErrNameTaken):
			return nil, apperror.Conflict(NameConflictMessage(*params.Name))
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return updated, nil
}

// Delete removes the account and, through the store's cascade, all of its
// transactions.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("Account not found")
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
