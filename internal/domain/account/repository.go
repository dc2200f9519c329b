package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines account data access. Every query is scoped to the
// owning user; a row owned by someone else behaves exactly like a missing
// row (ErrNotFound).
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Account, error)
	GetByID(ctx context.Context, id, userID string) (*Account, error)
	ListByUserID(ctx context.Context, userID string) ([]*Account, error)
	Update(ctx context.Context, id, userID string, params UpdateParams) (*Account, error)
	Delete(ctx context.Context, id, userID string) error

	// NameExists reports whether the user already owns an account with
	// this name, excluding excludeID (empty to exclude nothing).
	NameExists(ctx context.Context, userID, name, excludeID string) (bool, error)

	// TransactionAmounts returns every transaction amount of the account,
	// for balance derivation.
	TransactionAmounts(ctx context.Context, accountID string) ([]decimal.Decimal, error)

	// TransactionCounts returns transaction counts keyed by account id for
	// all of the user's accounts.
	TransactionCounts(ctx context.Context, userID string) (map[string]int, error)

	// RecentTransactions returns the account's most recent transactions,
	// date descending, bounded by limit.
	RecentTransactions(ctx context.Context, accountID string, limit int) ([]TransactionRecord, error)
}
