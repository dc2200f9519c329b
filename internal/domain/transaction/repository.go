package transaction

import "context"

// Repository defines transaction data access. List and FindOwned scope to
// the owning user through the account join; a transaction whose account
// belongs to someone else behaves like a missing row.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)

	// FindOwned returns the transaction only when its account belongs to
	// userID; otherwise ErrNotFound.
	FindOwned(ctx context.Context, id, userID string) (*Transaction, error)

	// List returns the user's transactions matching the filter, ordered
	// date descending with created_at descending as the tiebreak.
	List(ctx context.Context, userID string, filter Filter) ([]*Transaction, error)

	Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, id string) error
}
