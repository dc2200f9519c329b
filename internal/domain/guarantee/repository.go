package guarantee

import "context"

// Repository orders ListByUserID by expiry date ascending so the
// soonest-expiring guarantees come first.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Guarantee, error)
	GetByID(ctx context.Context, id, userID string) (*Guarantee, error)
	ListByUserID(ctx context.Context, userID string) ([]*Guarantee, error)
	Update(ctx context.Context, id, userID string, params UpdateParams) (*Guarantee, error)
	Delete(ctx context.Context, id, userID string) error
}
