package budget

import "context"

// Repository defines budget data access, always scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Budget, error)
	GetByID(ctx context.Context, id, userID string) (*Budget, error)
	ListByUserID(ctx context.Context, userID string) ([]*Budget, error)
	Update(ctx context.Context, id, userID string, params UpdateParams) (*Budget, error)
	Delete(ctx context.Context, id, userID string) error
}
