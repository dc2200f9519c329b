package user

import "context"

// Repository defines user data access. Implemented in the infrastructure
// layer; GetByEmail matches the stored email exactly (case-sensitive).
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
