package debt

import "context"

// Repository defines debt data access. Reads return the debt with its
// payments embedded. Payments are append-only: there is no update or
// delete for them.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Debt, error)
	GetByID(ctx context.Context, id, userID string) (*Debt, error)
	ListByUserID(ctx context.Context, userID string) ([]*Debt, error)
	Update(ctx context.Context, id, userID string, params UpdateParams) (*Debt, error)
	Delete(ctx context.Context, id, userID string) error
	AddPayment(ctx context.Context, debtID string, params CreatePaymentParams) (*Payment, error)
}
