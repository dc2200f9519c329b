package guarantee

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/shared/apperror"
)

var ErrNotFound = errors.New("guarantee not found")

// Guarantee is a warranty or deposit the user wants to track until it
// expires, for example an appliance warranty or a rental deposit.
type Guarantee struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ExpiryDate  time.Time       `json:"expiryDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CreateParams struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpiryDate  time.Time       `json:"expiryDate"`
}

func (p CreateParams) Validate() error {
	var fields []apperror.FieldError
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if p.Amount.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "amount cannot be negative"})
	}
	if p.ExpiryDate.IsZero() {
		fields = append(fields, apperror.FieldError{Field: "expiryDate", Message: "expiryDate is required"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}

type UpdateParams struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpiryDate  *time.Time       `json:"expiryDate"`
}

func (p UpdateParams) Validate() error {
	var fields []apperror.FieldError
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "amount cannot be negative"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}
