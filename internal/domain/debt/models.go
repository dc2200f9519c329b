package debt

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/shared/apperror"
)

var ErrNotFound = errors.New("debt not found")

// Debt owns an append-only collection of payments, returned alongside the
// parent on every read.
type Debt struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Name         string          `json:"name"`
	Lender       string          `json:"lender"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"`
	StartDate    *time.Time      `json:"startDate,omitempty"`
	DueDate      time.Time       `json:"dueDate"`
	Payments     []Payment       `json:"payments"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Payment struct {
	ID        string          `json:"id"`
	DebtID    string          `json:"debtId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}

type CreateParams struct {
	Name         string
	Lender       string
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
	StartDate    *time.Time
	DueDate      time.Time
}

func (p CreateParams) Validate() error {
	var fields []apperror.FieldError
	if p.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if p.Lender == "" {
		fields = append(fields, apperror.FieldError{Field: "lender", Message: "lender is required"})
	}
	if !p.Principal.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "principal", Message: "principal must be a positive number"})
	}
	if p.InterestRate.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "interestRate", Message: "interestRate cannot be negative"})
	}
	if p.DueDate.IsZero() {
		fields = append(fields, apperror.FieldError{Field: "dueDate", Message: "dueDate is required"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}

type UpdateParams struct {
	Name         *string
	Lender       *string
	Principal    *decimal.Decimal
	InterestRate *decimal.Decimal
	StartDate    *time.Time
	DueDate      *time.Time
}

func (p UpdateParams) Validate() error {
	var fields []apperror.FieldError
	if p.Name != nil && *p.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if p.Lender != nil && *p.Lender == "" {
		fields = append(fields, apperror.FieldError{Field: "lender", Message: "lender cannot be empty"})
	}
	if p.Principal != nil && !p.Principal.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "principal", Message: "principal must be a positive number"})
	}
	if p.InterestRate != nil && p.InterestRate.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "interestRate", Message: "interestRate cannot be negative"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}

type CreatePaymentParams struct {
	Amount decimal.Decimal
	Date   time.Time
}

func (p CreatePaymentParams) Validate() error {
	var fields []apperror.FieldError
	if !p.Amount.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "amount must be a positive number"})
	}
	if p.Date.IsZero() {
		fields = append(fields, apperror.FieldError{Field: "date", Message: "date is required"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}
