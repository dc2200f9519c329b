package budget

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/shared/apperror"
)

var ErrNotFound = errors.New("budget not found")

// Budget tracks a spending limit against a single tag. This system stores
// the association only; budget-vs-actual reporting is a consumer concern.
type Budget struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Limit     decimal.Decimal `json:"limit"`
	Tag       string          `json:"tag"`
	StartDate *time.Time      `json:"startDate,omitempty"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type CreateParams struct {
	Name      string
	Limit     decimal.Decimal
	Tag       string
	StartDate *time.Time
	EndDate   *time.Time
}

func (p CreateParams) Validate() error {
	var fields []apperror.FieldError
	if p.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if !p.Limit.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "limit", Message: "limit must be a positive number"})
	}
	if p.Tag == "" {
		fields = append(fields, apperror.FieldError{Field: "tag", Message: "tag is required"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}

type UpdateParams struct {
	Name      *string
	Limit     *decimal.Decimal
	Tag       *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (p UpdateParams) Validate() error {
	var fields []apperror.FieldError
	if p.Name != nil && *p.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if p.Limit != nil && !p.Limit.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "limit", Message: "limit must be a positive number"})
	}
	if p.Tag != nil && *p.Tag == "" {
		fields = append(fields, apperror.FieldError{Field: "tag", Message: "tag cannot be empty"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}
