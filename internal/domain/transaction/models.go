package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"soldo/internal/shared/apperror"
)

var (
	ErrNotFound = errors.New("transaction not found")

	// ErrAccountNotOwned covers both a missing account and one owned by a
	// different user. Raised before any write.
	ErrAccountNotOwned = errors.New("account not found or unauthorized")
)

type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Tags        []string        `json:"tags"`
	IsRecurring bool            `json:"isRecurring"`
	// Frequency and EndDate are stored verbatim; nothing in this system
	// expands them into future occurrences.
	Frequency *string    `json:"frequency,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CreateParams carries Amount as a pointer: zero is a legal amount, so a
// missing field has to stay distinguishable from an explicit 0.
type CreateParams struct {
	AccountID   string
	Description string
	Amount      *decimal.Decimal
	Date        time.Time
	Tags        []string
	IsRecurring bool
	Frequency   *string
	EndDate     *time.Time
}

func (p *CreateParams) Validate() error {
	var fields []apperror.FieldError
	if p.AccountID == "" {
		fields = append(fields, apperror.FieldError{Field: "accountId", Message: "accountId is required"})
	}
	if strings.TrimSpace(p.Description) == "" {
		fields = append(fields, apperror.FieldError{Field: "description", Message: "description is required"})
	}
	if p.Amount == nil {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "amount is required"})
	}
	if p.Date.IsZero() {
		fields = append(fields, apperror.FieldError{Field: "date", Message: "date is required"})
	}
	if len(fields) > 0 {
		return apperror.Validation("Validation failed", fields...)
	}
	return nil
}

// UpdateParams uses pointer fields throughout: amount=0 and
// isRecurring=false are meaningful supplied values, distinct from an
// omitted field.
type UpdateParams struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Tags        *[]string
	IsRecurring *bool
	Frequency   *string
	EndDate     *time.Time
}

func (p *UpdateParams) Validate() error {
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return apperror.Validation("Validation failed",
			apperror.FieldError{Field: "description", Message: "description cannot be empty"})
	}
	return nil
}

// Filter holds the optional getAll predicates; all present fields combine
// with logical AND. Tags match on set intersection.
type Filter struct {
	AccountID   string
	StartDate   *time.Time
	EndDate     *time.Time
	Tags        []string
	IsRecurring *bool
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
}

type Statistics struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	Balance            decimal.Decimal `json:"balance"`
	TransactionCount   int             `json:"transactionCount"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
}

// statsScale bounds the precision of the mean for non-terminating
// divisions.
const statsScale = 4

// ComputeStatistics aggregates a transaction set: income is the sum of
// positive amounts, expenses the sum of absolute negative amounts, balance
// their difference, and the average the signed mean. The empty set yields
// all zeros rather than a division by zero.
func ComputeStatistics(txs []*Transaction) Statistics {
	stats := Statistics{
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
		Balance:            decimal.Zero,
		AverageTransaction: decimal.Zero,
	}

	if len(txs) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
		if tx.Amount.IsPositive() {
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		} else if tx.Amount.IsNegative() {
			stats.TotalExpenses = stats.TotalExpenses.Add(tx.Amount.Abs())
		}
	}

	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenses)
	stats.TransactionCount = len(txs)
	stats.AverageTransaction = sum.DivRound(decimal.NewFromInt(int64(len(txs))), statsScale)
	return stats
}

// SanitizeTags trims each tag and strips angle brackets. Empty results are
// dropped; a nil input stays an empty set.
func SanitizeTags(tags []string) []string {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		tag = strings.ReplaceAll(tag, "<", "")
		tag = strings.ReplaceAll(tag, ">", "")
		if tag != "" {
			clean = append(clean, tag)
		}
	}
	return clean
}
