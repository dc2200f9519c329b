package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("account not found")

// ErrNameTaken marks a per-user account name collision. The unique index
// on (user_id, name) backs this up under concurrent creates.
var ErrNameTaken = errors.New("account name already in use")

type Account struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Name           string          `json:"name"`
	StartingAmount decimal.Decimal `json:"startingAmount"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Summary is an account in a listing: transaction count plus the balance
// derived on read. Balance is never stored.
type Summary struct {
	Account
	TransactionCount int             `json:"transactionCount"`
	Balance          decimal.Decimal `json:"balance"`
}

// TransactionRecord is the slice of a transaction embedded in an account
// detail response. Kept local to avoid a dependency on the transaction
// package.
type TransactionRecord struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Tags        []string        `json:"tags"`
}

// Detail is a single account with its most recent transactions,
// newest first.
type Detail struct {
	Account
	Balance      decimal.Decimal     `json:"balance"`
	Transactions []TransactionRecord `json:"transactions"`
}

// RecentTransactionLimit bounds the transaction page embedded in Detail.
const RecentTransactionLimit = 10

type CreateParams struct {
	Name           string
	StartingAmount decimal.Decimal
}

func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("account name is required")
	}
	return nil
}

// UpdateParams uses pointer fields so an omitted field is distinguishable
// from one explicitly set to its zero value.
type UpdateParams struct {
	Name           *string
	StartingAmount *decimal.Decimal
}

func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("account name cannot be empty")
	}
	return nil
}

// Balance derives the current balance: starting amount plus the sum of
// transaction amounts. Correct for the empty set (balance == starting).
func Balance(starting decimal.Decimal, amounts []decimal.Decimal) decimal.Decimal {
	balance := starting
	for _, a := range amounts {
		balance = balance.Add(a)
	}
	return balance
}

// NameConflictMessage is the user-facing Conflict message for duplicate
// account names.
func NameConflictMessage(name string) string {
	return fmt.Sprintf("You already have an account named %q. Please choose a different name.", name)
}
