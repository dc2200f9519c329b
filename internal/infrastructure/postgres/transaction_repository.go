package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"soldo/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, account_id, description, amount, date, tags, is_recurring, frequency, end_date, created_at, updated_at`

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (id, account_id, description, amount, date, tags, is_recurring, frequency, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + transactionColumns

	row := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), params.AccountID, params.Description, *params.Amount,
		params.Date, pq.Array(params.Tags), params.IsRecurring, params.Frequency, params.EndDate,
	)

	txn, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) FindOwned(ctx context.Context, id, userID string) (*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.description, t.amount, t.date, t.tags,
		       t.is_recurring, t.frequency, t.end_date, t.created_at, t.updated_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND a.user_id = $2
	`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// buildListQuery assembles the filtered list statement. Every filter is
// ANDed onto the ownership join; tags use the && array-overlap operator,
// so a transaction matches when it carries at least one requested tag.
func buildListQuery(userID string, filter transaction.Filter) (string, []any) {
	conditions := []string{"a.user_id = $1"}
	args := []any{userID}
	argIndex := 2

	if filter.AccountID != "" {
		conditions = append(conditions, fmt.Sprintf("t.account_id = $%d", argIndex))
		args = append(args, filter.AccountID)
		argIndex++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", argIndex))
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", argIndex))
		args = append(args, *filter.EndDate)
		argIndex++
	}
	if len(filter.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("t.tags && $%d", argIndex))
		args = append(args, pq.Array(filter.Tags))
		argIndex++
	}
	if filter.IsRecurring != nil {
		conditions = append(conditions, fmt.Sprintf("t.is_recurring = $%d", argIndex))
		args = append(args, *filter.IsRecurring)
		argIndex++
	}
	if filter.MinAmount != nil {
		conditions = append(conditions, fmt.Sprintf("t.amount >= $%d", argIndex))
		args = append(args, *filter.MinAmount)
		argIndex++
	}
	if filter.MaxAmount != nil {
		conditions = append(conditions, fmt.Sprintf("t.amount <= $%d", argIndex))
		args = append(args, *filter.MaxAmount)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT t.id, t.account_id, t.description, t.amount, t.date, t.tags,
		       t.is_recurring, t.frequency, t.end_date, t.created_at, t.updated_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE %s
		ORDER BY t.date DESC, t.created_at DESC
	`, strings.Join(conditions, " AND "))

	return query, args
}

func (r *TransactionRepository) List(ctx context.Context, userID string, filter transaction.Filter) ([]*transaction.Transaction, error) {
	query, args := buildListQuery(userID, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*transaction.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	setClauses := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}
	argIndex := 1

	appendSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if params.Description != nil {
		appendSet("description", *params.Description)
	}
	if params.Amount != nil {
		appendSet("amount", *params.Amount)
	}
	if params.Date != nil {
		appendSet("date", *params.Date)
	}
	if params.Tags != nil {
		appendSet("tags", pq.Array(*params.Tags))
	}
	if params.IsRecurring != nil {
		appendSet("is_recurring", *params.IsRecurring)
	}
	if params.Frequency != nil {
		appendSet("frequency", *params.Frequency)
	}
	if params.EndDate != nil {
		appendSet("end_date", *params.EndDate)
	}

	query := fmt.Sprintf(`
		UPDATE transactions
		SET %s
		WHERE id = $%d
		RETURNING `+transactionColumns,
		strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return transaction.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	var frequency sql.NullString
	var endDate sql.NullTime

	err := s.Scan(
		&txn.ID, &txn.AccountID, &txn.Description, &txn.Amount, &txn.Date,
		pq.Array(&txn.Tags), &txn.IsRecurring, &frequency, &endDate,
		&txn.CreatedAt, &txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if frequency.Valid {
		txn.Frequency = &frequency.String
	}
	if endDate.Valid {
		txn.EndDate = &endDate.Time
	}
	return &txn, nil
}
