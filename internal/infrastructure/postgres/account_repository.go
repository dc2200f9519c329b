package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"soldo/internal/domain/account"
)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, userID string, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (id, user_id, name, starting_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, starting_amount, created_at, updated_at
	`

	var acc account.Account
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Name, params.StartingAmount,
	).Scan(&acc.ID, &acc.UserID, &acc.Name, &acc.StartingAmount, &acc.CreatedAt, &acc.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "accounts_user_id_name_key") {
			return nil, account.ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id, userID string) (*account.Account, error) {
	query := `
		SELECT id, user_id, name, starting_amount, created_at, updated_at
		FROM accounts
		WHERE id = $1 AND user_id = $2
	`

	var acc account.Account
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&acc.ID, &acc.UserID, &acc.Name, &acc.StartingAmount, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID string) ([]*account.Account, error) {
	query := `
		SELECT id, user_id, name, starting_amount, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var acc account.Account
		if err := rows.Scan(&acc.ID, &acc.UserID, &acc.Name, &acc.StartingAmount, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, id, userID string, params account.UpdateParams) (*account.Account, error) {
	setClauses := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}
	argIndex := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *params.Name)
		argIndex++
	}
	if params.StartingAmount != nil {
		setClauses = append(setClauses, fmt.Sprintf("starting_amount = $%d", argIndex))
		args = append(args, *params.StartingAmount)
		argIndex++
	}

	query := fmt.Sprintf(`
		UPDATE accounts
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, name, starting_amount, created_at, updated_at
	`, strings.Join(setClauses, ", "), argIndex, argIndex+1)
	args = append(args, id, userID)

	var acc account.Account
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&acc.ID, &acc.UserID, &acc.Name, &acc.StartingAmount, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err, "accounts_user_id_name_key") {
			return nil, account.ErrNameTaken
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if affected == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) NameExists(ctx context.Context, userID, name, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE user_id = $1 AND name = $2 AND ($3 = '' OR id::text <> $3)
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account name: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) TransactionAmounts(ctx context.Context, accountID string) ([]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount FROM transactions WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction amounts: %w", err)
	}
	defer rows.Close()

	var amounts []decimal.Decimal
	for rows.Next() {
		var a decimal.Decimal
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("failed to scan amount: %w", err)
		}
		amounts = append(amounts, a)
	}
	return amounts, rows.Err()
}

func (r *AccountRepository) TransactionCounts(ctx context.Context, userID string) (map[string]int, error) {
	query := `
		SELECT a.id, COUNT(t.id)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.user_id = $1
		GROUP BY a.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

func (r *AccountRepository) RecentTransactions(ctx context.Context, accountID string, limit int) ([]account.TransactionRecord, error) {
	query := `
		SELECT id, description, amount, date, tags
		FROM transactions
		WHERE account_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}
	defer rows.Close()

	var records []account.TransactionRecord
	for rows.Next() {
		var rec account.TransactionRecord
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.Amount, &rec.Date, pq.Array(&rec.Tags)); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
