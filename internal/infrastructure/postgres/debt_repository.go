package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"soldo/internal/domain/debt"
)

type DebtRepository struct {
	db *DB
}

func NewDebtRepository(db *DB) *DebtRepository {
	return &DebtRepository{db: db}
}

const debtColumns = `id, user_id, name, lender, principal, interest_rate, start_date, due_date, created_at, updated_at`

func (r *DebtRepository) Create(ctx context.Context, userID string, params debt.CreateParams) (*debt.Debt, error) {
	query := `
		INSERT INTO debts (id, user_id, name, lender, principal, interest_rate, start_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + debtColumns

	d, err := scanDebt(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Name, params.Lender,
		params.Principal, params.InterestRate, params.StartDate, params.DueDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	d.Payments = []debt.Payment{}
	return d, nil
}

func (r *DebtRepository) GetByID(ctx context.Context, id, userID string) (*debt.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 AND user_id = $2`

	d, err := scanDebt(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, debt.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	payments, err := r.paymentsByDebt(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Payments = payments[d.ID]
	if d.Payments == nil {
		d.Payments = []debt.Payment{}
	}
	return d, nil
}

func (r *DebtRepository) ListByUserID(ctx context.Context, userID string) ([]*debt.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt
	var ids []string
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(debts) == 0 {
		return debts, nil
	}

	payments, err := r.paymentsByDebt(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range debts {
		d.Payments = payments[d.ID]
		if d.Payments == nil {
			d.Payments = []debt.Payment{}
		}
	}
	return debts, nil
}

func (r *DebtRepository) Update(ctx context.Context, id, userID string, params debt.UpdateParams) (*debt.Debt, error) {
	setClauses := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}
	argIndex := 1

	appendSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if params.Name != nil {
		appendSet("name", *params.Name)
	}
	if params.Lender != nil {
		appendSet("lender", *params.Lender)
	}
	if params.Principal != nil {
		appendSet("principal", *params.Principal)
	}
	if params.InterestRate != nil {
		appendSet("interest_rate", *params.InterestRate)
	}
	if params.StartDate != nil {
		appendSet("start_date", *params.StartDate)
	}
	if params.DueDate != nil {
		appendSet("due_date", *params.DueDate)
	}

	query := fmt.Sprintf(`
		UPDATE debts
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+debtColumns,
		strings.Join(setClauses, ", "), argIndex, argIndex+1)
	args = append(args, id, userID)

	d, err := scanDebt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, debt.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	payments, err := r.paymentsByDebt(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Payments = payments[d.ID]
	if d.Payments == nil {
		d.Payments = []debt.Payment{}
	}
	return d, nil
}

func (r *DebtRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if affected == 0 {
		return debt.ErrNotFound
	}
	return nil
}

func (r *DebtRepository) AddPayment(ctx context.Context, debtID string, params debt.CreatePaymentParams) (*debt.Payment, error) {
	query := `
		INSERT INTO debt_payments (id, debt_id, amount, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, debt_id, amount, date, created_at
	`

	var p debt.Payment
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), debtID, params.Amount, params.Date,
	).Scan(&p.ID, &p.DebtID, &p.Amount, &p.Date, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add payment: %w", err)
	}
	return &p, nil
}

func (r *DebtRepository) paymentsByDebt(ctx context.Context, debtIDs []string) (map[string][]debt.Payment, error) {
	placeholders := make([]string, len(debtIDs))
	args := make([]any, len(debtIDs))
	for i, id := range debtIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, debt_id, amount, date, created_at
		FROM debt_payments
		WHERE debt_id IN (%s)
		ORDER BY date ASC, created_at ASC
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	defer rows.Close()

	payments := make(map[string][]debt.Payment)
	for rows.Next() {
		var p debt.Payment
		if err := rows.Scan(&p.ID, &p.DebtID, &p.Amount, &p.Date, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments[p.DebtID] = append(payments[p.DebtID], p)
	}
	return payments, rows.Err()
}

func scanDebt(s scanner) (*debt.Debt, error) {
	var d debt.Debt
	var startDate sql.NullTime

	err := s.Scan(
		&d.ID, &d.UserID, &d.Name, &d.Lender, &d.Principal, &d.InterestRate,
		&startDate, &d.DueDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		d.StartDate = &startDate.Time
	}
	return &d, nil
}
