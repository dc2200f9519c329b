package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"soldo/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, name, limit_amount, tag, start_date, end_date, created_at, updated_at`

func (r *BudgetRepository) Create(ctx context.Context, userID string, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, name, limit_amount, tag, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + budgetColumns

	b, err := scanBudget(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Name, params.Limit, params.Tag, params.StartDate, params.EndDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id, userID string) (*budget.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, budget.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID string) ([]*budget.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, id, userID string, params budget.UpdateParams) (*budget.Budget, error) {
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
	if params.Limit != nil {
		appendSet("limit_amount", *params.Limit)
	}
	if params.Tag != nil {
		appendSet("tag", *params.Tag)
	}
	if params.StartDate != nil {
		appendSet("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		appendSet("end_date", *params.EndDate)
	}

	query := fmt.Sprintf(`
		UPDATE budgets
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+budgetColumns,
		strings.Join(setClauses, ", "), argIndex, argIndex+1)
	args = append(args, id, userID)

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, budget.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if affected == 0 {
		return budget.ErrNotFound
	}
	return nil
}

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget
	var startDate, endDate sql.NullTime

	err := s.Scan(&b.ID, &b.UserID, &b.Name, &b.Limit, &b.Tag, &startDate, &endDate, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		b.StartDate = &startDate.Time
	}
	if endDate.Valid {
		b.EndDate = &endDate.Time
	}
	return &b, nil
}
