package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"soldo/internal/domain/guarantee"
)

type GuaranteeRepository struct {
	db *DB
}

func NewGuaranteeRepository(db *DB) *GuaranteeRepository {
	return &GuaranteeRepository{db: db}
}

const guaranteeColumns = `id, user_id, name, description, amount, expiry_date, created_at, updated_at`

func (r *GuaranteeRepository) Create(ctx context.Context, userID string, params guarantee.CreateParams) (*guarantee.Guarantee, error) {
	query := `
		INSERT INTO guarantees (id, user_id, name, description, amount, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + guaranteeColumns

	g, err := scanGuarantee(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Name, params.Description, params.Amount, params.ExpiryDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create guarantee: %w", err)
	}
	return g, nil
}

func (r *GuaranteeRepository) GetByID(ctx context.Context, id, userID string) (*guarantee.Guarantee, error) {
	query := `SELECT ` + guaranteeColumns + ` FROM guarantees WHERE id = $1 AND user_id = $2`

	g, err := scanGuarantee(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, guarantee.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guarantee: %w", err)
	}
	return g, nil
}

// ListByUserID orders by expiry date so the next guarantees to lapse come
// first.
func (r *GuaranteeRepository) ListByUserID(ctx context.Context, userID string) ([]*guarantee.Guarantee, error) {
	query := `SELECT ` + guaranteeColumns + ` FROM guarantees WHERE user_id = $1 ORDER BY expiry_date ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guarantees: %w", err)
	}
	defer rows.Close()

	var guarantees []*guarantee.Guarantee
	for rows.Next() {
		g, err := scanGuarantee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guarantee: %w", err)
		}
		guarantees = append(guarantees, g)
	}
	return guarantees, rows.Err()
}

func (r *GuaranteeRepository) Update(ctx context.Context, id, userID string, params guarantee.UpdateParams) (*guarantee.Guarantee, error) {
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
	if params.Description != nil {
		appendSet("description", *params.Description)
	}
	if params.Amount != nil {
		appendSet("amount", *params.Amount)
	}
	if params.ExpiryDate != nil {
		appendSet("expiry_date", *params.ExpiryDate)
	}

	query := fmt.Sprintf(`
		UPDATE guarantees
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+guaranteeColumns,
		strings.Join(setClauses, ", "), argIndex, argIndex+1)
	args = append(args, id, userID)

	g, err := scanGuarantee(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, guarantee.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update guarantee: %w", err)
	}
	return g, nil
}

func (r *GuaranteeRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM guarantees WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete guarantee: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete guarantee: %w", err)
	}
	if affected == 0 {
		return guarantee.ErrNotFound
	}
	return nil
}

func scanGuarantee(s scanner) (*guarantee.Guarantee, error) {
	var g guarantee.Guarantee
	var description sql.NullString

	err := s.Scan(&g.ID, &g.UserID, &g.Name, &description, &g.Amount, &g.ExpiryDate, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		g.Description = &description.String
	}
	return &g, nil
}
