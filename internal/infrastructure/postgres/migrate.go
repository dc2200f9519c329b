package postgres

import (
	"context"
	"fmt"
)

// migrations run in order on startup. Each statement is idempotent so a
// restart against an already-migrated database is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id              UUID PRIMARY KEY,
		user_id         UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		starting_amount NUMERIC(19,4) NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT accounts_user_id_name_key UNIQUE (user_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id           UUID PRIMARY KEY,
		account_id   UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		description  TEXT NOT NULL,
		amount       NUMERIC(19,4) NOT NULL,
		date         TIMESTAMPTZ NOT NULL,
		tags         TEXT[] NOT NULL DEFAULT '{}',
		is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
		frequency    TEXT,
		end_date     TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_tags ON transactions USING GIN (tags)`,

	`CREATE TABLE IF NOT EXISTS budgets (
		id           UUID PRIMARY KEY,
		user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		limit_amount NUMERIC(19,4) NOT NULL,
		tag          TEXT NOT NULL,
		start_date   TIMESTAMPTZ,
		end_date     TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_user_id ON budgets(user_id)`,

	`CREATE TABLE IF NOT EXISTS debts (
		id            UUID PRIMARY KEY,
		user_id       UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		lender        TEXT NOT NULL,
		principal     NUMERIC(19,4) NOT NULL,
		interest_rate NUMERIC(9,4) NOT NULL DEFAULT 0,
		start_date    TIMESTAMPTZ,
		due_date      TIMESTAMPTZ NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_debts_user_id ON debts(user_id)`,

	`CREATE TABLE IF NOT EXISTS debt_payments (
		id         UUID PRIMARY KEY,
		debt_id    UUID NOT NULL REFERENCES debts(id) ON DELETE CASCADE,
		amount     NUMERIC(19,4) NOT NULL,
		date       TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_debt_payments_debt_id ON debt_payments(debt_id)`,

	`CREATE TABLE IF NOT EXISTS guarantees (
		id          UUID PRIMARY KEY,
		user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT,
		amount      NUMERIC(19,4) NOT NULL DEFAULT 0,
		expiry_date TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_guarantees_user_id ON guarantees(user_id)`,
}

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, db *DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
