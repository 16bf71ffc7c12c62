// Package migrations applies the schema at startup. Statements are
// idempotent so repeated runs are safe.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price BIGINT NOT NULL,
		cost BIGINT,
		stock BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	)`,

	`CREATE SEQUENCE IF NOT EXISTS sale_no_seq`,

	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		sale_no TEXT NOT NULL UNIQUE,
		customer_name TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		channel TEXT NOT NULL,
		payment_summary TEXT NOT NULL DEFAULT '',
		subtotal BIGINT NOT NULL,
		discount BIGINT NOT NULL DEFAULT 0,
		delivery_fee BIGINT NOT NULL DEFAULT 0,
		final_total BIGINT NOT NULL,
		profit BIGINT NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		delivery_address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS sale_items (
		id BIGSERIAL PRIMARY KEY,
		sale_id BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
		name TEXT NOT NULL,
		unit_price BIGINT NOT NULL,
		unit_cost BIGINT,
		quantity BIGINT NOT NULL CHECK (quantity >= 1),
		kind TEXT NOT NULL,
		price_overridden BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		sale_id BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		method TEXT NOT NULL,
		amount BIGINT NOT NULL CHECK (amount >= 0)
	)`,

	// The ledger references products and sales by id only, without foreign
	// keys, so catalog deletions cannot invalidate the audit trail.
	`CREATE TABLE IF NOT EXISTS stock_ledger (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		previous_stock BIGINT NOT NULL,
		new_stock BIGINT NOT NULL,
		change_amount BIGINT NOT NULL,
		reference_type TEXT NOT NULL,
		reference_id BIGINT,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stock_ledger_product_created
		ON stock_ledger (product_id, created_at)`,

	`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items (sale_id)`,

	`CREATE INDEX IF NOT EXISTS idx_payments_sale ON payments (sale_id)`,
}

func Run(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying migration: %w", err)
		}
	}

	return nil
}
