package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmachado/retailops/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type adjustTx struct {
	tx        *sql.Tx
	productID int64
}

// BeginAdjust opens a transaction; the first Stock call takes a row-level
// lock (FOR UPDATE) that serializes concurrent adjustments per product.
func (s *Store) BeginAdjust(ctx context.Context, productID int64) (inventory.AdjustTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning adjust tx: %w", err)
	}

	return &adjustTx{tx: tx, productID: productID}, nil
}

func (a *adjustTx) Stock(ctx context.Context) (int64, error) {
	var stock int64

	err := a.tx.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE id = $1 FOR UPDATE`,
		a.productID,
	).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, inventory.ErrProductNotFound
		}

		return 0, fmt.Errorf("locking product row: %w", err)
	}

	return stock, nil
}

func (a *adjustTx) SetStock(ctx context.Context, stock int64) error {
	_, err := a.tx.ExecContext(ctx,
		`UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`,
		stock, a.productID,
	)
	if err != nil {
		return fmt.Errorf("updating stock: %w", err)
	}

	return nil
}

func (a *adjustTx) AppendEntry(ctx context.Context, e *inventory.LedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (product_id, previous_stock, new_stock, change_amount, reference_type, reference_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := a.tx.QueryRowContext(ctx, query,
		e.ProductID,
		e.PreviousStock,
		e.NewStock,
		e.ChangeAmount,
		e.ReferenceType,
		e.ReferenceID,
		e.Note,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting ledger entry: %w", err)
	}

	return nil
}

func (a *adjustTx) Commit() error   { return a.tx.Commit() }
func (a *adjustTx) Rollback() error { return a.tx.Rollback() }

func (s *Store) GetStock(ctx context.Context, productID int64) (int64, error) {
	var stock int64

	err := s.db.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE id = $1`,
		productID,
	).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, inventory.ErrProductNotFound
		}

		return 0, fmt.Errorf("reading stock: %w", err)
	}

	return stock, nil
}

func (s *Store) ListEntries(ctx context.Context, filter inventory.LedgerFilter) ([]*inventory.LedgerEntry, error) {
	query := `
		SELECT id, product_id, previous_stock, new_stock, change_amount, reference_type, reference_id, note, created_at
		FROM stock_ledger
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", argIdx)

		args = append(args, *filter.ProductID)
		argIdx++
	}

	if filter.ReferenceType != nil {
		query += fmt.Sprintf(" AND reference_type = $%d", argIdx)

		args = append(args, *filter.ReferenceType)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*inventory.LedgerEntry

	for rows.Next() {
		var e inventory.LedgerEntry

		if err := rows.Scan(
			&e.ID, &e.ProductID, &e.PreviousStock, &e.NewStock, &e.ChangeAmount,
			&e.ReferenceType, &e.ReferenceID, &e.Note, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return entries, nil
}
