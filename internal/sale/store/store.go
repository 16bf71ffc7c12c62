package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmachado/retailops/internal/sale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSale reads a sale header row.
// Expected column order: id, sale_no, customer_name, customer_phone, channel,
// payment_summary, subtotal, discount, delivery_fee, final_total, profit,
// notes, delivery_address, created_at
func scanSale(s scanner) (*sale.Sale, error) {
	var sl sale.Sale

	var channel string

	if err := s.Scan(
		&sl.ID, &sl.SaleNo, &sl.CustomerName, &sl.CustomerPhone, &channel,
		&sl.PaymentSummary, &sl.Subtotal, &sl.Discount, &sl.DeliveryFee,
		&sl.FinalTotal, &sl.Profit, &sl.Notes, &sl.DeliveryAddress, &sl.CreatedAt,
	); err != nil {
		return nil, err
	}

	sl.Channel = sale.Channel(channel)

	return &sl, nil
}

const selectSaleColumns = `
	id, sale_no, customer_name, customer_phone, channel, payment_summary,
	subtotal, discount, delivery_fee, final_total, profit, notes,
	delivery_address, created_at
`

// CreateSale inserts the sale header, assigning the id and the human-facing
// sale number from the sale_no sequence.
func (s *Store) CreateSale(ctx context.Context, sl *sale.Sale) error {
	query := `
		INSERT INTO sales (
			sale_no, customer_name, customer_phone, channel, payment_summary,
			subtotal, discount, delivery_fee, final_total, profit, notes,
			delivery_address, created_at
		)
		VALUES (
			'S-' || to_char(NOW(), 'YYYYMMDD') || '-' || lpad(nextval('sale_no_seq')::text, 4, '0'),
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW()
		)
		RETURNING id, sale_no, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sl.CustomerName,
		sl.CustomerPhone,
		sl.Channel,
		sl.PaymentSummary,
		sl.Subtotal,
		sl.Discount,
		sl.DeliveryFee,
		sl.FinalTotal,
		sl.Profit,
		sl.Notes,
		sl.DeliveryAddress,
	).Scan(&sl.ID, &sl.SaleNo, &sl.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating sale: %w", err)
	}

	return nil
}

func (s *Store) CreateItem(ctx context.Context, item *sale.Item) error {
	query := `
		INSERT INTO sale_items (sale_id, product_id, name, unit_price, unit_cost, quantity, kind, price_overridden)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		item.SaleID,
		item.ProductID,
		item.Name,
		item.UnitPrice,
		item.UnitCost,
		item.Quantity,
		item.Kind,
		item.PriceOverridden,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("creating sale item: %w", err)
	}

	return nil
}

func (s *Store) CreatePayment(ctx context.Context, p *sale.Payment) error {
	query := `
		INSERT INTO payments (sale_id, method, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, p.SaleID, p.Method, p.Amount).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

// GetSale loads a sale header together with its items and payments.
func (s *Store) GetSale(ctx context.Context, id int64) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE id = $1`

	sl, err := scanSale(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	if sl.Items, err = s.saleItems(ctx, id); err != nil {
		return nil, err
	}

	if sl.Payments, err = s.salePayments(ctx, id); err != nil {
		return nil, err
	}

	return sl, nil
}

func (s *Store) saleItems(ctx context.Context, saleID int64) ([]*sale.Item, error) {
	query := `
		SELECT id, sale_id, product_id, name, unit_price, unit_cost, quantity, kind, price_overridden
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listing sale items: %w", err)
	}
	defer rows.Close()

	var items []*sale.Item

	for rows.Next() {
		var it sale.Item

		var kind string

		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.Name, &it.UnitPrice,
			&it.UnitCost, &it.Quantity, &kind, &it.PriceOverridden,
		); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}

		it.Kind = sale.ItemKind(kind)

		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale item rows: %w", err)
	}

	return items, nil
}

func (s *Store) salePayments(ctx context.Context, saleID int64) ([]*sale.Payment, error) {
	query := `
		SELECT id, sale_id, method, amount
		FROM payments
		WHERE sale_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*sale.Payment

	for rows.Next() {
		var p sale.Payment

		var method string

		if err := rows.Scan(&p.ID, &p.SaleID, &method, &p.Amount); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Method = sale.PaymentMethod(method)

		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

// ListSales returns sale headers only; items and payments load via GetSale.
func (s *Store) ListSales(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Channel != nil {
		query += fmt.Sprintf(" AND channel = $%d", argIdx)

		args = append(args, *filter.Channel)
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
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale

	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale rows: %w", err)
	}

	return sales, nil
}
