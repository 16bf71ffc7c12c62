package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmachado/retailops/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	query := `
		SELECT id, name, price, cost, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p catalog.Product

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Cost, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return &p, nil
}
