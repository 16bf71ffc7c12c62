package catalog

import (
	"context"
	"errors"
	"time"
)

// Product is the narrow view of a catalog product the sale pipeline needs:
// price, cost and current stock. Catalog maintenance lives elsewhere.
type Product struct {
	ID        int64
	Name      string
	Price     int64 // cents
	Cost      *int64
	Stock     int64
	CreatedAt time.Time
	UpdatedAt *time.Time
}

var ErrNotFound = errors.New("product not found")

type Repository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get looks up a product by id. Returns ErrNotFound for unknown ids.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}
