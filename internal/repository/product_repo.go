package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/todopro_api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns every product in catalog order.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	const q = `
		SELECT id, code, name, price_per_unit, price_per_day, stock_needed
		FROM products
		ORDER BY id`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, err
	}
	return products, nil
}
