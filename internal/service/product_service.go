package service

import (
	"context"
	"fmt"

	"github.com/GTDGit/todopro_api/internal/models"
)

// ProductStore is the products table.
type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
}

// ProductService serves the products table of the backend.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List returns every product row.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
