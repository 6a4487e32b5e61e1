package services

import (
	"ordersystem/internal/models"
	"ordersystem/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
// The catalog is read-only from the application's point of view: stock is
// mutated by checkout, everything else by administrative tooling.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}
