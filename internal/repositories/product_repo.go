package repositories

import "ordersystem/internal/models"

// ProductRepository defines the interface for catalog reads. Product rows
// are written only by checkout (through OrderRepository.PlaceOrder) and by
// administrative tooling outside this application, so no mutating methods
// are exposed here beyond seeding.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
}
