package repositories

import "ordersystem/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// PlaceOrder commits a paid checkout in one atomic unit: it creates the
	// order and its items, decrements each product's stock by the purchased
	// quantity, and clears the owning user's cart. Either everything
	// persists or nothing does. Stock is re-checked under lock; a shortfall
	// discovered at commit time returns *models.InsufficientStockError and
	// leaves every row untouched.
	PlaceOrder(order *models.Order) error
	// GetByID returns an order with its items preloaded, or ErrNotFound.
	GetByID(id string) (*models.Order, error)
}
