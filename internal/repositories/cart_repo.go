package repositories

import "ordersystem/internal/models"

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	// FindItem returns the cart line for (user, product), or ErrNotFound.
	FindItem(userID, productID string) (*models.CartItem, error)
	// ListByUser returns all of the user's cart lines in insertion order.
	ListByUser(userID string) ([]models.CartItem, error)
	// Save creates the line if it has no ID yet, updates it otherwise.
	Save(item *models.CartItem) error
	// DeleteItem removes the line for (user, product). Missing lines are
	// not an error.
	DeleteItem(userID, productID string) error
}
