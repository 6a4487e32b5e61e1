package repositories

import (
	"errors"
	"fmt"

	"ordersystem/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// FindItem returns the cart line for (user, product), or ErrNotFound.
func (r *GORMCartRepository) FindItem(userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item for user %s product %s: %w", userID, productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return &item, nil
}

// ListByUser returns all of the user's cart lines in insertion order.
func (r *GORMCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Order("created_at").Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart items for user %s: %w", userID, err)
	}
	return items, nil
}

// Save creates the line if it has no ID yet, updates it otherwise.
func (r *GORMCartRepository) Save(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
		if err := r.db.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create cart item: %w", err)
		}
		return nil
	}
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update cart item %s: %w", item.ID, err)
	}
	return nil
}

// DeleteItem removes the line for (user, product); a missing line is a no-op.
func (r *GORMCartRepository) DeleteItem(userID, productID string) error {
	res := r.db.Delete(&models.CartItem{}, "user_id = ? AND product_id = ?", userID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	return nil
}
