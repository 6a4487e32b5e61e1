package repositories

import (
	"errors"
	"fmt"

	"ordersystem/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// PlaceOrder commits a paid checkout in one transaction. Product rows are
// locked FOR UPDATE (postgres; sqlite serializes writers anyway) and stock
// is re-checked before decrementing, so two checkouts racing over the same
// product cannot both drain it below zero.
func (r *GORMOrderRepository) PlaceOrder(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &models.InsufficientStockError{
						ProductID: item.ProductID,
						Requested: item.Quantity,
						Available: -1,
					}
				}
				return fmt.Errorf("failed to lock product %s: %w", item.ProductID, err)
			}
			if product.Stock < item.Quantity {
				return &models.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   product.Stock,
				}
			}
			err = tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.Delete(&models.CartItem{}, "user_id = ?", order.UserID).Error; err != nil {
			return fmt.Errorf("failed to clear cart for user %s: %w", order.UserID, err)
		}
		return nil
	})
}

// GetByID returns an order with its items preloaded.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}
