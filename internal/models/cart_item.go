package models

import "time"

// CartItem associates one user with one product and a quantity. The
// (user, product) pair is unique: re-adding a product bumps the quantity
// instead of creating a second row.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36)"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
