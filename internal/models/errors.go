package models

import (
	"errors"
	"fmt"
)

// Domain errors shared by repositories, services and handlers. Handlers map
// these to status codes and user-facing messages at the boundary.
var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email address not verified")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("verification token is invalid or has expired")
	ErrAlreadyVerified    = errors.New("account already verified")
)

// InsufficientStockError reports a cart line whose requested quantity
// exceeds the product's current stock, or whose product no longer exists
// (Available is -1 in that case).
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("product %s is no longer available", e.ProductID)
	}
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}
