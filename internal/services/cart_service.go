package services

import (
	"errors"
	"fmt"

	"ordersystem/internal/models"
	"ordersystem/internal/repositories"
)

// CartLine is one cart item resolved against the catalog.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// CartView is the user's cart as presented: resolved lines and grand total.
// Lines whose product has been deleted from the catalog are omitted.
type CartView struct {
	Lines []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CartService handles business logic for per-user shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart puts quantity units of a product into the user's cart. A
// non-positive quantity falls back to 1. If the (user, product) line already
// exists its quantity is incremented, so the pair stays unique. Stock is not
// checked here; checkout validates it.
func (s *CartService) AddToCart(userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.productRepo.GetByID(productID); err != nil {
		return err
	}

	item, err := s.cartRepo.FindItem(userID, productID)
	switch {
	case err == nil:
		item.Quantity += quantity
		return s.cartRepo.Save(item)
	case errors.Is(err, repositories.ErrNotFound):
		return s.cartRepo.Save(&models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
	default:
		return fmt.Errorf("failed to add to cart: %w", err)
	}
}

// RemoveFromCart deletes the user's cart line for the product. Removing a
// product that is not in the cart is a no-op, not an error.
func (s *CartService) RemoveFromCart(userID, productID string) error {
	return s.cartRepo.DeleteItem(userID, productID)
}

// ViewCart resolves the user's cart lines against the catalog and computes
// subtotals and the grand total. Lines referencing a product that no longer
// exists are skipped silently, matching the tolerant read path.
func (s *CartService) ViewCart(userID string) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Lines: []CartLine{}}
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		subtotal := product.Price * float64(item.Quantity)
		view.Lines = append(view.Lines, CartLine{
			Product:  *product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total += subtotal
	}
	return view, nil
}
