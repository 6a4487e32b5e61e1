package services

import (
	"encoding/json"
	"errors"
	"log"

	"ordersystem/internal/models"
	"ordersystem/internal/repositories"

	"ordersystem/pkg/payment"
)

// PlacedOrder is the outcome of a successful checkout. EmailSent reports the
// confirmation mail result; a committed order stays valid either way.
type PlacedOrder struct {
	Order     *models.Order
	EmailSent bool
}

// CheckoutService converts a validated cart into a paid order.
type CheckoutService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	gateway     payment.Gateway
	mailer      Mailer
	events      EventPublisher
}

// NewCheckoutService creates a new CheckoutService. events may be nil when
// no message broker is configured.
func NewCheckoutService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	gateway payment.Gateway,
	mailer Mailer,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		mailer:      mailer,
		events:      events,
	}
}

// PrepareCart loads and validates the user's cart for checkout without
// mutating anything. It returns models.ErrCartEmpty for an empty cart and
// *models.InsufficientStockError for the first line whose product is gone
// or short on stock; no partial acceptance.
func (s *CheckoutService) PrepareCart(userID string) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, models.ErrCartEmpty
	}

	view := &CartView{Lines: []CartLine{}}
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &models.InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: -1,
				}
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			log.Printf("User %s attempted to order out-of-stock product %s", userID, product.ID)
			return nil, &models.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.Stock,
			}
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

// PlaceOrder runs the full checkout: re-validate the cart, charge the
// gateway, and on success atomically persist the order, decrement stock and
// clear the cart. The confirmation email and the order.created event are
// strictly post-commit and best-effort.
func (s *CheckoutService) PlaceOrder(userID, walletNumber, paymentDetails string) (*PlacedOrder, error) {
	view, err := s.PrepareCart(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if !s.gateway.Process(view.Total, userID, walletNumber, paymentDetails) {
		log.Printf("Payment failed for user %s during checkout", userID)
		return nil, models.ErrPaymentDeclined
	}

	order := &models.Order{
		UserID:      userID,
		TotalAmount: view.Total,
		Paid:        true,
	}
	for _, line := range view.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	if err := s.orderRepo.PlaceOrder(order); err != nil {
		return nil, err
	}
	log.Printf("Order %s placed by user %s for $%.2f", order.ID, userID, order.TotalAmount)

	result := &PlacedOrder{Order: order, EmailSent: true}
	if err := s.mailer.SendOrderConfirmation(user.Email, order); err != nil {
		log.Printf("Order %s: failed to send confirmation email to %s: %v", order.ID, user.Email, err)
		result.EmailSent = false
	}

	s.publishOrderCreated(order)

	return result, nil
}

// GetOrder retrieves a committed order for the confirmation view.
func (s *CheckoutService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// publishOrderCreated emits an order.created event. Failures are logged and
// never affect the committed order.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount,
		"paid":     order.Paid,
	})
	if err != nil {
		log.Printf("Failed to marshal order %s event: %v", order.ID, err)
		return
	}
	if err := s.events.Publish("order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}
