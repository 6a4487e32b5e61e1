package handlers

import (
	"errors"
	"log"

	"ordersystem/internal/middleware"
	"ordersystem/internal/models"
	"ordersystem/internal/repositories"
	"ordersystem/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the checkout workflow and the order confirmation
// view. All routes require an authenticated session.
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	validate        *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validate:        newValidator(),
	}
}

// RegisterRoutes registers the checkout routes.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/checkout", h.HandleCheckoutForm)
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/order_confirmation/:order_id", h.HandleOrderConfirmation)
}

// CheckoutRequest represents the payment form submission.
type CheckoutRequest struct {
	WalletNumber   string `json:"wallet_number" form:"wallet_number" validate:"required,len=10,number"`
	PaymentDetails string `json:"payment_details" form:"payment_details" validate:"required"`
}

// HandleCheckoutForm renders the validated cart and total for the payment
// form without mutating anything.
func (h *CheckoutHandler) HandleCheckoutForm(c *fiber.Ctx) error {
	userID := c.Locals(middleware.SessionUserKey).(string)

	view, err := h.checkoutService.PrepareCart(userID)
	if err != nil {
		return h.cartError(c, userID, err)
	}

	return c.JSON(fiber.Map{
		"items":  view.Lines,
		"total":  view.Total,
		"fields": []string{"wallet_number", "payment_details"},
	})
}

// HandleCheckout runs the payment submission. Malformed payment fields are
// rejected before any gateway call; a declined payment re-presents the same
// cart with nothing mutated.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	userID := c.Locals(middleware.SessionUserKey).(string)

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		messages := validationMessages(err)
		if _, ok := messages["wallet_number"]; ok {
			messages["wallet_number"] = "Wallet number must be 10 digits."
		}
		if _, ok := messages["payment_details"]; ok {
			messages["payment_details"] = "Please enter all payment details."
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please enter valid payment details.",
			"errors":  messages,
		})
	}

	placed, err := h.checkoutService.PlaceOrder(userID, req.WalletNumber, req.PaymentDetails)
	if err != nil {
		if errors.Is(err, models.ErrPaymentDeclined) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"message": "Payment failed! Please check your details.",
			})
		}
		return h.cartError(c, userID, err)
	}

	message := "Order placed successfully!"
	if !placed.EmailSent {
		message = "Order placed, but failed to send confirmation email. Please contact support."
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  message,
		"order_id": placed.Order.ID,
	})
}

// HandleOrderConfirmation shows a committed order by its ID.
func (h *CheckoutHandler) HandleOrderConfirmation(c *fiber.Ctx) error {
	orderID := c.Params("order_id")

	order, err := h.checkoutService.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}

	return c.JSON(order)
}

// cartError maps cart validation failures shared by the GET and POST paths.
func (h *CheckoutHandler) cartError(c *fiber.Ctx, userID string, err error) error {
	var stockErr *models.InsufficientStockError
	switch {
	case errors.Is(err, models.ErrCartEmpty):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Your cart is empty!",
		})
	case errors.As(err, &stockErr):
		name := stockErr.ProductName
		if name == "" {
			name = stockErr.ProductID
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Product " + name + " is out of stock!",
		})
	default:
		log.Printf("Error during checkout for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process checkout",
		})
	}
}
