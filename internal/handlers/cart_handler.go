package handlers

import (
	"errors"
	"log"
	"strconv"

	"ordersystem/internal/middleware"
	"ordersystem/internal/repositories"
	"ordersystem/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart. All routes
// require an authenticated session.
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/add_to_cart/:product_id", h.HandleAddToCart)
	router.Get("/cart", h.HandleViewCart)
	router.Post("/remove_from_cart/:product_id", h.HandleRemoveFromCart)
}

// HandleAddToCart puts a product into the session user's cart. A missing or
// malformed quantity falls back to 1.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	userID := c.Locals(middleware.SessionUserKey).(string)
	productID := c.Params("product_id")

	quantity, err := strconv.Atoi(c.FormValue("quantity", "1"))
	if err != nil {
		quantity = 1
	}

	if err := h.cartService.AddToCart(userID, productID, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error adding product %s to cart for user %s: %v", productID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product added to cart!",
	})
}

// HandleViewCart returns the resolved cart lines and grand total.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	userID := c.Locals(middleware.SessionUserKey).(string)

	view, err := h.cartService.ViewCart(userID)
	if err != nil {
		log.Printf("Error viewing cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(view)
}

// HandleRemoveFromCart removes a product from the cart; removing a product
// that is not there succeeds quietly.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	userID := c.Locals(middleware.SessionUserKey).(string)
	productID := c.Params("product_id")

	if err := h.cartService.RemoveFromCart(userID, productID); err != nil {
		log.Printf("Error removing product %s from cart for user %s: %v", productID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove item from cart",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Item removed from cart.",
	})
}
