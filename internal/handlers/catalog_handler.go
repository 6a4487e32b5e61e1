package handlers

import (
	"log"

	"ordersystem/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the public product listing.
type CatalogHandler struct {
	productService *services.ProductService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(productService *services.ProductService) *CatalogHandler {
	return &CatalogHandler{productService: productService}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
}

// HandleIndex lists all catalog products.
func (h *CatalogHandler) HandleIndex(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(fiber.Map{
		"products": products,
	})
}
