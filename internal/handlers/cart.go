package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarkeinon-bit/ecommerce1/internal/cart"
	"github.com/clarkeinon-bit/ecommerce1/internal/models"
)

// CartHandler manages the cookie-held shopping cart.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// GetCart returns the current cart contents.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	items := cart.ReadCookie(c)
	return cartResponse(c, items)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddItem merges a product into the cart, appending a new line or raising
// the quantity of an existing one.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	items, _ := cart.Add(cart.ReadCookie(c), product, req.Quantity)
	if err := cart.WriteCookie(c, items); err != nil {
		return err
	}

	return cartResponse(c, items)
}

// RemoveItem deletes a line from the cart.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	items := cart.Remove(cart.ReadCookie(c), productID)
	if err := cart.WriteCookie(c, items); err != nil {
		return err
	}

	return cartResponse(c, items)
}

// IncrementItem raises a line's quantity by one.
func (h *CartHandler) IncrementItem(c *fiber.Ctx) error {
	return h.adjustQuantity(c, cart.Increment)
}

// DecrementItem lowers a line's quantity by one, never below one.
func (h *CartHandler) DecrementItem(c *fiber.Ctx) error {
	return h.adjustQuantity(c, cart.Decrement)
}

func (h *CartHandler) adjustQuantity(c *fiber.Ctx, adjust func([]cart.Item, uuid.UUID) []cart.Item) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	items := adjust(cart.ReadCookie(c), productID)
	if err := cart.WriteCookie(c, items); err != nil {
		return err
	}

	return cartResponse(c, items)
}

// ClearCart removes all cart state.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	cart.ClearCookie(c)
	return cartResponse(c, nil)
}

func cartResponse(c *fiber.Ctx, items []cart.Item) error {
	if items == nil {
		items = []cart.Item{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":       items,
			"count":       len(items),
			"grand_total": cart.GrandTotal(items),
		},
	})
}
