package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clarkeinon-bit/ecommerce1/internal/models"
)

// CatalogHandler serves the category and brand lists that feed the
// storefront filters.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns active categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Where("is_active = ?", true).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// ListBrands returns active brands.
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	var brands []models.Brand
	if err := h.db.Where("is_active = ?", true).
		Order("name asc").
		Find(&brands).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": brands})
}
