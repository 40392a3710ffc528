package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/clarkeinon-bit/ecommerce1/internal/models"
	"github.com/clarkeinon-bit/ecommerce1/internal/utils"
)

// productsPageSize is the fixed storefront grid size.
const productsPageSize = 9

// ProductHandler serves the storefront catalog.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns active, in-stock products matching the supplied
// filters. All filters combine with AND; category and brand multi-selects
// use IN semantics.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	query := h.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("in_stock = ?", true)

	if ids := parseUUIDList(c.Query("category_ids")); len(ids) > 0 {
		query = query.Where("category_id IN ?", ids)
	}

	if ids := parseUUIDList(c.Query("brand_ids")); len(ids) > 0 {
		query = query.Where("brand_id IN ?", ids)
	}

	if c.QueryBool("featured") {
		query = query.Where("is_featured = ?", true)
	}

	if c.QueryBool("on_sale") {
		query = query.Where("on_sale = ?", true)
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if ceiling, err := decimal.NewFromString(maxPrice); err == nil {
			query = query.Where("price <= ?", ceiling)
		}
	}

	switch c.Query("sort", "latest") {
	case "price":
		query = query.Order("price asc")
	default:
		query = query.Order("created_at desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	page := utils.ParsePage(c)
	var products []models.Product
	if err := query.Preload("Brand").Preload("Category").
		Limit(productsPageSize).Offset((page - 1) * productsPageSize).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   page,
			"items_per_page": productsPageSize,
			"total_items":    total,
		},
	})
}

// GetProduct loads a product with its relations.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Brand").Preload("Category").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

func parseUUIDList(value string) []uuid.UUID {
	var ids []uuid.UUID
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := uuid.Parse(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
