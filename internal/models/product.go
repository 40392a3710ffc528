package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string          `json:"name"`
	Slug        string          `gorm:"uniqueIndex" json:"slug"`
	Description string          `json:"description"`
	Images      pq.StringArray  `gorm:"type:text[]" json:"images"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Quantity    int             `json:"quantity"`
	IsActive    bool            `json:"is_active"`
	IsFeatured  bool            `json:"is_featured"`
	InStock     bool            `json:"in_stock"`
	OnSale      bool            `json:"on_sale"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid" json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	BrandID     *uuid.UUID      `gorm:"type:uuid" json:"brand_id"`
	Brand       *Brand          `json:"brand,omitempty"`
}

// FirstImage returns the primary catalog image or a placeholder when the
// product has no media.
func (p Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return "placeholder.jpg"
}
