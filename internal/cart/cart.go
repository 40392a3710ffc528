package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clarkeinon-bit/ecommerce1/internal/models"
)

// Item is one cart line. The JSON field names are the cookie wire format and
// must stay stable across releases.
type Item struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Quantity    int             `json:"quantity"`
	UnitAmount  decimal.Decimal `json:"unit_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Add merges a product into the cart. An existing line for the same product
// has its quantity increased; otherwise a new line is appended. Quantities
// below one count as one. Returns the updated cart and the number of
// distinct lines.
func Add(items []Item, product models.Product, quantity int) ([]Item, int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += quantity
			items[i].TotalAmount = lineTotal(items[i])
			return items, len(items)
		}
	}

	item := Item{
		ProductID:  product.ID,
		Name:       product.Name,
		Image:      product.FirstImage(),
		Quantity:   quantity,
		UnitAmount: product.Price,
	}
	item.TotalAmount = lineTotal(item)
	return append(items, item), len(items) + 1
}

// Remove deletes the line matching productID, if present.
func Remove(items []Item, productID uuid.UUID) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// Increment raises the matching line's quantity by one.
func Increment(items []Item, productID uuid.UUID) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			items[i].TotalAmount = lineTotal(items[i])
			break
		}
	}
	return items
}

// Decrement lowers the matching line's quantity by one, floored at one.
func Decrement(items []Item, productID uuid.UUID) []Item {
	for i := range items {
		if items[i].ProductID == productID {
			if items[i].Quantity > 1 {
				items[i].Quantity--
				items[i].TotalAmount = lineTotal(items[i])
			}
			break
		}
	}
	return items
}

// GrandTotal sums all line totals.
func GrandTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalAmount)
	}
	return total
}

func lineTotal(item Item) decimal.Decimal {
	return item.UnitAmount.Mul(decimal.NewFromInt(int64(item.Quantity)))
}
