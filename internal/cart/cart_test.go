package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarkeinon-bit/ecommerce1/internal/models"
)

func testProduct(name string, price string) models.Product {
	p := models.Product{
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Images: []string{"/storage/" + name + ".jpg"},
	}
	p.ID = uuid.New()
	return p
}

func TestAddAppendsNewLine(t *testing.T) {
	product := testProduct("espresso-cup", "12.50")

	items, count := Add(nil, product, 1)

	require.Len(t, items, 1)
	assert.Equal(t, 1, count)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, "espresso-cup", items[0].Name)
	assert.Equal(t, "/storage/espresso-cup.jpg", items[0].Image)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].UnitAmount.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, items[0].TotalAmount.Equal(decimal.RequireFromString("12.50")))
}

func TestAddSameProductMergesQuantity(t *testing.T) {
	product := testProduct("espresso-cup", "12.50")

	items, _ := Add(nil, product, 1)
	items, count := Add(items, product, 1)

	require.Len(t, items, 1)
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].TotalAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	product := testProduct("kettle", "45.00")

	items, _ := Add(nil, product, 0)

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddUsesPlaceholderImageWhenProductHasNone(t *testing.T) {
	product := testProduct("kettle", "45.00")
	product.Images = nil

	items, _ := Add(nil, product, 1)

	require.Len(t, items, 1)
	assert.Equal(t, "placeholder.jpg", items[0].Image)
}

func TestRemoveDeletesMatchingLine(t *testing.T) {
	first := testProduct("first", "10.00")
	second := testProduct("second", "20.00")

	items, _ := Add(nil, first, 1)
	items, _ = Add(items, second, 1)

	items = Remove(items, first.ID)

	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ProductID)
}

func TestRemoveUnknownProductIsNoOp(t *testing.T) {
	product := testProduct("first", "10.00")
	items, _ := Add(nil, product, 1)

	items = Remove(items, uuid.New())

	assert.Len(t, items, 1)
}

func TestIncrementRecomputesLineTotal(t *testing.T) {
	product := testProduct("mug", "7.25")
	items, _ := Add(nil, product, 1)

	items = Increment(items, product.ID)

	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].TotalAmount.Equal(decimal.RequireFromString("14.50")))
}

func TestDecrementFloorsAtOne(t *testing.T) {
	product := testProduct("mug", "7.25")
	items, _ := Add(nil, product, 2)

	items = Decrement(items, product.ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].TotalAmount.Equal(decimal.RequireFromString("7.25")))

	items = Decrement(items, product.ID)
	assert.Equal(t, 1, items[0].Quantity, "decrement below one is a no-op")
}

func TestGrandTotalSumsLineTotals(t *testing.T) {
	first := testProduct("first", "100.00")
	second := testProduct("second", "0.99")

	items, _ := Add(nil, first, 2)
	items, _ = Add(items, second, 3)

	assert.True(t, GrandTotal(items).Equal(decimal.RequireFromString("202.97")))
}

func TestGrandTotalMatchesQuantityTimesUnitAmount(t *testing.T) {
	products := []models.Product{
		testProduct("a", "19.99"),
		testProduct("b", "5.00"),
		testProduct("c", "120.45"),
	}

	var items []Item
	for i, p := range products {
		items, _ = Add(items, p, i+1)
	}

	expected := decimal.Zero
	for _, item := range items {
		expected = expected.Add(item.UnitAmount.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, GrandTotal(items).Equal(expected))
}

func TestGrandTotalOfEmptyCartIsZero(t *testing.T) {
	assert.True(t, GrandTotal(nil).IsZero())
}
