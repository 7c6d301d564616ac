package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/draft-checkout/internal/models"
	"github.com/storefront-labs/draft-checkout/internal/shopify"
)

func singleModeSettings() *models.StoreSettings {
	return &models.StoreSettings{
		Shop:           "test-store.myshopify.com",
		SingleDiscount: 10,
		SingleTag:      "draft-checkout",
	}
}

func doubleModeSettings() *models.StoreSettings {
	return &models.StoreSettings{
		Shop:                "test-store.myshopify.com",
		DoubleOrdersEnabled: true,
		DiscountA:           40,
		DiscountB:           60,
		TagA:                "deposit",
		TagB:                "balance",
	}
}

func cartRequest(items ...models.CartItem) models.DraftOrderRequest {
	return models.DraftOrderRequest{
		Customer: models.Customer{
			ID:        "123",
			Email:     "jane@example.com",
			FirstName: "Jane",
		},
		Cart: models.Cart{
			Items:    items,
			Currency: "USD",
		},
		Address: models.Address{
			FirstName: "Jane",
			Address1:  "1 Main St",
			City:      "Springfield",
			Country:   "US",
		},
		UseShipping: true,
	}
}

func item(original, final, totalDiscount string) models.CartItem {
	return models.CartItem{
		VariantID:     "456",
		Quantity:      1,
		OriginalPrice: decimal.RequireFromString(original),
		FinalPrice:    decimal.RequireFromString(final),
		TotalDiscount: decimal.RequireFromString(totalDiscount),
	}
}

func TestCompose_SingleMode(t *testing.T) {
	inputs := Compose(cartRequest(item("1000", "1000", "0")), singleModeSettings())

	require.Len(t, inputs, 1)
	assert.Equal(t, []string{"draft-checkout"}, inputs[0].Tags)
	assert.Equal(t, "draft-checkout", inputs[0].PlanStage)
	require.NotNil(t, inputs[0].AppliedDiscount)
	assert.Equal(t, 10.0, inputs[0].AppliedDiscount.Value)
	assert.Equal(t, "PERCENTAGE", inputs[0].AppliedDiscount.ValueType)
}

func TestCompose_SingleMode_ZeroDiscountOmitsOrderDiscount(t *testing.T) {
	settings := singleModeSettings()
	settings.SingleDiscount = 0

	inputs := Compose(cartRequest(item("1000", "1000", "0")), settings)

	require.Len(t, inputs, 1)
	assert.Nil(t, inputs[0].AppliedDiscount)
}

func TestCompose_DoubleMode(t *testing.T) {
	inputs := Compose(cartRequest(item("1000", "1000", "0")), doubleModeSettings())

	require.Len(t, inputs, 2)

	assert.Equal(t, []string{"deposit"}, inputs[0].Tags)
	assert.Equal(t, "deposit", inputs[0].PlanStage)
	require.NotNil(t, inputs[0].AppliedDiscount)
	assert.Equal(t, 40.0, inputs[0].AppliedDiscount.Value)

	assert.Equal(t, []string{"balance"}, inputs[1].Tags)
	assert.Equal(t, "balance", inputs[1].PlanStage)
	require.NotNil(t, inputs[1].AppliedDiscount)
	assert.Equal(t, 60.0, inputs[1].AppliedDiscount.Value)

	// Both halves share one submission reference.
	require.Len(t, inputs[0].CustomAttributes, 1)
	require.Len(t, inputs[1].CustomAttributes, 1)
	assert.Equal(t, "submission_ref", inputs[0].CustomAttributes[0].Key)
	assert.Equal(t, inputs[0].CustomAttributes[0].Value, inputs[1].CustomAttributes[0].Value)
	assert.NotEmpty(t, inputs[0].CustomAttributes[0].Value)
}

func TestCompose_DoubleMode_ZeroDiscountDegradesToSingle(t *testing.T) {
	tests := []struct {
		name      string
		discountA float64
		discountB float64
	}{
		{name: "discount A zero", discountA: 0, discountB: 60},
		{name: "discount B zero", discountA: 40, discountB: 0},
		{name: "both zero", discountA: 0, discountB: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := doubleModeSettings()
			settings.DiscountA = tt.discountA
			settings.DiscountB = tt.discountB
			settings.SingleTag = "draft-checkout"

			inputs := Compose(cartRequest(item("1000", "1000", "0")), settings)

			require.Len(t, inputs, 1)
			assert.Equal(t, []string{"draft-checkout"}, inputs[0].Tags)
		})
	}
}

func TestCompose_LineDiscountFromPriceDelta(t *testing.T) {
	inputs := Compose(cartRequest(item("1000", "800", "1")), singleModeSettings())

	require.Len(t, inputs, 1)
	require.Len(t, inputs[0].LineItems, 1)

	discount := inputs[0].LineItems[0].AppliedDiscount
	require.NotNil(t, discount)
	assert.Equal(t, 20.0, discount.Value)
	assert.Equal(t, "PERCENTAGE", discount.ValueType)
}

func TestCompose_NoRecordedDiscountOmitsLineDiscount(t *testing.T) {
	// The recorded total discount is the signal, not the price delta.
	inputs := Compose(cartRequest(item("1000", "800", "0")), singleModeSettings())

	require.Len(t, inputs[0].LineItems, 1)
	assert.Nil(t, inputs[0].LineItems[0].AppliedDiscount)
}

func TestPercentOff(t *testing.T) {
	tests := []struct {
		name     string
		original string
		final    string
		want     string
	}{
		{name: "20 percent", original: "1000", final: "800", want: "20.00"},
		{name: "no delta", original: "1000", final: "1000", want: "0.00"},
		{name: "rounds to 2 places", original: "300", final: "200", want: "33.33"},
		{name: "zero original price", original: "0", final: "100", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentOff(decimal.RequireFromString(tt.original), decimal.RequireFromString(tt.final))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCompose_BillingAddressMirrorsShipping(t *testing.T) {
	req := cartRequest(item("1000", "1000", "0"))
	req.UseShipping = true
	req.BillingAddress = &models.Address{Address1: "2 Other St"}

	inputs := Compose(req, singleModeSettings())

	require.NotNil(t, inputs[0].BillingAddress)
	assert.Equal(t, inputs[0].ShippingAddress, inputs[0].BillingAddress)
}

func TestCompose_DistinctBillingAddress(t *testing.T) {
	req := cartRequest(item("1000", "1000", "0"))
	req.UseShipping = false
	req.BillingAddress = &models.Address{FirstName: "John", Address1: "2 Other St"}

	inputs := Compose(req, singleModeSettings())

	require.NotNil(t, inputs[0].BillingAddress)
	assert.Equal(t, "2 Other St", inputs[0].BillingAddress.Address1)
	// Missing fields map to empty strings, never null.
	assert.Equal(t, "", inputs[0].BillingAddress.City)
}

func TestCompose_CustomerAssociation(t *testing.T) {
	t.Run("prefers customer id", func(t *testing.T) {
		req := cartRequest(item("1000", "1000", "0"))
		req.Customer = models.Customer{ID: "123", Email: "jane@example.com"}

		inputs := Compose(req, singleModeSettings())

		assert.Equal(t, "gid://shopify/Customer/123", inputs[0].CustomerID)
		assert.Empty(t, inputs[0].Email)
	})

	t.Run("falls back to email", func(t *testing.T) {
		req := cartRequest(item("1000", "1000", "0"))
		req.Customer = models.Customer{Email: "jane@example.com"}

		inputs := Compose(req, singleModeSettings())

		assert.Empty(t, inputs[0].CustomerID)
		assert.Equal(t, "jane@example.com", inputs[0].Email)
	})

	t.Run("anonymous guest omits both", func(t *testing.T) {
		req := cartRequest(item("1000", "1000", "0"))
		req.Customer = models.Customer{}

		inputs := Compose(req, singleModeSettings())

		assert.Empty(t, inputs[0].CustomerID)
		assert.Empty(t, inputs[0].Email)
	})
}

func TestCompose_CarriesProvenanceNote(t *testing.T) {
	for _, settings := range []*models.StoreSettings{singleModeSettings(), doubleModeSettings()} {
		for _, input := range Compose(cartRequest(item("1000", "1000", "0")), settings) {
			assert.Equal(t, shopify.ProvenanceNote, input.Note)
		}
	}
}
