package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront-labs/draft-checkout/internal/models"
	"github.com/storefront-labs/draft-checkout/internal/shopify"
)

var oneHundred = decimal.NewFromInt(100)

// Compose transforms a storefront submission into one or two draft-order
// inputs, depending on the store settings.
//
// Two inputs are produced only when double mode is enabled AND both
// configured discounts are strictly positive; a store with the flag on but a
// zero discount silently degrades to single mode. Both halves share one
// submission reference attribute so they can be correlated in the admin.
func Compose(req models.DraftOrderRequest, settings *models.StoreSettings) []shopify.DraftOrderInput {
	base := shopify.DraftOrderInput{
		LineItems:               composeLineItems(req.Cart.Items),
		ShippingAddress:         composeAddress(req.Address),
		Note:                    shopify.ProvenanceNote,
		PresentmentCurrencyCode: req.Cart.Currency,
		CustomAttributes: []shopify.AttributeInput{
			{Key: "submission_ref", Value: uuid.NewString()},
		},
	}

	if req.UseShipping {
		base.BillingAddress = base.ShippingAddress
	} else if req.BillingAddress != nil {
		base.BillingAddress = composeAddress(*req.BillingAddress)
	}

	// Prefer a store customer reference, fall back to a bare email, and
	// omit the association entirely for an anonymous guest.
	switch {
	case req.Customer.ID != "":
		base.CustomerID = customerGID(req.Customer.ID)
	case req.Customer.Email != "":
		base.Email = req.Customer.Email
	}

	if settings.DoubleOrdersEnabled && settings.DiscountA > 0 && settings.DiscountB > 0 {
		first := base
		first.Tags = []string{settings.TagA}
		first.PlanStage = settings.TagA
		first.AppliedDiscount = orderDiscount(settings.DiscountA, settings.TagA)

		second := base
		second.Tags = []string{settings.TagB}
		second.PlanStage = settings.TagB
		second.AppliedDiscount = orderDiscount(settings.DiscountB, settings.TagB)

		return []shopify.DraftOrderInput{first, second}
	}

	single := base
	single.Tags = []string{settings.SingleTag}
	single.PlanStage = settings.SingleTag
	if settings.SingleDiscount > 0 {
		single.AppliedDiscount = orderDiscount(settings.SingleDiscount, settings.SingleTag)
	}

	return []shopify.DraftOrderInput{single}
}

func composeLineItems(items []models.CartItem) []shopify.LineItemInput {
	lineItems := make([]shopify.LineItemInput, 0, len(items))

	for _, item := range items {
		lineItem := shopify.LineItemInput{
			VariantID:         variantGID(item.VariantID),
			Quantity:          item.Quantity,
			OriginalUnitPrice: item.OriginalPrice.String(),
		}

		// A positive recorded discount is the signal that a line discount
		// applies; the price delta alone is not.
		if item.TotalDiscount.IsPositive() {
			pct, _ := percentOff(item.OriginalPrice, item.FinalPrice).Float64()
			lineItem.AppliedDiscount = &shopify.AppliedDiscountInput{
				Value:     pct,
				ValueType: "PERCENTAGE",
				Title:     "Storefront discount",
			}
		}

		lineItems = append(lineItems, lineItem)
	}

	return lineItems
}

// percentOff computes the discount percentage implied by the observed price
// delta, rounded to 2 decimal places. Zero when the original price is not
// positive.
func percentOff(original, final decimal.Decimal) decimal.Decimal {
	if !original.IsPositive() {
		return decimal.Zero
	}
	return original.Sub(final).Div(original).Mul(oneHundred).Round(2)
}

// composeAddress maps a storefront address onto the Admin API schema.
// Missing fields arrive as empty strings and are forwarded as such; the
// downstream schema rejects nulls.
func composeAddress(addr models.Address) *shopify.AddressInput {
	return &shopify.AddressInput{
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Company:   addr.Company,
		Address1:  addr.Address1,
		Address2:  addr.Address2,
		City:      addr.City,
		Province:  addr.Province,
		Country:   addr.Country,
		Zip:       addr.Zip,
		Phone:     addr.Phone,
	}
}

func orderDiscount(value float64, title string) *shopify.AppliedDiscountInput {
	return &shopify.AppliedDiscountInput{
		Value:     value,
		ValueType: "PERCENTAGE",
		Title:     title,
	}
}

func variantGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/ProductVariant/" + id
}

func customerGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/Customer/" + id
}
