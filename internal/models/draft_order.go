package models

import "github.com/shopspring/decimal"

// DraftOrderRequest represents an incoming storefront checkout submission
type DraftOrderRequest struct {
	Customer       Customer `json:"customer"`
	Cart           Cart     `json:"cart"`
	Address        Address  `json:"address"`
	BillingAddress *Address `json:"billingAddress,omitempty"`
	UseShipping    bool     `json:"useShipping"`
}

// Customer identifies the buyer. All fields are optional: a guest with no
// email produces draft orders with no customer association.
type Customer struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Cart holds the ordered line items. Items must be non-empty.
type Cart struct {
	Items    []CartItem `json:"items"`
	Currency string     `json:"currency,omitempty"`
}

// CartItem is a single storefront cart line. OriginalPrice is the
// pre-discount unit price, FinalPrice the price the customer actually saw.
// TotalDiscount is the recorded discount amount for the line; a positive
// value is what signals that a per-line discount should be attached.
type CartItem struct {
	VariantID     string          `json:"variantId"`
	Title         string          `json:"title,omitempty"`
	Quantity      int             `json:"quantity"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	FinalPrice    decimal.Decimal `json:"finalPrice"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
}

// Address is a storefront-supplied mailing address. Missing fields are
// forwarded to the Admin API as empty strings, never null.
type Address struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
	Country   string `json:"country,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CreatedDraftOrder is the projection of a draft order returned by the Admin
// API. It lives only for the duration of the response and the summary email.
type CreatedDraftOrder struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	InvoiceURL string            `json:"invoiceUrl"`
	Total      string            `json:"total"`
	Currency   string            `json:"currency"`
	PlanStage  string            `json:"planStage,omitempty"`
	LineItems  []CreatedLineItem `json:"lineItems"`
}

// CreatedLineItem carries what the summary email needs per line.
type CreatedLineItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// DraftOrderResponse is the success payload of POST /api/draft-orders
type DraftOrderResponse struct {
	Success    bool                `json:"success"`
	Drafts     []CreatedDraftOrder `json:"drafts"`
	EmailSent  bool                `json:"emailSent"`
	EmailError string              `json:"emailError,omitempty"`
}
