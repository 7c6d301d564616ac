package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/storefront-labs/draft-checkout/internal/models"
)

// ProvenanceNote is attached to every draft order this service creates.
// The dashboard counts app-created draft orders by searching for it, so the
// exact string doubles as a query key and must not change between releases.
const ProvenanceNote = "Created by Draft Checkout"

// DraftOrderInput mirrors the Admin API DraftOrderInput object.
// Optional fields are omitted from the JSON body entirely when unset; for
// line discounts, absence (not zero) is what tells Shopify no discount applies.
type DraftOrderInput struct {
	LineItems               []LineItemInput       `json:"lineItems"`
	CustomerID              string                `json:"customerId,omitempty"`
	Email                   string                `json:"email,omitempty"`
	ShippingAddress         *AddressInput         `json:"shippingAddress,omitempty"`
	BillingAddress          *AddressInput         `json:"billingAddress,omitempty"`
	AppliedDiscount         *AppliedDiscountInput `json:"appliedDiscount,omitempty"`
	Note                    string                `json:"note,omitempty"`
	Tags                    []string              `json:"tags,omitempty"`
	CustomAttributes        []AttributeInput      `json:"customAttributes,omitempty"`
	PresentmentCurrencyCode string                `json:"presentmentCurrencyCode,omitempty"`

	// PlanStage labels which half of a payment plan this input represents.
	// It is carried onto the CreatedDraftOrder instead of relying on array
	// position, and never sent to the API.
	PlanStage string `json:"-"`
}

type LineItemInput struct {
	VariantID         string                `json:"variantId,omitempty"`
	Quantity          int                   `json:"quantity"`
	OriginalUnitPrice string                `json:"originalUnitPrice,omitempty"`
	AppliedDiscount   *AppliedDiscountInput `json:"appliedDiscount,omitempty"`
}

type AppliedDiscountInput struct {
	Value     float64 `json:"value"`
	ValueType string  `json:"valueType"` // PERCENTAGE or FIXED_AMOUNT
	Title     string  `json:"title,omitempty"`
}

type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type AttributeInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

const draftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder {
      id
      name
      invoiceUrl
      totalPrice
      currencyCode
      lineItems(first: 50) {
        edges {
          node {
            title
            quantity
            originalUnitPrice
            image {
              url
            }
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

const draftOrderSearchQuery = `
query appDraftOrders($query: String!) {
  draftOrders(first: 250, query: $query) {
    edges {
      node {
        id
      }
    }
  }
}
`

// CreateDraftOrder issues the draftOrderCreate mutation for one input.
// A non-empty userErrors list is treated the same as a transport failure:
// one error carrying the serialized detail.
func (c *Client) CreateDraftOrder(ctx context.Context, input DraftOrderInput) (*models.CreatedDraftOrder, error) {
	data, err := c.execute(ctx, draftOrderCreateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		DraftOrderCreate struct {
			DraftOrder *struct {
				ID           string `json:"id"`
				Name         string `json:"name"`
				InvoiceURL   string `json:"invoiceUrl"`
				TotalPrice   string `json:"totalPrice"`
				CurrencyCode string `json:"currencyCode"`
				LineItems    struct {
					Edges []struct {
						Node struct {
							Title             string `json:"title"`
							Quantity          int    `json:"quantity"`
							OriginalUnitPrice string `json:"originalUnitPrice"`
							Image             *struct {
								URL string `json:"url"`
							} `json:"image"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"lineItems"`
			} `json:"draftOrder"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"draftOrderCreate"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse draftOrderCreate response: %w", err)
	}

	if len(result.DraftOrderCreate.UserErrors) > 0 {
		detail, _ := json.Marshal(result.DraftOrderCreate.UserErrors)
		return nil, fmt.Errorf("draftOrderCreate user errors: %s", detail)
	}

	draft := result.DraftOrderCreate.DraftOrder
	if draft == nil || draft.ID == "" {
		return nil, fmt.Errorf("draftOrderCreate returned no draft order")
	}

	created := &models.CreatedDraftOrder{
		ID:         draft.ID,
		Name:       draft.Name,
		InvoiceURL: draft.InvoiceURL,
		Total:      draft.TotalPrice,
		Currency:   draft.CurrencyCode,
		PlanStage:  input.PlanStage,
		LineItems:  make([]models.CreatedLineItem, 0, len(draft.LineItems.Edges)),
	}

	for _, edge := range draft.LineItems.Edges {
		item := models.CreatedLineItem{
			Title:     edge.Node.Title,
			Quantity:  edge.Node.Quantity,
			UnitPrice: edge.Node.OriginalUnitPrice,
		}
		if edge.Node.Image != nil {
			item.ImageURL = edge.Node.Image.URL
		}
		created.LineItems = append(created.LineItems, item)
	}

	return created, nil
}

// CreateDraftOrders creates all inputs concurrently and preserves their
// submitted order in the result. If any creation fails the whole call fails;
// a half that already succeeded is NOT cancelled and remains in the admin as
// an orphan. That asymmetry is inherent to the fan-out strategy.
func (c *Client) CreateDraftOrders(ctx context.Context, inputs []DraftOrderInput) ([]models.CreatedDraftOrder, error) {
	results := make([]models.CreatedDraftOrder, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			created, err := c.CreateDraftOrder(ctx, input)
			if err != nil {
				return err
			}
			results[i] = *created
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// CountAppDraftOrders counts draft orders carrying the provenance note.
// The search is capped at one page of 250; stores past that show 250.
func (c *Client) CountAppDraftOrders(ctx context.Context) (int, error) {
	data, err := c.execute(ctx, draftOrderSearchQuery, map[string]interface{}{
		"query": fmt.Sprintf("note:%q", ProvenanceNote),
	})
	if err != nil {
		return 0, err
	}

	var result struct {
		DraftOrders struct {
			Edges []struct {
				Node struct {
					ID string `json:"id"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"draftOrders"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return 0, fmt.Errorf("parse draftOrders response: %w", err)
	}

	return len(result.DraftOrders.Edges), nil
}
