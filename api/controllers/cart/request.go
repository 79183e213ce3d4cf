package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bookhaven-backend/api/validators"
	"github.com/angelmondragon/bookhaven-backend/internal/orders"
)

const (
	maxAddressField  = 200
	maxTransactionID = 100
)

// UpdateItemRequest is the cart mutation body. Keys follow the storefront script.
type UpdateItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Action    string `json:"action" validate:"required"`
}

type shippingRequest struct {
	Address string `json:"address" validate:"max=200"`
	City    string `json:"city" validate:"max=200"`
	State   string `json:"state" validate:"max=200"`
	Zipcode string `json:"zipcode" validate:"max=200"`
}

// ProcessOrderRequest carries the checkout form.
type ProcessOrderRequest struct {
	Total         *decimal.Decimal `json:"total" validate:"required"`
	TransactionID string           `json:"transaction_id" validate:"max=100"`
	Shipping      *shippingRequest `json:"shipping"`
}

func toCompleteInput(req ProcessOrderRequest) orders.CompleteInput {
	input := orders.CompleteInput{TransactionID: validators.SanitizeString(req.TransactionID, maxTransactionID)}
	if req.Total != nil {
		input.Total = *req.Total
	}
	if req.Shipping != nil {
		input.Shipping = &orders.ShippingInput{
			Address: validators.SanitizeString(req.Shipping.Address, maxAddressField),
			City:    validators.SanitizeString(req.Shipping.City, maxAddressField),
			State:   validators.SanitizeString(req.Shipping.State, maxAddressField),
			Zipcode: validators.SanitizeString(req.Shipping.Zipcode, maxAddressField),
		}
	}
	return input
}
