package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bookhaven-backend/internal/orders"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
)

const itemAddedMessage = "Item was added"

type updateItemResponse struct {
	Message string `json:"message"`
	orders.UpdateItemResult
}

type completedOrder struct {
	OrderID       uuid.UUID       `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Complete      bool            `json:"complete"`
	CartTotal     decimal.Decimal `json:"cart_total"`
	CartItems     int             `json:"cart_items"`
	Shipping      bool            `json:"shipping"`
	DateOrdered   time.Time       `json:"date_ordered"`
}

func newCompletedOrder(order *models.Order) completedOrder {
	return completedOrder{
		OrderID:       order.ID,
		TransactionID: order.TransactionID,
		Complete:      order.Complete,
		CartTotal:     order.CartTotal(),
		CartItems:     order.CartItemCount(),
		Shipping:      order.RequiresShipping(),
		DateOrdered:   order.DateOrdered,
	}
}
