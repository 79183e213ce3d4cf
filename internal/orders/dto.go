package orders

import (
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemDTO is one rendered cart line.
type CartItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Digital   bool            `json:"digital"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CartDTO is the cart/checkout view of an order.
type CartDTO struct {
	OrderID   *uuid.UUID      `json:"order_id"`
	Items     []CartItemDTO   `json:"items"`
	CartTotal decimal.Decimal `json:"cart_total"`
	CartItems int             `json:"cart_items"`
	Shipping  bool            `json:"shipping"`
}

// EmptyCart is the zero-valued pseudo-order rendered for anonymous visitors.
func EmptyCart() CartDTO {
	return CartDTO{
		Items:     []CartItemDTO{},
		CartTotal: decimal.Zero,
	}
}

// FromOrder renders an order with its loaded items.
func FromOrder(order *models.Order) CartDTO {
	if order == nil {
		return EmptyCart()
	}
	id := order.ID
	dto := CartDTO{
		OrderID:   &id,
		Items:     make([]CartItemDTO, 0, len(order.Items)),
		CartTotal: order.CartTotal(),
		CartItems: order.CartItemCount(),
		Shipping:  order.RequiresShipping(),
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, fromItem(item))
	}
	return dto
}

func fromItem(item models.OrderItem) CartItemDTO {
	dto := CartItemDTO{
		ID:       item.ID,
		Quantity: item.Quantity,
		Total:    item.Total(),
		Price:    decimal.Zero,
	}
	if item.ProductID != nil {
		dto.ProductID = *item.ProductID
	}
	if item.Product != nil {
		dto.Name = item.Product.Name()
		dto.Price = item.Product.Price
		dto.Digital = item.Product.Digital
	}
	return dto
}

// UpdateItemResult reports the item state after an update-item call.
type UpdateItemResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Removed   bool      `json:"removed"`
	Cart      CartDTO   `json:"cart"`
}

// ShippingInput carries the delivery address submitted at checkout.
type ShippingInput struct {
	Address string
	City    string
	State   string
	Zipcode string
}

// CompleteInput carries the checkout submission.
type CompleteInput struct {
	Total         decimal.Decimal
	TransactionID string
	Shipping      *ShippingInput
}
