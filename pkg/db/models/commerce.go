package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is the commerce profile bound to a user identity.
type Customer struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name      string     `gorm:"column:name;type:varchar(200)" json:"name"`
	Email     string     `gorm:"column:email;type:varchar(200)" json:"email"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// Product is a sellable wrapper around a Book.
type Product struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BookID    *uuid.UUID      `gorm:"column:book_id;type:uuid;index" json:"book_id"`
	Book      *Book           `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"book,omitempty"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Digital   bool            `gorm:"column:digital;not null;default:false" json:"digital"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// Name is the title of the wrapped book.
func (p Product) Name() string {
	if p.Book == nil {
		return ""
	}
	return p.Book.Title
}

// Order is a customer cart while incomplete and a placed order once complete.
// The partial unique index keeps at most one open order per customer.
type Order struct {
	ID            uuid.UUID   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID    *uuid.UUID  `gorm:"column:customer_id;type:uuid;uniqueIndex:idx_orders_open_customer,where:complete = false" json:"customer_id"`
	Customer      *Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"-"`
	Complete      bool        `gorm:"column:complete;not null;default:false" json:"complete"`
	TransactionID string      `gorm:"column:transaction_id;type:varchar(100)" json:"transaction_id"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	DateOrdered   time.Time   `gorm:"column:date_ordered;autoCreateTime" json:"date_ordered"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// CartTotal sums price times quantity over loaded items.
func (o Order) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}

// CartItemCount sums quantities over loaded items.
func (o Order) CartItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// RequiresShipping reports whether any loaded item is a physical product.
func (o Order) RequiresShipping() bool {
	for _, item := range o.Items {
		if item.Product != nil && !item.Product.Digital {
			return true
		}
	}
	return false
}

// OrderItem is one product line within an order.
type OrderItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID   *uuid.UUID `gorm:"column:order_id;type:uuid;uniqueIndex:idx_order_items_order_product" json:"order_id"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid;uniqueIndex:idx_order_items_order_product" json:"product_id"`
	Product   *Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product,omitempty"`
	Quantity  int        `gorm:"column:quantity;not null;default:0" json:"quantity"`
	DateAdded time.Time  `gorm:"column:date_added;autoCreateTime" json:"date_added"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// Total is price times quantity. Items without a product contribute zero.
func (i OrderItem) Total() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID *uuid.UUID `gorm:"column:customer_id;type:uuid;index" json:"customer_id"`
	OrderID    *uuid.UUID `gorm:"column:order_id;type:uuid;index" json:"order_id"`
	Address    string     `gorm:"column:address;type:varchar(200);not null" json:"address"`
	City       string     `gorm:"column:city;type:varchar(200);not null" json:"city"`
	State      string     `gorm:"column:state;type:varchar(200);not null" json:"state"`
	Zipcode    string     `gorm:"column:zipcode;type:varchar(200);not null" json:"zipcode"`
	DateAdded  time.Time  `gorm:"column:date_added;autoCreateTime" json:"date_added"`
}

func (s *ShippingAddress) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
