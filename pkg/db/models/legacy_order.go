package models

import (
	"time"

	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LegacyOrder and its satellites preserve the older order schema. They carry
// no behavior and are only reachable through the admin registry.
type LegacyOrder struct {
	OrderID       uuid.UUID           `gorm:"column:order_id;type:uuid;primaryKey" json:"order_id"`
	Books         []Book              `gorm:"many2many:legacy_order_books;joinForeignKey:OrderID;joinReferences:BookID" json:"books,omitempty"`
	DateOrdered   time.Time           `gorm:"column:date_ordered;autoCreateTime" json:"date_ordered"`
	IsOrdered     bool                `gorm:"column:is_ordered;not null;default:false" json:"is_ordered"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:varchar(4);not null;default:'COD'" json:"payment_method"`
}

func (LegacyOrder) TableName() string { return "legacy_orders" }

func (o *LegacyOrder) BeforeCreate(*gorm.DB) error {
	ensureID(&o.OrderID)
	if o.PaymentMethod == "" {
		o.PaymentMethod = enums.PaymentMethodCOD
	}
	return nil
}

type HardBookOrder struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID         *uuid.UUID `gorm:"column:order_id;type:uuid;index" json:"order_id"`
	DeliveryAddress string     `gorm:"column:delivery_address;type:varchar(200)" json:"delivery_address"`
}

func (h *HardBookOrder) BeforeCreate(*gorm.DB) error {
	ensureID(&h.ID)
	return nil
}

type ActiveOrder struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID              *uuid.UUID `gorm:"column:order_id;type:uuid;index" json:"order_id"`
	ExpectedDeliveryDate *time.Time `gorm:"column:expected_delivery_date;type:date" json:"expected_delivery_date"`
}

func (a *ActiveOrder) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

type CompletedOrder struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID    *uuid.UUID `gorm:"column:order_id;type:uuid;index" json:"order_id"`
	ReceivedBy string     `gorm:"column:received_by;type:varchar(200)" json:"received_by"`
}

func (c *CompletedOrder) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

type Purchase struct {
	ID      uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID *uuid.UUID `gorm:"column:order_id;type:uuid;index" json:"order_id"`
	BookID  *uuid.UUID `gorm:"column:book_id;type:uuid;index" json:"book_id"`
	BuyerID *uuid.UUID `gorm:"column:buyer_id;type:uuid;index" json:"buyer_id"`
}

func (p *Purchase) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
