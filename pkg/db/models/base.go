package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ensureID assigns a random UUID when the primary key is still zero. IDs are
// generated in process so inserts behave the same on Postgres and SQLite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All returns every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Author{},
		&Book{},
		&Genre{},
		&Category{},
		&Rating{},
		&BookInstance{},
		&InStock{},
		&SoldOut{},
		&Like{},
		&Customer{},
		&Product{},
		&Order{},
		&OrderItem{},
		&ShippingAddress{},
		&LegacyOrder{},
		&HardBookOrder{},
		&ActiveOrder{},
		&CompletedOrder{},
		&Purchase{},
	}
}

// AutoMigrate creates or updates the schema for every model. Production
// schemas are owned by goose migrations; this is for SQLite dev and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
