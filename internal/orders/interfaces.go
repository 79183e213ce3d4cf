package orders

import (
	"context"

	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the persistence surface required by the order service.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	EnsureOpenOrder(ctx context.Context, customerID uuid.UUID) error
	FindOpenOrder(ctx context.Context, customerID uuid.UUID) (*models.Order, error)
	EnsureItem(ctx context.Context, orderID, productID uuid.UUID) error
	AdjustItemQuantity(ctx context.Context, orderID, productID uuid.UUID, delta int) (*models.OrderItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	MarkComplete(ctx context.Context, orderID uuid.UUID, transactionID string) error
	CreateShippingAddress(ctx context.Context, address *models.ShippingAddress) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartRecorder receives cart mutation outcomes. *metrics.CartMetrics satisfies it.
type CartRecorder interface {
	IncItemUpdate(action, outcome string)
	IncOrderCompleted()
}
