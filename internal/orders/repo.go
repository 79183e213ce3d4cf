package orders

import (
	"context"

	"github.com/angelmondragon/bookhaven-backend/internal/repo"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists orders, order items and shipping addresses.
type Repository struct {
	base repo.Base
}

// NewRepository binds an order repository to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	return &Repository{base: r.base.WithTx(tx)}
}

// FindProduct loads a product with its book.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.base.DB(ctx).Preload("Book").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// EnsureOpenOrder inserts an open order for the customer unless one exists.
// The partial unique index on (customer_id) WHERE complete = false absorbs
// concurrent inserts.
func (r *Repository) EnsureOpenOrder(ctx context.Context, customerID uuid.UUID) error {
	order := models.Order{CustomerID: &customerID}
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&order).
		Error
}

// FindOpenOrder returns the customer's open order with items, products and books.
func (r *Repository) FindOpenOrder(ctx context.Context, customerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.base.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("date_added ASC, id ASC") }).
		Preload("Items.Product.Book").
		Where("customer_id = ? AND complete = ?", customerID, false).
		First(&order).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// EnsureItem inserts a zero-quantity line for (order, product) unless present.
func (r *Repository) EnsureItem(ctx context.Context, orderID, productID uuid.UUID) error {
	item := models.OrderItem{OrderID: &orderID, ProductID: &productID}
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).
		Error
}

// AdjustItemQuantity applies delta in a single UPDATE and returns the row.
func (r *Repository) AdjustItemQuantity(ctx context.Context, orderID, productID uuid.UUID, delta int) (*models.OrderItem, error) {
	db := r.base.DB(ctx)
	res := db.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var item models.OrderItem
	if err := db.Where("order_id = ? AND product_id = ?", orderID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an order item.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.base.DB(ctx).Where("id = ?", id).Delete(&models.OrderItem{}).Error
}

// MarkComplete flips an open order to complete. Already completed orders
// report gorm.ErrRecordNotFound.
func (r *Repository) MarkComplete(ctx context.Context, orderID uuid.UUID, transactionID string) error {
	res := r.base.DB(ctx).
		Model(&models.Order{}).
		Where("id = ? AND complete = ?", orderID, false).
		Updates(map[string]any{"complete": true, "transaction_id": transactionID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateShippingAddress persists a delivery address.
func (r *Repository) CreateShippingAddress(ctx context.Context, address *models.ShippingAddress) error {
	return r.base.DB(ctx).Create(address).Error
}
