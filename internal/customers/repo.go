package customers

import (
	"context"

	"github.com/angelmondragon/bookhaven-backend/internal/repo"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists customer profiles.
type Repository struct {
	base repo.Base
}

// NewRepository binds a customer repository to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// FindByUserID loads the customer bound to userID.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.base.DB(ctx).Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateIfAbsent inserts customer unless one already exists for its user.
func (r *Repository) CreateIfAbsent(ctx context.Context, customer *models.Customer) error {
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(customer).
		Error
}
