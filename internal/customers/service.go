package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	CreateIfAbsent(ctx context.Context, customer *models.Customer) error
}

type userLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service maps authenticated users to their commerce profile.
type Service interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
}

type service struct {
	repo  customerRepository
	users userLookup
}

// NewService wires the customer resolver.
func NewService(repo customerRepository, users userLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, users: users}, nil
}

// Resolve returns the user's customer, provisioning one from the user's name
// and email the first time a cart operation needs it.
func (s *service) Resolve(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	customer, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	fresh := &models.Customer{UserID: &user.ID, Name: user.FullName(), Email: user.Email}
	if err := s.repo.CreateIfAbsent(ctx, fresh); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}

	// A concurrent request may have won the insert.
	customer, err = s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload customer")
	}
	return customer, nil
}
