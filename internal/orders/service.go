package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the cart/order state machine.
type Service interface {
	OpenOrder(ctx context.Context, customerID uuid.UUID) (*models.Order, error)
	UpdateItem(ctx context.Context, customerID, productID uuid.UUID, action enums.CartAction) (UpdateItemResult, error)
	Complete(ctx context.Context, customerID uuid.UUID, input CompleteInput) (*models.Order, error)
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo     OrderRepository
	Tx       txRunner
	Recorder CartRecorder
	Now      func() time.Time
}

type service struct {
	repo     OrderRepository
	tx       txRunner
	recorder CartRecorder
	now      func() time.Time
}

// NewService builds an order service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		recorder: params.Recorder,
		now:      now,
	}, nil
}

// OpenOrder returns the customer's single open order, creating it if absent.
func (s *service) OpenOrder(ctx context.Context, customerID uuid.UUID) (*models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = getOrCreateOpenOrder(ctx, s.repo.WithTx(tx), customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateItem adds or removes one unit of productID in the customer's open
// order. Lines that reach zero are deleted.
func (s *service) UpdateItem(ctx context.Context, customerID, productID uuid.UUID, action enums.CartAction) (UpdateItemResult, error) {
	result, err := s.updateItem(ctx, customerID, productID, action)
	if s.recorder != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		s.recorder.IncItemUpdate(action.String(), outcome)
	}
	return result, err
}

func (s *service) updateItem(ctx context.Context, customerID, productID uuid.UUID, action enums.CartAction) (UpdateItemResult, error) {
	if customerID == uuid.Nil {
		return UpdateItemResult{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if productID == uuid.Nil {
		return UpdateItemResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !action.IsValid() {
		return UpdateItemResult{}, pkgerrors.New(pkgerrors.CodeValidation, "action must be add or remove").
			WithDetails(map[string]any{"action": action.String()})
	}

	result := UpdateItemResult{ProductID: productID}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindProduct(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		order, err := getOrCreateOpenOrder(ctx, repo, customerID)
		if err != nil {
			return err
		}

		if err := repo.EnsureItem(ctx, order.ID, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
		}
		item, err := repo.AdjustItemQuantity(ctx, order.ID, productID, action.Delta())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
		}

		result.Quantity = item.Quantity
		if item.Quantity <= 0 {
			if err := repo.DeleteItem(ctx, item.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order item")
			}
			result.Quantity = 0
			result.Removed = true
		}

		refreshed, err := repo.FindOpenOrder(ctx, customerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload open order")
		}
		result.Cart = FromOrder(refreshed)
		return nil
	})
	if err != nil {
		return UpdateItemResult{}, err
	}
	return result, nil
}

// Complete moves the open order to complete. The submitted total must match
// the computed cart total. Physical items require a shipping address.
func (s *service) Complete(ctx context.Context, customerID uuid.UUID, input CompleteInput) (*models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	var completed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOpenOrder(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "no open order to complete")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open order")
		}
		if len(order.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
		}

		total := order.CartTotal()
		if !input.Total.Equal(total) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "submitted total does not match cart total").
				WithDetails(map[string]any{"submitted": input.Total.String(), "cart_total": total.String()})
		}

		var address *models.ShippingAddress
		if order.RequiresShipping() {
			address, err = buildShippingAddress(customerID, order.ID, input.Shipping)
			if err != nil {
				return err
			}
		}

		txID := strings.TrimSpace(input.TransactionID)
		if txID == "" {
			txID = strconv.FormatInt(s.now().UnixNano(), 10)
		}
		if err := repo.MarkComplete(ctx, order.ID, txID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "order already completed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete order")
		}
		if address != nil {
			if err := repo.CreateShippingAddress(ctx, address); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store shipping address")
			}
		}

		order.Complete = true
		order.TransactionID = txID
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.IncOrderCompleted()
	}
	return completed, nil
}

func getOrCreateOpenOrder(ctx context.Context, repo OrderRepository, customerID uuid.UUID) (*models.Order, error) {
	if err := repo.EnsureOpenOrder(ctx, customerID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create open order")
	}
	order, err := repo.FindOpenOrder(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open order")
	}
	return order, nil
}

func buildShippingAddress(customerID, orderID uuid.UUID, input *ShippingInput) (*models.ShippingAddress, error) {
	if input == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required for physical items")
	}
	missing := []string{}
	fields := []struct{ name, value string }{
		{"address", input.Address},
		{"city", input.City},
		{"state", input.State},
		{"zipcode", input.Zipcode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	return &models.ShippingAddress{
		CustomerID: &customerID,
		OrderID:    &orderID,
		Address:    strings.TrimSpace(input.Address),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		Zipcode:    strings.TrimSpace(input.Zipcode),
	}, nil
}
