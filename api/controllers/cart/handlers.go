package cart

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/bookhaven-backend/api/middleware"
	"github.com/angelmondragon/bookhaven-backend/api/responses"
	"github.com/angelmondragon/bookhaven-backend/api/validators"
	"github.com/angelmondragon/bookhaven-backend/internal/customers"
	"github.com/angelmondragon/bookhaven-backend/internal/orders"
	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/angelmondragon/bookhaven-backend/pkg/logger"
)

// CartView renders the caller's open order. Anonymous callers get an empty
// pseudo-order so the cart and checkout pages always have something to show.
func CartView(svc orders.Service, resolver customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if middleware.UserIDFromContext(r.Context()) == "" {
			responses.WriteSuccess(w, orders.EmptyCart())
			return
		}

		r, customerID, err := resolveCustomer(r, resolver, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.OpenOrder(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders.FromOrder(order))
	}
}

// UpdateItem applies one add or remove to the caller's open order.
func UpdateItem(svc orders.Service, resolver customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid productId"))
			return
		}
		action, err := enums.ParseCartAction(payload.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "action must be add or remove").
				WithDetails(map[string]any{"action": payload.Action}))
			return
		}

		r, customerID, err := resolveCustomer(r, resolver, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateItem(r.Context(), customerID, productID, action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithFields(r.Context(), map[string]any{
				"product_id": productID.String(),
				"action":     action.String(),
				"quantity":   result.Quantity,
			}), "cart.item_updated")
		}
		responses.WriteSuccess(w, updateItemResponse{Message: itemAddedMessage, UpdateItemResult: result})
	}
}

// ProcessOrder completes the caller's open order.
func ProcessOrder(svc orders.Service, resolver customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload ProcessOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		r, customerID, err := resolveCustomer(r, resolver, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Complete(r.Context(), customerID, toCompleteInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "order_id", order.ID.String()), "order.completed")
		}
		responses.WriteSuccess(w, newCompletedOrder(order))
	}
}

// resolveCustomer maps the authenticated user to its customer profile and
// tags the request logger with the customer id.
func resolveCustomer(r *http.Request, resolver customers.Service, logg *logger.Logger) (*http.Request, uuid.UUID, error) {
	raw := strings.TrimSpace(middleware.UserIDFromContext(r.Context()))
	if raw == "" {
		return r, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return r, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	customer, err := resolver.Resolve(r.Context(), userID)
	if err != nil {
		return r, uuid.Nil, err
	}

	if logg != nil {
		r = r.WithContext(logg.WithCustomerID(r.Context(), customer.ID.String()))
	}
	return r, customer.ID, nil
}
