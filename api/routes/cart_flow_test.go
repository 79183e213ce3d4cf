package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/bookhaven-backend/internal/customers"
	"github.com/angelmondragon/bookhaven-backend/internal/orders"
	"github.com/angelmondragon/bookhaven-backend/internal/repo/repotest"
	"github.com/angelmondragon/bookhaven-backend/internal/users"
	pkgAuth "github.com/angelmondragon/bookhaven-backend/pkg/auth"
	"github.com/angelmondragon/bookhaven-backend/pkg/auth/session"
	"github.com/angelmondragon/bookhaven-backend/pkg/config"
	"github.com/angelmondragon/bookhaven-backend/pkg/db"
	"github.com/angelmondragon/bookhaven-backend/pkg/logger"
)

type cartEnvelope struct {
	Data struct {
		OrderID   *string `json:"order_id"`
		CartTotal string  `json:"cart_total"`
		CartItems int     `json:"cart_items"`
		Items     []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	} `json:"data"`
}

type updateEnvelope struct {
	Data struct {
		Message  string `json:"message"`
		Quantity int    `json:"quantity"`
		Removed  bool   `json:"removed"`
		Cart     struct {
			CartTotal string `json:"cart_total"`
			Items     []any  `json:"items"`
		} `json:"cart"`
	} `json:"data"`
}

func newCartRouter(t *testing.T) (http.Handler, *config.Config, string, uuid.UUID) {
	t.Helper()
	conn := repotest.NewDB(t)

	orderSvc, err := orders.NewService(orders.ServiceParams{
		Repo: orders.NewRepository(conn),
		Tx:   db.NewFromGorm(conn),
	})
	require.NoError(t, err)
	customerSvc, err := customers.NewService(customers.NewRepository(conn), users.NewRepository(conn))
	require.NoError(t, err)

	reader := repotest.SeedUser(t, conn, "cart-reader@example.com")
	product := repotest.SeedProduct(t, conn, "Dawn", "9.99", false)

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-cart", Output: io.Discard})
	router := NewRouter(Dependencies{
		Config:    cfg,
		Logger:    logg,
		Sessions:  stubSessions{},
		Catalog:   stubCatalog{},
		Visits:    stubVisits{},
		Orders:    orderSvc,
		Customers: customerSvc,
		Admin:     stubAdmin{},
	})

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: reader.ID,
		JTI:    session.NewAccessID(),
	})
	require.NoError(t, err)
	return router, cfg, token, product.ID
}

func postJSON(router http.Handler, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCartFlowAgainstDatabase(t *testing.T) {
	router, _, token, productID := newCartRouter(t)
	add := `{"productId":"` + productID.String() + `","action":"add"}`
	remove := `{"productId":"` + productID.String() + `","action":"remove"}`

	for i := 0; i < 3; i++ {
		resp := postJSON(router, "/update-item", token, add)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := serve(router, http.MethodGet, "/cart", token)
	require.Equal(t, http.StatusOK, resp.Code)
	var cart cartEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cart))
	require.NotNil(t, cart.Data.OrderID)
	assert.Equal(t, "29.97", cart.Data.CartTotal)
	assert.Equal(t, 3, cart.Data.CartItems)
	require.Len(t, cart.Data.Items, 1)
	assert.Equal(t, 3, cart.Data.Items[0].Quantity)

	var last updateEnvelope
	for i := 0; i < 3; i++ {
		resp = postJSON(router, "/update-item", token, remove)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &last))
	}
	assert.Equal(t, "Item was added", last.Data.Message)
	assert.True(t, last.Data.Removed)
	assert.Zero(t, last.Data.Quantity)
	assert.Empty(t, last.Data.Cart.Items)
	assert.Equal(t, "0", last.Data.Cart.CartTotal)

	resp = serve(router, http.MethodGet, "/checkout", token)
	require.Equal(t, http.StatusOK, resp.Code)
	var after cartEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &after))
	assert.Equal(t, *cart.Data.OrderID, *after.Data.OrderID, "the open order is reused")
	assert.Empty(t, after.Data.Items)
}

func TestCartAnonymousCheckoutIsEmptyPseudoOrder(t *testing.T) {
	router, _, _, _ := newCartRouter(t)

	resp := serve(router, http.MethodGet, "/checkout", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var cart cartEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cart))
	assert.Nil(t, cart.Data.OrderID)
	assert.Equal(t, "0", cart.Data.CartTotal)
	assert.Zero(t, cart.Data.CartItems)
	assert.NotNil(t, cart.Data.Items)
	assert.Empty(t, cart.Data.Items)
}

func TestCartUpdateItemRejectsBadInput(t *testing.T) {
	router, _, token, _ := newCartRouter(t)

	resp := postJSON(router, "/update-item", token, `{"productId":"`+uuid.NewString()+`","action":"add"}`)
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())

	resp = postJSON(router, "/update-item", token, `{"productId":`)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = postJSON(router, "/update-item", "", `{"productId":"`+uuid.NewString()+`","action":"add"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
