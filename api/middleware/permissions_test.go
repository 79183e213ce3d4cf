package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/bookhaven-backend/pkg/auth"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
)

func withClaims(req *http.Request, claims auth.AccessTokenClaims) *http.Request {
	return req.WithContext(WithClaims(req.Context(), claims))
}

func TestRequirePermission(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequirePermission(models.PermissionViewAllBorrowed, nil)(ok)

	tests := []struct {
		name   string
		claims *auth.AccessTokenClaims
		want   int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"no permission", &auth.AccessTokenClaims{UserID: uuid.New()}, http.StatusForbidden},
		{"granted", &auth.AccessTokenClaims{UserID: uuid.New(), Permissions: []string{models.PermissionViewAllBorrowed}}, http.StatusOK},
		{"staff", &auth.AccessTokenClaims{UserID: uuid.New(), IsStaff: true}, http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/all-loans", nil)
		if tt.claims != nil {
			req = withClaims(req, *tt.claims)
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != tt.want {
			t.Fatalf("%s: expected %d got %d", tt.name, tt.want, resp.Code)
		}
	}
}

func TestRequireStaff(t *testing.T) {
	handler := RequireStaff(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/admin/v1/models", nil), auth.AccessTokenClaims{
		UserID:      uuid.New(),
		Permissions: []string{models.PermissionViewAllBorrowed},
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	req = withClaims(httptest.NewRequest(http.MethodGet, "/api/admin/v1/models", nil), auth.AccessTokenClaims{
		UserID:  uuid.New(),
		IsStaff: true,
	})
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
