package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/bookhaven-backend/internal/auth"
	"github.com/angelmondragon/bookhaven-backend/internal/users"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
)

type stubAuthService struct {
	login          *auth.LoginResponse
	refresh        *auth.RefreshResponse
	err            error
	lastLogin      auth.LoginRequest
	lastAccess     string
	lastRefresh    string
	loggedOutToken string
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.lastLogin = req
	return s.login, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*auth.RefreshResponse, error) {
	s.lastAccess = accessToken
	s.lastRefresh = refreshToken
	return s.refresh, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessToken string) error {
	s.loggedOutToken = accessToken
	return s.err
}

type stubRegisterService struct {
	user   *users.UserDTO
	err    error
	called bool
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	s.called = true
	return s.user, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{login: &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}}
	body := strings.NewReader(`{"email":"reader@example.com","password":"secret"}`)

	resp := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" || envelope.Data.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens: %+v", envelope.Data)
	}
}

func TestAuthLoginRejectsInvalidEmail(t *testing.T) {
	svc := &stubAuthService{}
	body := strings.NewReader(`{"email":"nope","password":"secret"}`)

	resp := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastLogin.Email != "" {
		t.Fatal("service should not be called for an invalid body")
	}
}

func TestAuthLoginUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	body := strings.NewReader(`{"email":"reader@example.com","password":"wrong"}`)

	resp := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRegisterSignsIn(t *testing.T) {
	reg := &stubRegisterService{user: &users.UserDTO{ID: uuid.New(), Email: "new@example.com"}}
	svc := &stubAuthService{login: &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}}
	body := strings.NewReader(`{"first_name":"New","last_name":"Reader","email":"new@example.com","password":"longenough"}`)

	resp := httptest.NewRecorder()
	AuthRegister(reg, svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if !reg.called {
		t.Fatal("expected register to run")
	}
	if svc.lastLogin.Email != "new@example.com" || svc.lastLogin.Password != "longenough" {
		t.Fatalf("unexpected login request: %+v", svc.lastLogin)
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	reg := &stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	svc := &stubAuthService{}
	body := strings.NewReader(`{"first_name":"New","last_name":"Reader","email":"new@example.com","password":"longenough"}`)

	resp := httptest.NewRecorder()
	AuthRegister(reg, svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAuthRefreshRequiresAccessToken(t *testing.T) {
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"r"}`))
	AuthRefresh(&stubAuthService{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRefreshPassesTokens(t *testing.T) {
	svc := &stubAuthService{refresh: &auth.RefreshResponse{AccessToken: "a2", RefreshToken: "r2"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"r1"}`))
	req.Header.Set("Authorization", "Bearer a1")

	resp := httptest.NewRecorder()
	AuthRefresh(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastAccess != "a1" || svc.lastRefresh != "r1" {
		t.Fatalf("unexpected tokens access=%q refresh=%q", svc.lastAccess, svc.lastRefresh)
	}
}

func TestAuthLogout(t *testing.T) {
	svc := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer a1")

	resp := httptest.NewRecorder()
	AuthLogout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.loggedOutToken != "a1" {
		t.Fatalf("expected token a1 revoked, got %q", svc.loggedOutToken)
	}
}
