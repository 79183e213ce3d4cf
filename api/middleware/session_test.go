package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bookhaven-backend/pkg/config"
)

func TestVisitorSessionIssuesCookie(t *testing.T) {
	cfg := config.SessionConfig{CookieName: "bh_session", TTL: time.Hour}
	var sid string
	handler := VisitorSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(sid); err != nil {
		t.Fatalf("expected uuid session id, got %q", sid)
	}
	cookies := resp.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Name != "bh_session" || cookies[0].Value != sid || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookie %+v", cookies[0])
	}
	if cookies[0].MaxAge != 3600 {
		t.Fatalf("expected max age 3600, got %d", cookies[0].MaxAge)
	}
}

func TestVisitorSessionReusesCookie(t *testing.T) {
	cfg := config.SessionConfig{CookieName: "bh_session", TTL: time.Hour}
	existing := uuid.NewString()
	var sid string
	handler := VisitorSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "bh_session", Value: existing})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if sid != existing {
		t.Fatalf("expected %s got %s", existing, sid)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for a known session")
	}
}

func TestVisitorSessionReplacesGarbage(t *testing.T) {
	cfg := config.SessionConfig{CookieName: "bh_session", TTL: time.Hour}
	var sid string
	handler := VisitorSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "bh_session", Value: "not-a-session"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if sid == "not-a-session" || sid == "" {
		t.Fatalf("expected a fresh session id, got %q", sid)
	}
}
