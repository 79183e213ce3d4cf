package middleware

import (
	"context"

	pkgAuth "github.com/angelmondragon/bookhaven-backend/pkg/auth"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxClaims    contextKey = "claims"
	ctxSessionID contextKey = "visitor_session"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified access token claims, if any.
func ClaimsFromContext(ctx context.Context) (pkgAuth.AccessTokenClaims, bool) {
	if ctx == nil {
		return pkgAuth.AccessTokenClaims{}, false
	}
	claims, ok := ctx.Value(ctxClaims).(pkgAuth.AccessTokenClaims)
	return claims, ok
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithClaims stores the verified claims and the user id they carry.
func WithClaims(ctx context.Context, claims pkgAuth.AccessTokenClaims) context.Context {
	ctx = WithUserID(ctx, claims.UserID.String())
	return context.WithValue(ctx, ctxClaims, claims)
}

// WithSessionID injects the anonymous visitor session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
