package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/bookhaven-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
)

func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// optionalUserID returns nil for anonymous requests.
func optionalUserID(r *http.Request) *uuid.UUID {
	id, err := userIDFromRequest(r)
	if err != nil {
		return nil
	}
	return &id
}
