package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	IsStaff     bool
	Permissions []string
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	IsStaff     bool      `json:"is_staff,omitempty"`
	Permissions []string  `json:"perms,omitempty"`
	jwt.RegisteredClaims
}

// HasPermission mirrors models.User.HasPermission for token holders.
func (c AccessTokenClaims) HasPermission(codename string) bool {
	return c.IsStaff || slices.Contains(c.Permissions, codename)
}
