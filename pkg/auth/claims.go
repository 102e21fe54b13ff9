package auth

import (
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uint
	CoynoID string
	Role    enums.UserRole
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients. The role is
// informational; the auth middleware reloads the user and trusts the row.
type AccessTokenClaims struct {
	UserID  uint           `json:"id"`
	CoynoID string         `json:"coyno_id,omitempty"`
	Role    enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
