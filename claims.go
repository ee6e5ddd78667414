package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the set of identity and plan facts embedded in a session
// token. It exists only for the duration of a request: built at issuance,
// rebuilt at verification, never persisted.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID      int64            `json:"uid"`
	Username string           `json:"username,omitempty"`
	Plan     SubscriptionPlan `json:"plan,omitempty"`
}

// AccountID returns the account the token was issued for.
func (c *SessionClaims) AccountID() int64 {
	if c.UID != 0 {
		return c.UID
	}
	if id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64); err == nil {
		return id
	}
	return 0
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureTokenID assigns a jti if the claims don't carry one yet.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
