package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by issued access tokens. On top
// of the registered claims it embeds the user principal name, the
// account identifier, and the role-name set.
type TokenClaims struct {
	jwt.RegisteredClaims
	UPN    string   `json:"upn,omitempty"`
	UID    string   `json:"userId,omitempty"`
	Groups []string `json:"groups,omitempty"`
}

// Subject returns the subject claim, the account username.
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Email returns the user principal name claim.
func (c *TokenClaims) Email() string {
	return c.UPN
}

// AccountID returns the account identifier claim.
func (c *TokenClaims) AccountID() string {
	return c.UID
}

// RoleNames returns a copy of the groups claim.
func (c *TokenClaims) RoleNames() []string {
	return append([]string(nil), c.Groups...)
}

// HasRole checks if the token grants the named role.
func (c *TokenClaims) HasRole(role string) bool {
	for _, name := range c.Groups {
		if name == role {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
