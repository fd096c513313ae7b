package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultRoleName is attached to newly provisioned accounts.
const DefaultRoleName = "user"

// Account is one registered principal.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Active        bool       `bun:"active,notnull" json:"active,omitempty"`
	Roles         []*Role    `bun:"m2m:account_roles,join:Account=Role" json:"roles,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// RoleNames returns the deduplicated, unordered set of role names
// attached to the account.
func (a *Account) RoleNames() []string {
	if a == nil || len(a.Roles) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(a.Roles))
	names := make([]string, 0, len(a.Roles))
	for _, role := range a.Roles {
		if role == nil || role.Name == "" {
			continue
		}
		if _, ok := seen[role.Name]; ok {
			continue
		}
		seen[role.Name] = struct{}{}
		names = append(names, role.Name)
	}

	return names
}

// HasRole checks whether the account carries the named role.
func (a *Account) HasRole(name string) bool {
	if a == nil {
		return false
	}
	for _, role := range a.Roles {
		if role != nil && role.Name == name {
			return true
		}
	}
	return false
}

// Role is a named authorization grant. Roles are pre-existing reference
// data; this package only reads and attaches them.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
}

// AccountRole is the join record linking accounts to roles.
type AccountRole struct {
	bun.BaseModel `bun:"table:account_roles,alias:acr"`
	AccountID     uuid.UUID `bun:"account_id,pk,type:uuid" json:"account_id,omitempty"`
	Account       *Account  `bun:"rel:belongs-to,join:account_id=id" json:"account,omitempty"`
	RoleID        uuid.UUID `bun:"role_id,pk,type:uuid" json:"role_id,omitempty"`
	Role          *Role     `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
}
