package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// AccountStore is the persistence collaborator providing account and
// role lookup plus insertion. The store must guarantee atomic
// check-and-insert semantics for username uniqueness; callers treat
// their own existence checks as advisory.
type AccountStore interface {
	// GetByUsername returns the account with the exact username,
	// including its attached roles, or a not-found error.
	GetByUsername(ctx context.Context, username string) (*Account, error)
	// RoleByName resolves a role by its unique name.
	RoleByName(ctx context.Context, name string) (*Role, error)
	// CreateWithRoles persists a new account and its role links. A
	// uniqueness violation surfaces as a conflict error.
	CreateWithRoles(ctx context.Context, account *Account, roles ...*Role) (*Account, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
