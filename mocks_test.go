package auth_test

import (
	"context"
	"fmt"
	"time"

	auth "github.com/edu-uce/matricula-auth"
	"github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"
)

// MockAccountStore implements auth.AccountStore
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) GetByUsername(ctx context.Context, username string) (*auth.Account, error) {
	args := m.Called(ctx, username)
	if acc, ok := args.Get(0).(*auth.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountStore) RoleByName(ctx context.Context, name string) (*auth.Role, error) {
	args := m.Called(ctx, name)
	if role, ok := args.Get(0).(*auth.Role); ok {
		return role, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountStore) CreateWithRoles(ctx context.Context, account *auth.Account, roles ...*auth.Role) (*auth.Account, error) {
	args := m.Called(ctx, account, roles)
	if rf, ok := args.Get(0).(func(context.Context, *auth.Account, ...*auth.Role) *auth.Account); ok {
		return rf(ctx, account, roles...), args.Error(1)
	}
	if acc, ok := args.Get(0).(*auth.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSigner implements auth.TokenSigner
type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) SignClaims(claims *auth.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockSigner) Validate(tokenString string) (*auth.TokenClaims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*auth.TokenClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// capturingLogger records formatted log lines per level.
type capturingLogger struct {
	debugs []string
	infos  []string
	warns  []string
	errors []string
}

func (l *capturingLogger) Debug(format string, args ...any) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}

func (l *capturingLogger) Info(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *capturingLogger) Warn(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *capturingLogger) Error(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// notFoundErr is the exact error shape the bun-backed store returns for
// missing records.
func notFoundErr() error {
	return repository.NewRecordNotFound()
}

// testConfig implements auth.Config with fixed values.
type testConfig struct {
	signingKey string
	issuer     string
	audience   []string
	ttl        time.Duration
	cost       int
}

func (c testConfig) GetSigningKey() string { return c.signingKey }

func (c testConfig) GetIssuer() string { return c.issuer }

func (c testConfig) GetAudience() []string { return c.audience }

func (c testConfig) GetTokenTTL() time.Duration { return c.ttl }

func (c testConfig) GetBcryptCost() int { return c.cost }
