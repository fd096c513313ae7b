package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// AccountProvisioner registers new accounts: it validates username
// uniqueness, hashes the password, attaches the default role, and asks
// the store to persist the record. Provisioning is all-or-nothing; no
// partial account state survives a failure.
type AccountProvisioner struct {
	store            AccountStore
	cost             int
	deterministicIDs bool
	logger           Logger
}

// NewAccountProvisioner will create a new AccountProvisioner
func NewAccountProvisioner(store AccountStore) *AccountProvisioner {
	return &AccountProvisioner{
		store:  store,
		cost:   DefaultBcryptCost,
		logger: defLogger{},
	}
}

func (p *AccountProvisioner) WithLogger(logger Logger) *AccountProvisioner {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithBcryptCost overrides the hashing work factor.
func (p *AccountProvisioner) WithBcryptCost(cost int) *AccountProvisioner {
	if cost > 0 {
		p.cost = cost
	}
	return p
}

// WithDeterministicIDs derives account IDs from the email instead of
// random UUIDs.
func (p *AccountProvisioner) WithDeterministicIDs() *AccountProvisioner {
	p.deterministicIDs = true
	return p
}

// Register provisions a new active account. A username collision
// returns ErrUsernameTaken whether it is caught by the advisory
// pre-check or by the store's unique constraint, so two concurrent
// registrations never both succeed. A missing default role is degraded
// but non-fatal: the account is created with an empty role set.
func (p *AccountProvisioner) Register(ctx context.Context, username, password, email string) (*Account, error) {
	if username == "" || password == "" || email == "" {
		return nil, errors.New("username, password, and email are required", errors.CategoryBadInput)
	}

	if _, err := p.store.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !isNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "username uniqueness check failed")
	}

	hash, err := HashPasswordCost(password, p.cost)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	account := &Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}

	if p.deterministicIDs {
		if id, err := hashid.NewUUID(email); err == nil {
			account.ID = id
		}
	}

	var roles []*Role
	role, err := p.store.RoleByName(ctx, DefaultRoleName)
	switch {
	case err == nil:
		roles = append(roles, role)
	case isNotFound(err):
		// Missing reference data leaves the account under-provisioned
		// but must not block creation.
		p.logger.Warn("default role %q not found, creating account %q without roles", DefaultRoleName, username)
	default:
		return nil, errors.Wrap(err, errors.CategoryInternal, "default role lookup failed")
	}

	created, err := p.store.CreateWithRoles(ctx, account, roles...)
	if err != nil {
		// The unique constraint is the authority under races.
		if IsConflict(err) {
			return nil, ErrUsernameTaken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create account")
	}

	return created, nil
}
