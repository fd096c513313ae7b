package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Verification is the successful outcome of a credential check: the
// account and its resolved role-name set, never a failure reason.
type Verification struct {
	Account *Account
	Roles   []string
}

// CredentialVerifier checks presented credentials against stored
// accounts. It holds no state of its own; correctness under concurrency
// is delegated to the AccountStore.
type CredentialVerifier struct {
	store         AccountStore
	authenticator PasswordAuthenticator
	logger        Logger
}

// NewCredentialVerifier will create a new CredentialVerifier
func NewCredentialVerifier(store AccountStore) *CredentialVerifier {
	return &CredentialVerifier{
		store:         store,
		authenticator: BcryptAuthenticator{},
		logger:        defLogger{},
	}
}

func (v *CredentialVerifier) WithLogger(logger Logger) *CredentialVerifier {
	if logger != nil {
		v.logger = logger
	}
	return v
}

// WithPasswordAuthenticator swaps the hashing scheme used for
// comparison.
func (v *CredentialVerifier) WithPasswordAuthenticator(authenticator PasswordAuthenticator) *CredentialVerifier {
	if authenticator != nil {
		v.authenticator = authenticator
	}
	return v
}

// Verify looks up the account by exact username and compares the
// presented password against the stored hash. It returns
// ErrAccountNotFound or ErrBadPassword; both carry the auth category so
// transports answer uniformly. Neither the password nor the stored hash
// ever reach the log output.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (*Verification, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required", errors.CategoryBadInput)
	}

	account, err := v.store.GetByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account during verification")
	}

	if err := v.authenticator.ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrBadPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "password comparison failed")
	}

	return &Verification{
		Account: account,
		Roles:   account.RoleNames(),
	}, nil
}
