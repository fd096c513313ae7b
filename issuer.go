package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

const (
	// DefaultIssuer is the service identity stamped into tokens.
	DefaultIssuer = "matricula-auth"
	// DefaultTokenTTL bounds token validity.
	DefaultTokenTTL = 3600 * time.Second
)

// IssuedToken is the transient result of a successful issuance. It is
// never persisted; validity is proven by signature and expiry alone.
type IssuedToken struct {
	AccessToken string
	Issuer      string
	Subject     string
	AccountID   string
	Roles       []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenIssuer builds and signs time-bounded access tokens for verified
// accounts.
type TokenIssuer struct {
	signer   TokenSigner
	issuer   string
	audience jwt.ClaimStrings
	ttl      time.Duration
	logger   Logger
}

// NewTokenIssuer returns an issuer configured from opts. Key material
// lives behind the TokenSigner; the issuer never sees it.
func NewTokenIssuer(signer TokenSigner, opts Config) *TokenIssuer {
	issuer := DefaultIssuer
	ttl := DefaultTokenTTL
	var audience jwt.ClaimStrings

	if opts != nil {
		if v := opts.GetIssuer(); v != "" {
			issuer = v
		}
		if v := opts.GetTokenTTL(); v > 0 {
			ttl = v
		}
		if v := opts.GetAudience(); len(v) > 0 {
			audience = make(jwt.ClaimStrings, len(v))
			copy(audience, v)
		}
	}

	return &TokenIssuer{
		signer:   signer,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		logger:   defLogger{},
	}
}

func (t *TokenIssuer) WithLogger(logger Logger) *TokenIssuer {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// TTL returns the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue constructs and signs the claim set for the account at `now`.
// The caller supplies `now` so issuance stays deterministic: identical
// account, roles, and time yield an identical token. An empty role set
// is issuable and produces a token without authorization claims.
func (t *TokenIssuer) Issue(account *Account, roleNames []string, now time.Time) (*IssuedToken, error) {
	if account == nil {
		return nil, goerrors.New("account is required", goerrors.CategoryBadInput)
	}

	if t.signer == nil {
		return nil, goerrors.New("token signer is required", goerrors.CategoryInternal)
	}

	expiresAt := now.Add(t.ttl)
	groups := append([]string(nil), roleNames...)

	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   account.Username,
			Audience:  t.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UPN:    account.Email,
		UID:    account.ID.String(),
		Groups: groups,
	}

	signed, err := t.signer.SignClaims(claims)
	if err != nil {
		t.logger.Error("token signing failed: %v", err)
		return nil, goerrors.Wrap(err, ErrIssuanceFailure.Category, ErrIssuanceFailure.Message).
			WithTextCode(ErrIssuanceFailure.TextCode)
	}

	return &IssuedToken{
		AccessToken: signed,
		Issuer:      t.issuer,
		Subject:     account.Username,
		AccountID:   claims.UID,
		Roles:       groups,
		IssuedAt:    now,
		ExpiresAt:   expiresAt,
	}, nil
}
