package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenSigner signs claim sets and validates issued tokens without
// tying callers to a specific key or algorithm. Key material is
// injected at construction and rotated independently of this package.
type TokenSigner interface {
	SignClaims(claims *TokenClaims) (string, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// HMACTokenSigner signs tokens with HS256. The scheme is deterministic:
// signing the same claim set twice yields the same token string.
type HMACTokenSigner struct {
	signingKey []byte
	logger     Logger
}

// NewHMACTokenSigner creates a signer around the given key.
func NewHMACTokenSigner(signingKey []byte) *HMACTokenSigner {
	return &HMACTokenSigner{
		signingKey: signingKey,
		logger:     defLogger{},
	}
}

func (s *HMACTokenSigner) WithLogger(logger Logger) *HMACTokenSigner {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SignClaims signs the claim set with the configured key.
func (s *HMACTokenSigner) SignClaims(claims *TokenClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	if len(s.signingKey) == 0 {
		return "", errors.New("signing key is not configured", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning its claims.
// Only HMAC-signed tokens are accepted.
func (s *HMACTokenSigner) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			s.logger.Error("token validation encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	s.logger.Error("token validation could not decode claims")
	return nil, ErrTokenMalformed
}

var _ TokenSigner = (*HMACTokenSigner)(nil)
