package auth_test

import (
	"testing"
	"time"

	auth "github.com/edu-uce/matricula-auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClaims(now time.Time, ttl time.Duration) *auth.TokenClaims {
	return &auth.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "matricula-auth",
			Subject:   "ana",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UPN:    "ana@x.com",
		UID:    "account-id",
		Groups: []string{"user"},
	}
}

func TestHMACTokenSignerRoundTrip(t *testing.T) {
	signer := auth.NewHMACTokenSigner([]byte("test-signing-key"))
	now := time.Now()

	token, err := signer.SignClaims(testClaims(now, time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "ana", claims.Subject())
	assert.Equal(t, "ana@x.com", claims.Email())
	assert.Equal(t, "account-id", claims.AccountID())
	assert.Equal(t, []string{"user"}, claims.RoleNames())
	assert.True(t, claims.HasRole("user"))
	assert.False(t, claims.HasRole("admin"))
	assert.WithinDuration(t, now.Add(time.Hour), claims.Expires(), time.Second)
}

func TestHMACTokenSignerDeterministicSignature(t *testing.T) {
	signer := auth.NewHMACTokenSigner([]byte("test-signing-key"))
	now := time.Unix(1700000000, 0)

	token1, err := signer.SignClaims(testClaims(now, time.Hour))
	require.NoError(t, err)
	token2, err := signer.SignClaims(testClaims(now, time.Hour))
	require.NoError(t, err)

	assert.Equal(t, token1, token2, "HS256 signatures are deterministic")
}

func TestHMACTokenSignerValidate(t *testing.T) {
	signer := auth.NewHMACTokenSigner([]byte("test-signing-key"))

	t.Run("rejects nil claims on sign", func(t *testing.T) {
		_, err := signer.SignClaims(nil)
		assert.Error(t, err)
	})

	t.Run("rejects missing signing key", func(t *testing.T) {
		_, err := auth.NewHMACTokenSigner(nil).SignClaims(testClaims(time.Now(), time.Hour))
		assert.Error(t, err)
	})

	t.Run("rejects token signed with another key", func(t *testing.T) {
		other := auth.NewHMACTokenSigner([]byte("other-key"))
		token, err := other.SignClaims(testClaims(time.Now(), time.Hour))
		require.NoError(t, err)

		_, err = signer.Validate(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token, err := signer.SignClaims(testClaims(time.Now().Add(-2*time.Hour), time.Hour))
		require.NoError(t, err)

		_, err = signer.Validate(token)
		require.Error(t, err)
		assert.Equal(t, auth.ErrTokenExpired, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := signer.Validate("not-a-token")
		assert.Error(t, err)
	})
}
