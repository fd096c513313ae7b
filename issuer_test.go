package auth_test

import (
	"testing"
	"time"

	auth "github.com/edu-uce/matricula-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount() *auth.Account {
	return &auth.Account{
		ID:       uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479"),
		Username: "ana",
		Email:    "ana@x.com",
		Active:   true,
	}
}

func TestTokenIssuerIssue(t *testing.T) {
	signer := auth.NewHMACTokenSigner([]byte("test-signing-key"))
	issuer := auth.NewTokenIssuer(signer, testConfig{
		issuer: "matricula-auth",
		ttl:    3600 * time.Second,
	})

	// Validation below checks expiry against the wall clock, so issue
	// relative to now.
	now := time.Now().Truncate(time.Second)

	t.Run("issues token with full claim set", func(t *testing.T) {
		token, err := issuer.Issue(testAccount(), []string{"user", "admin"}, now)
		require.NoError(t, err)

		assert.Equal(t, "matricula-auth", token.Issuer)
		assert.Equal(t, "ana", token.Subject)
		assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", token.AccountID)
		assert.Equal(t, []string{"user", "admin"}, token.Roles)
		assert.Equal(t, now, token.IssuedAt)
		assert.Equal(t, now.Add(3600*time.Second), token.ExpiresAt)

		claims, err := signer.Validate(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "matricula-auth", claims.RegisteredClaims.Issuer)
		assert.Equal(t, "ana", claims.Subject())
		assert.Equal(t, "ana@x.com", claims.Email())
		assert.Equal(t, []string{"user", "admin"}, claims.RoleNames())
		assert.Equal(t, now.Unix(), claims.IssuedAt().Unix())
		assert.Equal(t, now.Add(3600*time.Second).Unix(), claims.Expires().Unix())
	})

	t.Run("identical inputs yield identical tokens", func(t *testing.T) {
		fixed := time.Unix(1700000000, 0)
		token1, err := issuer.Issue(testAccount(), []string{"user"}, fixed)
		require.NoError(t, err)
		token2, err := issuer.Issue(testAccount(), []string{"user"}, fixed)
		require.NoError(t, err)

		assert.Equal(t, token1.AccessToken, token2.AccessToken)
	})

	t.Run("empty role set is issuable", func(t *testing.T) {
		token, err := issuer.Issue(testAccount(), nil, now)
		require.NoError(t, err)
		assert.Empty(t, token.Roles)

		claims, err := signer.Validate(token.AccessToken)
		require.NoError(t, err)
		assert.Empty(t, claims.RoleNames())
	})

	t.Run("nil account is rejected", func(t *testing.T) {
		_, err := issuer.Issue(nil, []string{"user"}, now)
		assert.Error(t, err)
	})

	t.Run("signing failure surfaces as issuance error", func(t *testing.T) {
		broken := auth.NewTokenIssuer(auth.NewHMACTokenSigner(nil), testConfig{
			issuer: "matricula-auth",
			ttl:    3600 * time.Second,
		})

		_, err := broken.Issue(testAccount(), []string{"user"}, now)
		require.Error(t, err)

		var rich *goerrors.Error
		require.True(t, goerrors.As(err, &rich))
		assert.Equal(t, goerrors.CategoryInternal, rich.Category)
		assert.Equal(t, auth.ErrIssuanceFailure.TextCode, rich.TextCode)
	})
}

func TestTokenIssuerDefaults(t *testing.T) {
	signer := auth.NewHMACTokenSigner([]byte("test-signing-key"))
	issuer := auth.NewTokenIssuer(signer, nil)

	assert.Equal(t, auth.DefaultTokenTTL, issuer.TTL())

	now := time.Unix(1700000000, 0)
	token, err := issuer.Issue(testAccount(), []string{"user"}, now)
	require.NoError(t, err)

	assert.Equal(t, auth.DefaultIssuer, token.Issuer)
	assert.Equal(t, now.Add(3600*time.Second), token.ExpiresAt)
}
