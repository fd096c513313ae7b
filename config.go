package auth

import (
	"time"

	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	GetTokenTTL() time.Duration
	GetBcryptCost() int
}

// EnvConfig loads service settings from environment variables.
type EnvConfig struct {
	SigningKey string        `env:"AUTH_SIGNING_KEY"`
	Issuer     string        `env:"AUTH_ISSUER" envDefault:"matricula-auth"`
	Audience   []string      `env:"AUTH_AUDIENCE" envSeparator:","`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"3600s"`
	BcryptCost int           `env:"AUTH_BCRYPT_COST" envDefault:"12"`
	DSN        string        `env:"AUTH_DSN" envDefault:"file::memory:?cache=shared"`
	HTTPAddr   string        `env:"AUTH_HTTP_ADDR" envDefault:":8572"`
}

var _ Config = (*EnvConfig)(nil)

// LoadEnvConfig parses the process environment into an EnvConfig.
func LoadEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse environment configuration")
	}
	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c *EnvConfig) GetAudience() []string {
	return c.Audience
}

func (c *EnvConfig) GetTokenTTL() time.Duration {
	return c.TokenTTL
}

func (c *EnvConfig) GetBcryptCost() int {
	return c.BcryptCost
}

// GetDSN returns the database connection string.
func (c *EnvConfig) GetDSN() string {
	return c.DSN
}

// GetHTTPAddr returns the listen address for the HTTP server.
func (c *EnvConfig) GetHTTPAddr() string {
	return c.HTTPAddr
}
