package auth

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the token and registration endpoints.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	app.
		Post(controller.Routes.Token, controller.TokenCreate).
		SetName("auth-token.post")

	app.
		Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth-register.post")
}

type AuthControllerRoutes struct {
	Token    string
	Register string
}

// AuthController exposes the login and registration flows as a JSON
// API. It owns no security logic itself; it binds payloads, delegates
// to the core components, and maps error categories onto status codes.
type AuthController struct {
	Debug       bool
	Logger      Logger
	Routes      *AuthControllerRoutes
	Verifier    *CredentialVerifier
	Issuer      *TokenIssuer
	Provisioner *AccountProvisioner
	// Clock supplies issuance time so tests can pin it.
	Clock func() time.Time
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Clock:  time.Now,
		Routes: &AuthControllerRoutes{
			Token:    "/auth/token",
			Register: "/auth/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Verifier == nil {
		panic("Missing CredentialVerifier in auth controller...")
	}

	if c.Issuer == nil {
		panic("Missing TokenIssuer in auth controller...")
	}

	if c.Provisioner == nil {
		panic("Missing AccountProvisioner in auth controller...")
	}

	if c.Clock == nil {
		c.Clock = time.Now
	}

	return c
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules. Only non-emptiness is enforced;
// size limits belong to the transport.
func (r LoginRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Username,
				validation.Required,
			),
			validation.Field(
				&r.Password,
				validation.Required,
			),
		)
	}, "Invalid login request payload")
}

// RegisterRequest payload
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Email    string `form:"email" json:"email"`
}

// Validate will run validation rules. Email format checking is left to
// upstream policy; only non-emptiness is core behavior.
func (r RegisterRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Username,
				validation.Required,
			),
			validation.Field(
				&r.Password,
				validation.Required,
			),
			validation.Field(
				&r.Email,
				validation.Required,
			),
		)
	}, "Invalid registration request payload")
}

// TokenResponse is the success payload for POST /auth/token.
type TokenResponse struct {
	AccessToken string   `json:"accessToken"`
	ExpiresAt   int64    `json:"expiresAt"`
	Roles       []string `json:"roles"`
}

// RegisterResponse confirms the newly created username.
type RegisterResponse struct {
	Username string `json:"username"`
}

// TokenCreate handles POST /auth/token: verify credentials, then issue
// a signed token carrying the account's roles.
func (a *AuthController) TokenCreate(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.renderError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse login payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.renderError(ctx, err)
	}

	verification, err := a.Verifier.Verify(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return a.renderError(ctx, err)
	}

	token, err := a.Issuer.Issue(verification.Account, verification.Roles, a.Clock())
	if err != nil {
		return a.renderError(ctx, err)
	}

	res := TokenResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt.Unix(),
		Roles:       token.Roles,
	}

	if a.Debug {
		// The token string and credentials stay out of the logs.
		a.Logger.Debug("issued token for %s: %s", token.Subject, print.MaybePrettyJSON(map[string]any{
			"expiresAt": res.ExpiresAt,
			"roles":     res.Roles,
		}))
	}

	return ctx.JSON(http.StatusOK, res)
}

// RegistrationCreate handles POST /auth/register.
func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.renderError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse registration payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.renderError(ctx, err)
	}

	account, err := a.Provisioner.Register(ctx.Context(), payload.Username, payload.Password, payload.Email)
	if err != nil {
		return a.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterResponse{
		Username: account.Username,
	})
}

// renderError answers with the category-mapped status and a uniform
// message. Unauthorized responses never reveal whether the username or
// the password was wrong.
func (a *AuthController) renderError(ctx router.Context, err error) error {
	status := StatusCode(err)

	if status >= http.StatusInternalServerError {
		a.Logger.Error("auth controller error: %v", err)
	}

	return ctx.JSON(status, map[string]string{
		"error": publicMessage(status),
	})
}

func publicMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "invalid credentials"
	case http.StatusConflict:
		return "username already exists"
	case http.StatusBadRequest:
		return "invalid request payload"
	default:
		return "internal server error"
	}
}
