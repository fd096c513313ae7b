package auth

import (
	"net/http"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// Verification failures all carry CategoryAuth so transports collapse
// them into one uniform unauthorized response; the sentinels stay
// distinct so tests and telemetry can tell the kinds apart.
var (
	// ErrAccountNotFound is returned when no account matches the username.
	ErrAccountNotFound = errors.New("account not found", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("ACCOUNT_NOT_FOUND")

	// ErrBadPassword is returned when the presented password does not
	// match the stored hash.
	ErrBadPassword = errors.New("incorrect password", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("BAD_PASSWORD")

	// ErrUsernameTaken is returned when a registration collides with an
	// existing username.
	ErrUsernameTaken = errors.New("username already exists", errors.CategoryConflict).
				WithCode(errors.CodeConflict).
				WithTextCode("USERNAME_TAKEN")

	// ErrIssuanceFailure marks a failed token signing. Fatal for the
	// request; never retried here.
	ErrIssuanceFailure = errors.New("unable to sign token", errors.CategoryInternal).
				WithTextCode("TOKEN_ISSUANCE")

	// ErrTokenExpired is returned by token validation for expired tokens.
	ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("TOKEN_EXPIRED")

	// ErrTokenMalformed is returned by token validation when the token
	// cannot be parsed or its signature does not verify.
	ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized).
				WithTextCode("TOKEN_MALFORMED")

	// ErrMismatchedHashAndPassword is the low-level bcrypt mismatch.
	ErrMismatchedHashAndPassword = errors.New("mismatched password and hash", errors.CategoryAuth)

	// ErrNoEmptyString guards hashing of empty input.
	ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput)
)

// isNotFound matches generic not-found errors and the repository
// layer's record-not-found errors, which carry their own category.
func isNotFound(err error) bool {
	return errors.IsNotFound(err) || repository.IsRecordNotFound(err)
}

// IsConflict reports whether err carries the conflict category.
func IsConflict(err error) bool {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.Category == errors.CategoryConflict
	}
	return false
}

// StatusCode maps an error onto the HTTP status the transport should
// answer with. Unknown errors are server faults.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var rich *errors.Error
	if !errors.As(err, &rich) {
		return http.StatusInternalServerError
	}

	switch rich.Category {
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
