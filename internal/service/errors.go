package service

import "errors"

// Sentinel errors for the domain. Handlers match these with errors.Is and map
// them to transport status codes; nothing below the API layer knows about HTTP.
var (
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user account is disabled")

	ErrInvalidToken   = errors.New("invalid token")
	ErrMalformedToken = errors.New("malformed token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrAccessDenied   = errors.New("access denied")

	ErrInvalidAIResponse = errors.New("AI provider returned unparseable content")
)

// ValidationError reports out-of-range or malformed input, keyed per field.
// It is raised before any persistence happens.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
