// Package businessflow contains the core business logic and use cases for the URL shortener
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Account-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// URL-related errors
	ErrURLNotFound             = errors.New("URL not found")
	ErrURLExpired              = errors.New("URL has expired")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidURL              = errors.New("invalid URL format")
	ErrOriginalURLRequired     = errors.New("original URL is required")
	ErrInvalidCustomCode       = errors.New("short code must be between 3 and 20 characters")
	ErrShortCodeTaken          = errors.New("this short code is already taken")
	ErrCodeGenerationExhausted = errors.New("could not allocate a unique short code")
	ErrInvalidExpiry           = errors.New("expiry must be in the future")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
	ErrInvalidSort     = errors.New("unsupported sort field")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsURLNotFound(err error) bool {
	return errors.Is(err, ErrURLNotFound)
}

func IsURLExpired(err error) bool {
	return errors.Is(err, ErrURLExpired)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsInvalidURL(err error) bool {
	return errors.Is(err, ErrInvalidURL)
}

func IsOriginalURLRequired(err error) bool {
	return errors.Is(err, ErrOriginalURLRequired)
}

func IsInvalidCustomCode(err error) bool {
	return errors.Is(err, ErrInvalidCustomCode)
}

func IsShortCodeTaken(err error) bool {
	return errors.Is(err, ErrShortCodeTaken)
}

func IsCodeGenerationExhausted(err error) bool {
	return errors.Is(err, ErrCodeGenerationExhausted)
}

func IsInvalidExpiry(err error) bool {
	return errors.Is(err, ErrInvalidExpiry)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsInvalidSort(err error) bool {
	return errors.Is(err, ErrInvalidSort)
}
