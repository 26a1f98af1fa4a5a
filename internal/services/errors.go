package services

import (
	"errors"
	"fmt"
)

// ErrEmailTaken is returned when a registration loses the uniqueness
// race for its normalized email.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned for every authentication failure.
// Unknown email and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidSession is returned when a token is unknown, revoked, or
// past its expiry.
var ErrInvalidSession = errors.New("invalid session")

// ValidationError reports a caller-correctable problem with the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
