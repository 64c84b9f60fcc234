package service

import (
	"errors"
	"fmt"
)

// Expected failure kinds. The HTTP layer maps these onto statuses; anything
// not listed here is an internal error whose details stay out of responses.
var (
	ErrDuplicateIdentity  = errors.New("duplicate_identity")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotVerified        = errors.New("account_not_verified")
	ErrAlreadyVerified    = errors.New("already_verified")

	ErrChallengeExpired = errors.New("otp_challenge_expired")
	ErrInvalidOTP       = errors.New("invalid_otp")
	ErrAccountLocked    = errors.New("account_locked")
	ErrResendCooldown   = errors.New("otp_resend_cooldown")

	ErrTokenExpired    = errors.New("token_expired")
	ErrTokenInvalid    = errors.New("token_invalid")
	ErrRefreshMismatch = errors.New("refresh_mismatch")

	ErrMailDelivery = errors.New("mail_delivery_failed")
)

// ValidationError reports malformed input. Field names the offending input so
// the caller can correct it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
