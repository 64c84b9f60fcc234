package http

import (
	"errors"
	"net/http"

	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/pkg/httpx"
	"github.com/parleychat/parley/pkg/slogx"
)

// writeServiceError maps service errors onto HTTP statuses with stable,
// user-facing messages. Unexpected errors are logged and reported as a bare
// 500 so internals never leak into responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid "+ve.Field+": "+ve.Reason)
		return
	}

	switch {
	case errors.Is(err, service.ErrDuplicateIdentity):
		httpx.WriteError(w, http.StatusConflict, "An account with this email or mobile number already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrNotVerified):
		httpx.WriteError(w, http.StatusForbidden, "Account is not verified")
	case errors.Is(err, service.ErrAlreadyVerified):
		httpx.WriteError(w, http.StatusBadRequest, "Account is already verified")
	case errors.Is(err, service.ErrChallengeExpired):
		httpx.WriteError(w, http.StatusBadRequest, "OTP has expired. Please request a new one")
	case errors.Is(err, service.ErrInvalidOTP):
		httpx.WriteError(w, http.StatusBadRequest, "Incorrect OTP")
	case errors.Is(err, service.ErrAccountLocked):
		httpx.WriteError(w, http.StatusForbidden, "Too many incorrect attempts. Account temporarily locked")
	case errors.Is(err, service.ErrResendCooldown):
		httpx.WriteError(w, http.StatusTooManyRequests, "Please wait before requesting another OTP")
	case errors.Is(err, service.ErrTokenExpired):
		httpx.WriteError(w, http.StatusUnauthorized, "Token has expired")
	case errors.Is(err, service.ErrTokenInvalid):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, service.ErrRefreshMismatch):
		httpx.WriteError(w, http.StatusUnauthorized, "Refresh token is no longer valid")
	case errors.Is(err, service.ErrMailDelivery):
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to send email. Please try again")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
