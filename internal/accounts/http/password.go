package http

import (
	"encoding/json"
	"net/http"

	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/parleychat/parley/pkg/httpx"
)

type PasswordHandler struct {
	PasswordService *service.PasswordService

	SecureCookies bool
}

// HandleChange godoc
//
//	@Summary		Change Password Endpoint
//	@Description	Replace the signed-in account's password after checking the current one
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	accountsdk.Envelope					"success, message"
//	@Failure		400		{object}	accountsdk.Envelope					"success, message"
//	@Failure		401		{object}	accountsdk.Envelope					"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/change-password [post].
func (h *PasswordHandler) HandleChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req accountsdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "currentPassword and newPassword are required")
		return
	}

	err := h.PasswordService.ChangePassword(ctx, accountID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Password changed", nil)
}

// HandleForget godoc
//
//	@Summary		Forget Password Endpoint
//	@Description	Email a signed, time-limited password reset link to a verified account
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ForgetPasswordRequest	true	"Account email"
//	@Success		200		{object}	accountsdk.Envelope					"success, message"
//	@Failure		400		{object}	accountsdk.Envelope					"success, message"
//	@Failure		401		{object}	accountsdk.Envelope					"success, message"
//	@Failure		403		{object}	accountsdk.Envelope					"success, message"
//	@Router			/v1/accounts/forget-password [post].
func (h *PasswordHandler) HandleForget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountsdk.ForgetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.PasswordService.ForgetPassword(ctx, req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "A reset link has been sent to your email", nil)
}

// HandleReset godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Set a new password using the token from the emailed reset link
//	@Description	All existing sessions are revoked
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ResetPasswordRequest	true	"Reset token and new password"
//	@Success		200		{object}	accountsdk.Envelope				"success, message"
//	@Failure		400		{object}	accountsdk.Envelope				"success, message"
//	@Failure		401		{object}	accountsdk.Envelope				"success, message"
//	@Router			/v1/accounts/reset-password [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountsdk.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		httpx.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.PasswordService.ResetPassword(ctx, req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearTokenCookies(w, h.SecureCookies)
	httpx.WriteSuccess(w, http.StatusOK, "Password reset. Please log in with your new password", nil)
}
