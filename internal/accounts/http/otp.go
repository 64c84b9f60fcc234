package http

import (
	"encoding/json"
	"net/http"

	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/parleychat/parley/pkg/httpx"
)

type OTPHandler struct {
	SessionService *service.SessionService
}

// HandleVerify godoc
//
//	@Summary		Verify OTP Endpoint
//	@Description	Verify the emailed one-time code and mark the account verified
//	@Description	Requires the challenge token from registration as a bearer token
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.VerifyOTPRequest	true	"The emailed code"
//	@Success		200		{object}	accountsdk.Envelope			"success, message"
//	@Failure		400		{object}	accountsdk.Envelope			"success, message"
//	@Failure		401		{object}	accountsdk.Envelope			"success, message"
//	@Failure		403		{object}	accountsdk.Envelope			"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/verify-otp [post].
func (h *OTPHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req accountsdk.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OTP == "" {
		httpx.WriteError(w, http.StatusBadRequest, "otp is required")
		return
	}

	if err := h.SessionService.VerifyOTP(ctx, accountID, req.OTP); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Account verified. You can now log in", nil)
}

// HandleResend godoc
//
//	@Summary		Resend OTP Endpoint
//	@Description	Replace the outstanding code with a fresh one and email it again
//	@Description	Subject to a cooldown between sends
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	accountsdk.Envelope	"success, message"
//	@Failure		400	{object}	accountsdk.Envelope	"success, message"
//	@Failure		401	{object}	accountsdk.Envelope	"success, message"
//	@Failure		429	{object}	accountsdk.Envelope	"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/resend-otp [post].
func (h *OTPHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.SessionService.ResendOTP(ctx, accountID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "A new OTP has been sent to your email", nil)
}
