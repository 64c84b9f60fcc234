package http

import (
	"encoding/json"
	"net/http"

	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/parleychat/parley/pkg/httpx"
)

type RegisterHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Register Account Endpoint
//	@Description	Create a new account and email a one-time verification code
//	@Description	The returned challenge token authorizes only the verify-otp and resend-otp endpoints
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	accountsdk.RegisterResponse	"success, message, data"
//	@Failure		400		{object}	accountsdk.Envelope			"success, message"
//	@Failure		409		{object}	accountsdk.Envelope			"success, message"
//	@Failure		500		{object}	accountsdk.Envelope			"success, message"
//	@Router			/v1/accounts/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	out, err := h.SessionService.Register(ctx, service.RegisterInput{
		FullName:     req.FullName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "Account created. Please verify the OTP sent to your email", accountsdk.RegisterData{
		AccountID:      out.AccountID,
		ChallengeToken: out.ChallengeToken,
	})
}
