package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/parleychat/parley/internal/accounts/domain"
	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/parleychat/parley/pkg/httpx"
)

type LoginHandler struct {
	SessionService *service.SessionService

	// RefreshTTL sizes the refresh cookie lifetime; SecureCookies is false
	// only outside production.
	RefreshTTL    time.Duration
	SecureCookies bool
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password and receive an access/refresh token pair
//	@Description	Tokens are returned in the body and as http-only cookies
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	accountsdk.LoginResponse	"success, message, data"
//	@Failure		400		{object}	accountsdk.Envelope			"success, message"
//	@Failure		401		{object}	accountsdk.Envelope			"success, message"
//	@Failure		403		{object}	accountsdk.Envelope			"success, message"
//	@Router			/v1/accounts/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, pair, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setTokenCookies(w, pair, h.RefreshTTL, h.SecureCookies)
	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Logged in", accountsdk.LoginData{
		TokenData: accountsdk.TokenData{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresIn:    pair.ExpiresIn,
		},
		Profile: toProfileData(domain.NewProfile(account)),
	})
}
