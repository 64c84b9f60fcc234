package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/parleychat/parley/pkg/httpx"
)

type TokenHandler struct {
	SessionService *service.SessionService

	RefreshTTL    time.Duration
	SecureCookies bool
}

// HandleRefresh godoc
//
//	@Summary		Refresh Token Endpoint
//	@Description	Exchange a valid refresh token for a new access/refresh pair
//	@Description	The old refresh token stops working once rotated
//	@Description	The token is read from the request body or the refresh cookie
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RefreshRequest	false	"Refresh token (optional when the cookie is present)"
//	@Success		200		{object}	accountsdk.TokenResponse	"success, message, data"
//	@Failure		401		{object}	accountsdk.Envelope			"success, message"
//	@Router			/v1/accounts/refresh [post].
func (h *TokenHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountsdk.RefreshRequest
	if r.Body != nil {
		// Body is optional; cookie-based browser clients send none.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	token := req.RefreshToken
	if token == "" {
		if c, err := r.Cookie(httpx.RefreshTokenCookie); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Refresh token required")
		return
	}

	pair, err := h.SessionService.Refresh(ctx, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setTokenCookies(w, pair, h.RefreshTTL, h.SecureCookies)
	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Token refreshed", accountsdk.TokenData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// HandleLogout godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revoke the account's refresh token and clear the token cookies
//	@Description	Idempotent: logging out twice succeeds both times
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	accountsdk.Envelope	"success, message"
//	@Failure		401	{object}	accountsdk.Envelope	"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/logout [post].
func (h *TokenHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.SessionService.Logout(ctx, accountID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearTokenCookies(w, h.SecureCookies)
	httpx.WriteSuccess(w, http.StatusOK, "Logged out", nil)
}
