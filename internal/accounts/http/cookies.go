package http

import (
	"net/http"
	"time"

	"github.com/parleychat/parley/internal/accounts/domain"
	"github.com/parleychat/parley/pkg/httpx"
)

// setTokenCookies delivers a token pair as http-only cookies alongside the
// JSON body, so browser clients never touch the raw tokens from script.
func setTokenCookies(w http.ResponseWriter, pair domain.TokenPair, refreshTTL time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(pair.ExpiresIn),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/v1/accounts",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearTokenCookies expires both token cookies.
func clearTokenCookies(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.RefreshTokenCookie,
		Value:    "",
		Path:     "/v1/accounts",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
