package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/parleychat/parley/pkg/jwtx"
)

// Cookie names used when tokens are delivered to browsers.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// TokenVerifier validates a token of a given kind. *jwtx.Issuer satisfies it.
type TokenVerifier interface {
	Verify(kind jwtx.Kind, token string) (jwtx.Claims, error)
}

// ExtractToken pulls a token from the Authorization header, falling back to
// the named cookie. Returns "" when neither is present. cookieName may be
// empty to accept headers only.
func ExtractToken(r *http.Request, cookieName string) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if token, ok := strings.CutPrefix(authz, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}

// AuthnMiddleware verifies a token of the given kind and stores the account
// id and claims on the request context. Tokens arrive as a bearer header or,
// when cookieName is non-empty, an http-only cookie.
func AuthnMiddleware(verifier TokenVerifier, kind jwtx.Kind, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cookieName)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := verifier.Verify(kind, token)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					WriteError(w, http.StatusUnauthorized, "Token has expired")
					return
				}
				WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), CtxKeyAccountID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims stored by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	claims, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return claims, ok
}
