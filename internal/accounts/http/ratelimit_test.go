package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parleychat/parley/pkg/httpx"
	"github.com/parleychat/parley/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *Router {
	tokens := jwtx.NewIssuer("parley-test", map[jwtx.Kind]jwtx.KindSpec{
		jwtx.KindAccess:       {Secret: []byte("access-secret")},
		jwtx.KindRefresh:      {Secret: []byte("refresh-secret")},
		jwtx.KindOTPChallenge: {Secret: []byte("challenge-secret")},
		jwtx.KindReset:        {Secret: []byte("reset-secret")},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter(tokens, "test", false, nil, logger)
	r.ApplyRoutes()
	return r
}

// TestOTPEndpointsShareRateLimitWindow verifies verify-otp and resend-otp
// draw from one per-address window: the limiter counts both endpoints
// together, so the budget cannot be doubled by alternating between them.
func TestOTPEndpointsShareRateLimitWindow(t *testing.T) {
	r := newTestRouter()

	do := func(path, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("X-Real-IP", addr)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// Alternate endpoints up to the shared limit. The requests carry no
	// challenge token, so they bounce off authn with a 401, but the limiter
	// sits in front and counts them all the same.
	paths := []string{"/v1/accounts/verify-otp", "/v1/accounts/resend-otp"}
	for i := 0; i < httpx.DefaultOTPLimit.Limit; i++ {
		rec := do(paths[i%2], "203.0.113.7")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "request %d should pass the limiter", i+1)
	}

	rec := do(paths[0], "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// The other endpoint is exhausted too.
	rec = do(paths[1], "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different address still has its own budget.
	rec = do(paths[1], "203.0.113.8")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
