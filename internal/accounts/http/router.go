package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/internal/accounts/store"
	"github.com/parleychat/parley/pkg/httpx"
	"github.com/parleychat/parley/pkg/jwtx"
	"github.com/parleychat/parley/pkg/slogx"

	_ "github.com/parleychat/parley/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens        *jwtx.Issuer
	buildVersion  string
	secureCookies bool
	startTime     time.Time
	logger        *slog.Logger

	store           store.Store
	SessionService  *service.SessionService
	PasswordService *service.PasswordService
	ProfileService  *service.ProfileService
}

func NewRouter(
	tokens *jwtx.Issuer,
	buildVersion string,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		tokens:        tokens,
		buildVersion:  buildVersion,
		secureCookies: secureCookies,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerPasswords()
	r.registerProfiles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Parley Accounts Service API
//	@version		0.1.0
//	@description	Account registration, email OTP verification, session tokens, and profile
//	@description	management for the Parley chat platform.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs; each token kind signs with its own secret.
//
//	@contact.name				Parley Team
//	@contact.url				https://github.com/parleychat/parley
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	refreshTTL := r.tokens.TTL(jwtx.KindRefresh)

	// POST /register - strict rate limit by IP (account creation)
	registerHandler := &RegisterHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /v1/accounts/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// OTP endpoints authenticate with the challenge token and sit behind a
	// wall-clock window limiter so code guessing cannot be spread across
	// accounts from one address. One limiter instance covers both routes:
	// verify and resend share the per-address counter.
	otpHandler := &OTPHandler{SessionService: r.SessionService}
	otpLimit := httpx.FixedWindowByIP(httpx.DefaultOTPLimit)
	r.Mux.Handle("POST /v1/accounts/verify-otp",
		httpx.Chain(http.HandlerFunc(otpHandler.HandleVerify),
			otpLimit,
			httpx.AuthnMiddleware(r.tokens, jwtx.KindOTPChallenge, ""),
		),
	)
	r.Mux.Handle("POST /v1/accounts/resend-otp",
		httpx.Chain(http.HandlerFunc(otpHandler.HandleResend),
			otpLimit,
			httpx.AuthnMiddleware(r.tokens, jwtx.KindOTPChallenge, ""),
		),
	)

	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{
		SessionService: r.SessionService,
		RefreshTTL:     refreshTTL,
		SecureCookies:  r.secureCookies,
	}
	r.Mux.Handle("POST /v1/accounts/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	tokenHandler := &TokenHandler{
		SessionService: r.SessionService,
		RefreshTTL:     refreshTTL,
		SecureCookies:  r.secureCookies,
	}

	// POST /refresh - moderate rate limit (the token itself gates access)
	r.Mux.Handle("POST /v1/accounts/refresh",
		httpx.Chain(http.HandlerFunc(tokenHandler.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - requires an access token
	r.Mux.Handle("POST /v1/accounts/logout",
		httpx.Chain(http.HandlerFunc(tokenHandler.HandleLogout),
			httpx.AuthnMiddleware(r.tokens, jwtx.KindAccess, httpx.AccessTokenCookie),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPasswords() {
	h := &PasswordHandler{
		PasswordService: r.PasswordService,
		SecureCookies:   r.secureCookies,
	}

	// POST /change-password - authenticated, strict limit (credential change)
	r.Mux.Handle("POST /v1/accounts/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChange),
			httpx.AuthnMiddleware(r.tokens, jwtx.KindAccess, httpx.AccessTokenCookie),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)

	// POST /forget-password - strict limit by IP (sends email)
	r.Mux.Handle("POST /v1/accounts/forget-password",
		httpx.Chain(http.HandlerFunc(h.HandleForget),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /reset-password - strict limit by IP (token-bearing request)
	r.Mux.Handle("POST /v1/accounts/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfiles() {
	h := &ProfileHandler{
		ProfileService: r.ProfileService,
		SecureCookies:  r.secureCookies,
	}

	authn := httpx.AuthnMiddleware(r.tokens, jwtx.KindAccess, httpx.AccessTokenCookie)

	r.Mux.Handle("GET /v1/accounts/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			authn,
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/accounts/me",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			authn,
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/accounts/me",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			authn,
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /v1/accounts/",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			authn,
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
