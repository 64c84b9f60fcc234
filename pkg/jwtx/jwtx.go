// Package jwtx mints and verifies the signed, time-boxed tokens used by the
// accounts service. Every token carries a Kind; each kind signs with its own
// secret so a token minted for one purpose can never be replayed as another.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind tags the purpose of a token.
type Kind string

const (
	// KindAccess authorizes protected-route calls. Short-lived.
	KindAccess Kind = "access"
	// KindRefresh is exchanged for a new access token without re-login.
	KindRefresh Kind = "refresh"
	// KindOTPChallenge authorizes only the verify/resend endpoints pre-login.
	KindOTPChallenge Kind = "otp_challenge"
	// KindReset authorizes a single password reset, delivered by email link.
	KindReset Kind = "reset"
)

// Default TTLs per kind.
const (
	DefaultAccessTTL       = 5 * time.Minute
	DefaultRefreshTTL      = 7 * 24 * time.Hour
	DefaultOTPChallengeTTL = 10 * time.Minute
	DefaultResetTTL        = time.Hour
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrKindMismatch = errors.New("jwtx: token kind mismatch")
	ErrUnknownKind  = errors.New("jwtx: unknown token kind")
)

// Claims are the claims embedded in every service token. Display fields are
// only populated on access tokens; email additionally on reset tokens so the
// reset flow can re-check the account it was minted for.
type Claims struct {
	jwt.RegisteredClaims

	Kind     Kind   `json:"knd"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// KindSpec holds the signing secret and lifetime for one token kind.
type KindSpec struct {
	Secret []byte
	TTL    time.Duration
}

// Issuer signs and verifies tokens for a fixed set of kinds.
type Issuer struct {
	issuer string
	specs  map[Kind]KindSpec
	leeway time.Duration
}

// NewIssuer builds an Issuer. Specs missing a TTL get the kind's default.
func NewIssuer(issuer string, specs map[Kind]KindSpec) *Issuer {
	withDefaults := make(map[Kind]KindSpec, len(specs))
	for kind, spec := range specs {
		if spec.TTL <= 0 {
			spec.TTL = defaultTTL(kind)
		}
		withDefaults[kind] = spec
	}
	return &Issuer{
		issuer: issuer,
		specs:  withDefaults,
		leeway: 30 * time.Second,
	}
}

func defaultTTL(kind Kind) time.Duration {
	switch kind {
	case KindRefresh:
		return DefaultRefreshTTL
	case KindOTPChallenge:
		return DefaultOTPChallengeTTL
	case KindReset:
		return DefaultResetTTL
	default:
		return DefaultAccessTTL
	}
}

// TTL returns the configured lifetime for a kind (zero for unknown kinds).
func (i *Issuer) TTL(kind Kind) time.Duration {
	return i.specs[kind].TTL
}

// Issue signs a token of the given kind bound to the account id. Email and
// fullName may be empty; they are claims, not requirements.
func (i *Issuer) Issue(kind Kind, accountID, email, fullName string) (string, error) {
	return i.IssueAt(kind, accountID, email, fullName, time.Now().UTC())
}

// IssueAt is Issue with an explicit clock, for tests exercising expiry.
func (i *Issuer) IssueAt(kind Kind, accountID, email, fullName string, now time.Time) (string, error) {
	spec, ok := i.specs[kind]
	if !ok {
		return "", ErrUnknownKind
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(spec.TTL)),
			ID:        NewJTI(),
		},
		Kind:     kind,
		Email:    email,
		FullName: fullName,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(spec.Secret)
}

// Verify parses and validates a token of the expected kind. Expired tokens
// fail with ErrExpired; anything else about the token's shape, signature, or
// kind fails with ErrMalformed / ErrKindMismatch. The two are deliberately
// distinguishable for callers.
func (i *Issuer) Verify(kind Kind, token string) (Claims, error) {
	spec, ok := i.specs[kind]
	if !ok {
		return Claims{}, ErrUnknownKind
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return spec.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithLeeway(i.leeway),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrMalformed
	}

	// Secrets differ per kind, but a shared secret in a misconfigured
	// deployment must still not cross kinds.
	if claims.Kind != kind {
		return Claims{}, ErrKindMismatch
	}

	return claims, nil
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
