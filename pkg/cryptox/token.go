package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns a deterministic SHA-256 digest of a token, encoded
// base64url without padding (43 chars).
//
// The service stores only the fingerprint of the active refresh token, so a
// database compromise does not leak replayable tokens while equality checks
// against a presented token stay cheap.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
