// Package cryptox provides the one-way hashing, one-time-passcode generation,
// and opaque token helpers used by the accounts service.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. OWASP's low-memory recommendation; passwords and OTP
// codes share the same cost so the verify paths are indistinguishable.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

const phcPrefix = "$argon2id$"

// ErrMismatch is returned by VerifySecret when the secret does not match.
var ErrMismatch = errors.New("cryptox: secret does not match")

// HashSecret hashes a password or OTP code into a PHC-format Argon2id string
// that embeds the salt and cost parameters.
func HashSecret(secret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(secret+GetPepper()), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifySecret compares a plaintext secret against a PHC-format Argon2id
// hash. The comparison is constant-time with respect to the secret content.
func VerifySecret(secret, encodedHash string) error {
	// PHC layout: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return errors.New("cryptox: invalid hash format")
	}
	if parts[1] != "argon2id" || parts[2] != "v=19" {
		return errors.New("cryptox: unsupported hash format")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("cryptox: invalid hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("cryptox: invalid salt encoding: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash encoding: %w", err)
	}

	got := argon2.IDKey([]byte(secret+GetPepper()), salt, iters, mem, par, uint32(len(want))) // #nosec G115

	if subtle.ConstantTimeCompare(got, want) == 1 {
		return nil
	}
	return ErrMismatch
}

// IsHashed reports whether s is already an encoded Argon2id hash. It lets
// callers make re-hashing idempotent: hashing an already-hashed value is a
// bug, not a second layer of safety.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, phcPrefix)
}

// HashIfPlaintext returns s unchanged when it is already an encoded hash and
// hashes it otherwise.
func HashIfPlaintext(s string) (string, error) {
	if IsHashed(s) {
		return s, nil
	}
	return HashSecret(s)
}
