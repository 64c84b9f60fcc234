package store

import (
	"context"
	"errors"
	"time"

	"github.com/parleychat/parley/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Services never see database/sql directly.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit() or Rollback() the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing on nil and rolling
	// back on error. Mutating account flows go through here so a
	// read-check-write sequence cannot interleave with another request
	// for the same account.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ProfilePatch is a partial profile mutation; nil fields are left untouched.
type ProfilePatch struct {
	FullName     *string
	Gender       *string
	About        *string
	ProfileImage *string
}

type Accounts interface {
	// CreateAccount inserts a new account (id is provided by the app via
	// ULID). Fails with ErrAlreadyExists when the email or mobile number
	// is already taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccounts returns all accounts ordered by creation (newest first).
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdatePasswordHash sets the password hash and bumps updated_at. The
	// argument must already be an encoded hash; the store never hashes.
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error

	// SetOTPChallenge stores a new OTP hash + expiry, stamps last_otp_sent_at,
	// and zeroes the attempt counter. Overwrites any previous challenge.
	SetOTPChallenge(ctx context.Context, id, otpHash string, expiresAt, sentAt time.Time) error

	// ClearOTPChallenge drops the hash, expiry, and attempt counter together.
	ClearOTPChallenge(ctx context.Context, id string) error

	// IncrementOTPAttempts bumps the wrong-guess counter and returns the
	// new value.
	IncrementOTPAttempts(ctx context.Context, id string) (int, error)

	// SetOTPLock sets the lockout timestamp and resets the attempt counter.
	SetOTPLock(ctx context.Context, id string, until time.Time) error

	// MarkVerified flips is_verified on.
	MarkVerified(ctx context.Context, id string) error

	// UpdateRefreshFingerprint stores the fingerprint of the currently
	// valid refresh token; the empty string clears it (logout).
	UpdateRefreshFingerprint(ctx context.Context, id, fingerprint string) error

	// UpdateProfile applies a partial profile mutation.
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) error

	DeleteAccount(ctx context.Context, id string) error

	// Housekeeping: drop OTP state that can no longer be used.
	ClearExpiredOTPChallenges(ctx context.Context, now time.Time) error
	ClearExpiredOTPLocks(ctx context.Context, now time.Time) error
}
