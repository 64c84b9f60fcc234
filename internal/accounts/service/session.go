package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parleychat/parley/internal/accounts/domain"
	"github.com/parleychat/parley/internal/accounts/store"
	"github.com/parleychat/parley/pkg/cryptox"
	"github.com/parleychat/parley/pkg/idx"
	"github.com/parleychat/parley/pkg/jwtx"
	"github.com/parleychat/parley/pkg/mailx"
	"github.com/parleychat/parley/pkg/slogx"
)

// OTPConfig tunes the one-time-code challenge lifecycle.
type OTPConfig struct {
	TTL            time.Duration
	MaxAttempts    int
	LockDuration   time.Duration
	ResendCooldown time.Duration
}

// DefaultOTPConfig matches the documented challenge policy: codes live for
// 15 minutes, five wrong guesses lock the account for 15 minutes, and a new
// code may be requested at most once per minute.
func DefaultOTPConfig() OTPConfig {
	return OTPConfig{
		TTL:            15 * time.Minute,
		MaxAttempts:    5,
		LockDuration:   15 * time.Minute,
		ResendCooldown: time.Minute,
	}
}

// SessionService owns the account lifecycle from registration through token
// rotation: it creates accounts, runs the OTP verification challenge and
// issues, refreshes and revokes token pairs.
type SessionService struct {
	store  store.Store
	tokens *jwtx.Issuer
	mailer mailx.Mailer
	otp    OTPConfig
}

func NewSessionService(st store.Store, tokens *jwtx.Issuer, mailer mailx.Mailer, otp OTPConfig) *SessionService {
	if otp.TTL == 0 {
		otp = DefaultOTPConfig()
	}
	return &SessionService{store: st, tokens: tokens, mailer: mailer, otp: otp}
}

// RegisterInput carries the self-service signup form.
type RegisterInput struct {
	FullName     string
	Email        string
	MobileNumber string
	Password     string
}

// RegisterOutput returns the new account's ID together with a short-lived
// challenge token the client presents when verifying or resending the OTP.
type RegisterOutput struct {
	AccountID      string
	ChallengeToken string
}

// Register creates an unverified account, issues its first OTP challenge and
// emails the code. The account persists even when the mail send fails, so a
// later resend can recover the flow.
func (s *SessionService) Register(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	if err := validateFullName(in.FullName); err != nil {
		return RegisterOutput{}, err
	}
	if err := validateEmail(in.Email); err != nil {
		return RegisterOutput{}, err
	}
	if err := validateMobileNumber(in.MobileNumber); err != nil {
		return RegisterOutput{}, err
	}
	if err := validatePassword(in.Password); err != nil {
		return RegisterOutput{}, err
	}

	hash, err := cryptox.HashSecret(in.Password)
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := domain.Account{
		ID:           idx.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		PasswordHash: hash,
	}
	if err := s.store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return RegisterOutput{}, ErrDuplicateIdentity
		}
		return RegisterOutput{}, fmt.Errorf("failed to create account: %w", err)
	}

	slogx.FromContext(ctx).Info("account registered",
		"account_id", account.ID,
	)

	out := RegisterOutput{AccountID: account.ID}
	if err := s.issueOTP(ctx, account); err != nil {
		return out, err
	}

	challenge, err := s.tokens.Issue(jwtx.KindOTPChallenge, account.ID, account.Email, account.FullName)
	if err != nil {
		return out, fmt.Errorf("failed to issue challenge token: %w", err)
	}
	out.ChallengeToken = challenge
	return out, nil
}

// issueOTP generates a fresh code, stores its hash with a new expiry and
// zeroed attempt counter, then emails the plaintext code. Only the hash is
// ever persisted.
func (s *SessionService) issueOTP(ctx context.Context, account domain.Account) error {
	code, err := cryptox.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	otpHash, err := cryptox.HashSecret(code)
	if err != nil {
		return fmt.Errorf("failed to hash otp: %w", err)
	}

	now := time.Now().UTC()
	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().SetOTPChallenge(ctx, account.ID, otpHash, now.Add(s.otp.TTL), now)
	})
	if err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}

	subject, html, text := mailx.OTPEmail(account.FullName, code, int(s.otp.TTL.Minutes()))
	if err := s.mailer.Send(ctx, account.Email, subject, html, text); err != nil {
		slogx.FromContext(ctx).Error("failed to send otp email",
			"account_id", account.ID,
			"error", err,
		)
		return ErrMailDelivery
	}
	return nil
}

// VerifyOTP checks a submitted code against the account's active challenge.
// Checks run in a fixed order: an expired or absent challenge wins over a
// lock, a lock wins over a code comparison. A wrong code bumps the attempt
// counter and locks the account once it reaches the threshold; a correct code
// clears the challenge and marks the account verified.
func (s *SessionService) VerifyOTP(ctx context.Context, accountID string, code string) error {
	// The wrong-code outcome is carried out of the transaction instead of
	// returned from it: returning an error would roll back the attempt
	// counter and the lock, which must survive a failed guess.
	var verifyErr error

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				verifyErr = ErrTokenInvalid
				return nil
			}
			return fmt.Errorf("failed to load account: %w", err)
		}

		now := time.Now().UTC()
		if !account.HasActiveOTP(now) {
			verifyErr = ErrChallengeExpired
			return nil
		}
		if account.IsLocked(now) {
			verifyErr = ErrAccountLocked
			return nil
		}

		if err := cryptox.VerifySecret(code, *account.OTPHash); err != nil {
			if !errors.Is(err, cryptox.ErrMismatch) {
				return fmt.Errorf("failed to compare otp: %w", err)
			}
			attempts, err := tx.Accounts().IncrementOTPAttempts(ctx, accountID)
			if err != nil {
				return fmt.Errorf("failed to record otp attempt: %w", err)
			}
			if attempts >= s.otp.MaxAttempts {
				if err := tx.Accounts().SetOTPLock(ctx, accountID, now.Add(s.otp.LockDuration)); err != nil {
					return fmt.Errorf("failed to lock account: %w", err)
				}
				slogx.FromContext(ctx).Warn("account locked after repeated otp failures",
					"account_id", accountID,
				)
			}
			verifyErr = ErrInvalidOTP
			return nil
		}

		if err := tx.Accounts().ClearOTPChallenge(ctx, accountID); err != nil {
			return fmt.Errorf("failed to clear otp challenge: %w", err)
		}
		if !account.IsVerified {
			if err := tx.Accounts().MarkVerified(ctx, accountID); err != nil {
				return fmt.Errorf("failed to mark account verified: %w", err)
			}
		}

		slogx.FromContext(ctx).Info("account verified", "account_id", accountID)
		return nil
	})
	if err != nil {
		return err
	}
	return verifyErr
}

// ResendOTP replaces the account's challenge with a fresh code, subject to a
// cooldown since the last send. Resending for an already verified account is
// rejected rather than silently ignored.
func (s *SessionService) ResendOTP(ctx context.Context, accountID string) error {
	account, err := s.store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	if account.IsVerified {
		return ErrAlreadyVerified
	}

	now := time.Now().UTC()
	if account.LastOTPSentAt != nil && now.Sub(*account.LastOTPSentAt) < s.otp.ResendCooldown {
		return ErrResendCooldown
	}

	return s.issueOTP(ctx, account)
}

// Login authenticates by email and password and issues a fresh token pair.
// Unknown emails and wrong passwords are indistinguishable to the caller;
// unverified accounts are refused before any tokens exist.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Account, domain.TokenPair, error) {
	account, err := s.store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.Account{}, domain.TokenPair{}, fmt.Errorf("failed to load account: %w", err)
	}

	if err := cryptox.VerifySecret(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return domain.Account{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.Account{}, domain.TokenPair{}, fmt.Errorf("failed to compare password: %w", err)
	}

	if !account.IsVerified {
		return domain.Account{}, domain.TokenPair{}, ErrNotVerified
	}

	pair, err := s.issuePair(ctx, account)
	if err != nil {
		return domain.Account{}, domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("account logged in", "account_id", account.ID)
	return account, pair, nil
}

// Refresh rotates a token pair. The presented refresh token must verify and
// its fingerprint must match the one stored on the account, so a token that
// was already rotated out, or revoked by logout, cannot mint new tokens.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.tokens.Verify(jwtx.KindRefresh, refreshToken)
	if err != nil {
		return domain.TokenPair{}, mapTokenError(err)
	}

	if _, err := idx.Parse(claims.Subject); err != nil {
		return domain.TokenPair{}, ErrTokenInvalid
	}

	account, err := s.store.Accounts().GetAccountByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrTokenInvalid
		}
		return domain.TokenPair{}, fmt.Errorf("failed to load account: %w", err)
	}

	if account.RefreshFingerprint == "" || account.RefreshFingerprint != cryptox.Fingerprint(refreshToken) {
		slogx.FromContext(ctx).Warn("refresh token fingerprint mismatch",
			"account_id", account.ID,
		)
		return domain.TokenPair{}, ErrRefreshMismatch
	}

	return s.issuePair(ctx, account)
}

// Logout revokes the account's refresh token. Idempotent: logging out twice
// succeeds both times.
func (s *SessionService) Logout(ctx context.Context, accountID string) error {
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().UpdateRefreshFingerprint(ctx, accountID, "")
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	slogx.FromContext(ctx).Info("account logged out", "account_id", accountID)
	return nil
}

// issuePair mints an access/refresh pair and stores the refresh token's
// fingerprint, invalidating whichever refresh token was live before.
func (s *SessionService) issuePair(ctx context.Context, account domain.Account) (domain.TokenPair, error) {
	access, err := s.tokens.Issue(jwtx.KindAccess, account.ID, account.Email, account.FullName)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.Issue(jwtx.KindRefresh, account.ID, account.Email, account.FullName)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().UpdateRefreshFingerprint(ctx, account.ID, cryptox.Fingerprint(refresh))
	})
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to store refresh fingerprint: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.TTL(jwtx.KindAccess).Seconds()),
	}, nil
}

// mapTokenError converts token verification failures into the service error
// vocabulary.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return ErrTokenExpired
	default:
		return ErrTokenInvalid
	}
}
