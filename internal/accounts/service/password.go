package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/parleychat/parley/internal/accounts/store"
	"github.com/parleychat/parley/pkg/cryptox"
	"github.com/parleychat/parley/pkg/idx"
	"github.com/parleychat/parley/pkg/jwtx"
	"github.com/parleychat/parley/pkg/mailx"
	"github.com/parleychat/parley/pkg/slogx"
)

// PasswordService handles password changes for signed-in accounts and the
// emailed reset-link flow for accounts that forgot theirs.
type PasswordService struct {
	store  store.Store
	tokens *jwtx.Issuer
	mailer mailx.Mailer

	// resetBaseURL is the frontend page the emailed link points at; the
	// signed reset token is appended as a query parameter.
	resetBaseURL string
}

func NewPasswordService(st store.Store, tokens *jwtx.Issuer, mailer mailx.Mailer, resetBaseURL string) *PasswordService {
	return &PasswordService{store: st, tokens: tokens, mailer: mailer, resetBaseURL: resetBaseURL}
}

// ChangePassword replaces the password of a signed-in account after checking
// the current one.
func (s *PasswordService) ChangePassword(ctx context.Context, accountID string, current, next, confirm string) error {
	if next != confirm {
		return &ValidationError{Field: "confirmPassword", Reason: "must match the new password"}
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	account, err := s.store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	if err := cryptox.VerifySecret(current, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}

	hash, err := cryptox.HashSecret(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().UpdatePasswordHash(ctx, accountID, hash)
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", "account_id", accountID)
	return nil
}

// ForgetPassword emails a signed, time-limited reset link to a verified
// account. The link embeds a reset-kind token scoped to the account.
func (s *PasswordService) ForgetPassword(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	account, err := s.store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to load account: %w", err)
	}
	if !account.IsVerified {
		return ErrNotVerified
	}

	token, err := s.tokens.Issue(jwtx.KindReset, account.ID, account.Email, account.FullName)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	link := s.resetBaseURL + "?token=" + url.QueryEscape(token)
	subject, html, text := mailx.ResetEmail(account.FullName, link)
	if err := s.mailer.Send(ctx, account.Email, subject, html, text); err != nil {
		slogx.FromContext(ctx).Error("failed to send reset email",
			"account_id", account.ID,
			"error", err,
		)
		return ErrMailDelivery
	}

	slogx.FromContext(ctx).Info("reset link sent", "account_id", account.ID)
	return nil
}

// ResetPassword consumes a reset-link token and sets a new password. Any
// outstanding refresh token is revoked so stolen sessions die with the old
// password.
func (s *PasswordService) ResetPassword(ctx context.Context, resetToken, next, confirm string) error {
	claims, err := s.tokens.Verify(jwtx.KindReset, resetToken)
	if err != nil {
		return mapTokenError(err)
	}

	if next != confirm {
		return &ValidationError{Field: "confirmPassword", Reason: "must match the new password"}
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	if _, err := idx.Parse(claims.Subject); err != nil {
		return ErrTokenInvalid
	}
	accountID := claims.Subject

	hash, err := cryptox.HashSecret(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().UpdatePasswordHash(ctx, accountID, hash); err != nil {
			return err
		}
		return tx.Accounts().UpdateRefreshFingerprint(ctx, accountID, "")
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	slogx.FromContext(ctx).Info("password reset", "account_id", accountID)
	return nil
}
