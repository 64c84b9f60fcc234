package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var resetTokenPattern = regexp.MustCompile(`token=([A-Za-z0-9._%-]+)`)

func (m *captureMailer) lastResetToken(t *testing.T) string {
	t.Helper()
	match := resetTokenPattern.FindStringSubmatch(m.last(t))
	require.Len(t, match, 2)
	return match[1]
}

func newPasswordEnv(t *testing.T) (*PasswordService, *SessionService, *captureMailer) {
	t.Helper()
	svc, st, mailer := newSessionEnv(t, DefaultOTPConfig())
	pw := NewPasswordService(st, newTestIssuer(), mailer, "https://parley.example/reset-password")
	return pw, svc, mailer
}

func TestChangePassword(t *testing.T) {
	pw, svc, mailer := newPasswordEnv(t)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	verifyAndLogin(t, svc, mailer, out, "avery@example.com", "Sup3r-Secret!")

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := pw.ChangePassword(ctx, out.AccountID, "wrong", "N3w-Secret!!", "N3w-Secret!!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		err := pw.ChangePassword(ctx, out.AccountID, "Sup3r-Secret!", "N3w-Secret!!", "different")
		require.True(t, IsValidation(err))
	})

	t.Run("rejects weak replacement", func(t *testing.T) {
		err := pw.ChangePassword(ctx, out.AccountID, "Sup3r-Secret!", "weak", "weak")
		require.True(t, IsValidation(err))
	})

	t.Run("changes and old password stops working", func(t *testing.T) {
		require.NoError(t, pw.ChangePassword(ctx, out.AccountID, "Sup3r-Secret!", "N3w-Secret!!", "N3w-Secret!!"))

		_, _, err := svc.Login(ctx, "avery@example.com", "Sup3r-Secret!")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "avery@example.com", "N3w-Secret!!")
		require.NoError(t, err)
	})
}

func TestForgetPassword(t *testing.T) {
	pw, svc, mailer := newPasswordEnv(t)
	ctx := context.Background()

	t.Run("unknown email is refused", func(t *testing.T) {
		err := pw.ForgetPassword(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified account is refused", func(t *testing.T) {
		register(t, svc, "pending@example.com")
		err := pw.ForgetPassword(ctx, "pending@example.com")
		require.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("verified account receives a signed link", func(t *testing.T) {
		out := register(t, svc, "avery@example.com")
		require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, mailer.lastOTP(t)))

		require.NoError(t, pw.ForgetPassword(ctx, "avery@example.com"))
		require.NotEmpty(t, mailer.lastResetToken(t))
	})
}

func TestResetPassword(t *testing.T) {
	pw, svc, mailer := newPasswordEnv(t)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	refresh := verifyAndLogin(t, svc, mailer, out, "avery@example.com", "Sup3r-Secret!")

	require.NoError(t, pw.ForgetPassword(ctx, "avery@example.com"))
	token := mailer.lastResetToken(t)

	t.Run("rejects garbage token", func(t *testing.T) {
		err := pw.ResetPassword(ctx, "garbage", "N3w-Secret!!", "N3w-Secret!!")
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("rejects weak replacement", func(t *testing.T) {
		err := pw.ResetPassword(ctx, token, "weak", "weak")
		require.True(t, IsValidation(err))
	})

	t.Run("resets password and revokes sessions", func(t *testing.T) {
		require.NoError(t, pw.ResetPassword(ctx, token, "N3w-Secret!!", "N3w-Secret!!"))

		_, _, err := svc.Login(ctx, "avery@example.com", "N3w-Secret!!")
		require.NoError(t, err)

		// The refresh token issued before the reset is revoked. Login above
		// rotated in a new fingerprint, so the old token cannot match.
		_, err = svc.Refresh(ctx, refresh)
		require.ErrorIs(t, err, ErrRefreshMismatch)
	})
}
