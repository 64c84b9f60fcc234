package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/parleychat/parley/internal/accounts/store/drivers/sqlite"
	"github.com/parleychat/parley/pkg/cryptox"
	"github.com/parleychat/parley/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test-pepper")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// captureMailer records sent mail so tests can pull the OTP code or reset
// link back out of the message body.
type captureMailer struct {
	mu    sync.Mutex
	to    []string
	texts []string
}

func (m *captureMailer) Send(_ context.Context, to, _, _, textBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.texts = append(m.texts, textBody)
	return nil
}

func (m *captureMailer) last(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.texts)
	return m.texts[len(m.texts)-1]
}

var otpCodePattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *captureMailer) lastOTP(t *testing.T) string {
	t.Helper()
	code := otpCodePattern.FindString(m.last(t))
	require.NotEmpty(t, code)
	return code
}

func newTestIssuer() *jwtx.Issuer {
	return jwtx.NewIssuer("parley-test", map[jwtx.Kind]jwtx.KindSpec{
		jwtx.KindAccess:       {Secret: []byte("access-secret")},
		jwtx.KindRefresh:      {Secret: []byte("refresh-secret")},
		jwtx.KindOTPChallenge: {Secret: []byte("challenge-secret")},
		jwtx.KindReset:        {Secret: []byte("reset-secret")},
	})
}

func newSessionEnv(t *testing.T, otp OTPConfig) (*SessionService, *sqlite.Store, *captureMailer) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	mailer := &captureMailer{}
	svc := NewSessionService(st, newTestIssuer(), mailer, otp)
	return svc, st, mailer
}

// mobileFor derives a distinct ten digit number per email, so tests that
// register several accounts in one store do not collide on the mobile
// uniqueness constraint.
func mobileFor(email string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return fmt.Sprintf("04%08d", h.Sum32()%100000000)
}

func register(t *testing.T, svc *SessionService, email string) RegisterOutput {
	t.Helper()
	out, err := svc.Register(context.Background(), RegisterInput{
		FullName:     "Avery Quinn",
		Email:        email,
		MobileNumber: mobileFor(email),
		Password:     "Sup3r-Secret!",
	})
	require.NoError(t, err)
	return out
}

func TestRegisterCreatesUnverifiedAccountWithChallenge(t *testing.T) {
	svc, st, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	require.NotEmpty(t, out.AccountID)
	require.NotEmpty(t, out.ChallengeToken)

	account, err := st.Accounts().GetAccountByID(ctx, out.AccountID)
	require.NoError(t, err)
	require.False(t, account.IsVerified)
	require.NotNil(t, account.OTPHash)
	require.True(t, account.HasActiveOTP(time.Now().UTC()))

	// Stored hash never equals the emailed code.
	code := mailer.lastOTP(t)
	require.NotEqual(t, code, *account.OTPHash)
	require.NoError(t, cryptox.VerifySecret(code, *account.OTPHash))

	// Password stored hashed as well.
	require.NoError(t, cryptox.VerifySecret("Sup3r-Secret!", account.PasswordHash))
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	base := RegisterInput{
		FullName:     "Avery Quinn",
		Email:        "avery@example.com",
		MobileNumber: "0412345678",
		Password:     "Sup3r-Secret!",
	}

	t.Run("rejects malformed email", func(t *testing.T) {
		in := base
		in.Email = "not-an-email"
		_, err := svc.Register(ctx, in)
		require.True(t, IsValidation(err))
	})

	t.Run("rejects short mobile number", func(t *testing.T) {
		in := base
		in.MobileNumber = "12345"
		_, err := svc.Register(ctx, in)
		require.True(t, IsValidation(err))
	})

	t.Run("rejects weak password", func(t *testing.T) {
		in := base
		in.Password = "alllowercase"
		_, err := svc.Register(ctx, in)
		require.True(t, IsValidation(err))
	})

	t.Run("rejects blank name", func(t *testing.T) {
		in := base
		in.FullName = "   "
		_, err := svc.Register(ctx, in)
		require.True(t, IsValidation(err))
	})
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	svc, _, _ := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	register(t, svc, "avery@example.com")

	_, err := svc.Register(ctx, RegisterInput{
		FullName:     "Someone Else",
		Email:        "avery@example.com",
		MobileNumber: "0499999999",
		Password:     "An0ther-Secret!",
	})
	require.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestVerifyOTPHappyPath(t *testing.T) {
	svc, st, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	code := mailer.lastOTP(t)

	require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, code))

	account, err := st.Accounts().GetAccountByID(ctx, out.AccountID)
	require.NoError(t, err)
	require.True(t, account.IsVerified)
	require.Nil(t, account.OTPHash)
	require.Nil(t, account.OTPExpiresAt)
	require.Zero(t, account.OTPAttemptCount)
}

func TestVerifyOTPWrongCodeCountsAndLocks(t *testing.T) {
	cfg := DefaultOTPConfig()
	cfg.MaxAttempts = 3
	svc, st, mailer := newSessionEnv(t, cfg)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	code := mailer.lastOTP(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// Each wrong guess commits its increment, even though the call errors.
	require.ErrorIs(t, svc.VerifyOTP(ctx, out.AccountID, wrong), ErrInvalidOTP)
	account, err := st.Accounts().GetAccountByID(ctx, out.AccountID)
	require.NoError(t, err)
	require.Equal(t, 1, account.OTPAttemptCount)

	for i := 1; i < cfg.MaxAttempts; i++ {
		require.ErrorIs(t, svc.VerifyOTP(ctx, out.AccountID, wrong), ErrInvalidOTP)
	}

	// Threshold reached: locked, and the counter starts over.
	account, err = st.Accounts().GetAccountByID(ctx, out.AccountID)
	require.NoError(t, err)
	require.True(t, account.IsLocked(time.Now().UTC()))
	require.Zero(t, account.OTPAttemptCount)

	// Even the correct code is refused while locked.
	require.ErrorIs(t, svc.VerifyOTP(ctx, out.AccountID, code), ErrAccountLocked)
}

func TestVerifyOTPExpiredChallenge(t *testing.T) {
	cfg := DefaultOTPConfig()
	cfg.TTL = -time.Second
	svc, _, mailer := newSessionEnv(t, cfg)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	code := mailer.lastOTP(t)

	require.ErrorIs(t, svc.VerifyOTP(ctx, out.AccountID, code), ErrChallengeExpired)
}

func TestVerifyOTPNoChallenge(t *testing.T) {
	svc, _, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	code := mailer.lastOTP(t)
	require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, code))

	// Challenge consumed: a second submit of the same code fails.
	require.ErrorIs(t, svc.VerifyOTP(ctx, out.AccountID, code), ErrChallengeExpired)
}

func TestResendOTPReplacesChallenge(t *testing.T) {
	cfg := DefaultOTPConfig()
	cfg.ResendCooldown = 0
	svc, _, mailer := newSessionEnv(t, cfg)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	first := mailer.lastOTP(t)

	require.NoError(t, svc.ResendOTP(ctx, out.AccountID))
	second := mailer.lastOTP(t)

	// The first code no longer verifies once replaced, unless the randomly
	// generated codes happen to collide.
	if first != second {
		require.ErrorIs(t, svc.VerifyOTP(ctx, out.AccountID, first), ErrInvalidOTP)
	}
	require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, second))
}

func TestResendOTPCooldown(t *testing.T) {
	svc, _, _ := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	require.ErrorIs(t, svc.ResendOTP(ctx, out.AccountID), ErrResendCooldown)
}

func TestResendOTPAlreadyVerified(t *testing.T) {
	svc, _, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, mailer.lastOTP(t)))

	require.ErrorIs(t, svc.ResendOTP(ctx, out.AccountID), ErrAlreadyVerified)
}

func verifyAndLogin(t *testing.T, svc *SessionService, mailer *captureMailer, out RegisterOutput, email, password string) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, mailer.lastOTP(t)))
	_, pair, err := svc.Login(ctx, email, password)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair.RefreshToken
}

func TestLoginRequiresVerification(t *testing.T) {
	svc, _, _ := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	register(t, svc, "avery@example.com")

	_, _, err := svc.Login(ctx, "avery@example.com", "Sup3r-Secret!")
	require.ErrorIs(t, err, ErrNotVerified)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, mailer.lastOTP(t)))

	_, _, err := svc.Login(ctx, "avery@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password.
	_, _, err = svc.Login(ctx, "nobody@example.com", "Sup3r-Secret!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	refresh := verifyAndLogin(t, svc, mailer, out, "avery@example.com", "Sup3r-Secret!")

	pair, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEqual(t, refresh, pair.RefreshToken)
	require.Equal(t, int64(jwtx.DefaultAccessTTL.Seconds()), pair.ExpiresIn)

	// The superseded refresh token is dead after rotation.
	_, err = svc.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrRefreshMismatch)

	// The rotated one still works.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsGarbageAndWrongKind(t *testing.T) {
	svc, _, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	verifyAndLogin(t, svc, mailer, out, "avery@example.com", "Sup3r-Secret!")

	_, err := svc.Refresh(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)

	// An access token is not exchangeable for new tokens.
	_, pair, err := svc.Login(ctx, "avery@example.com", "Sup3r-Secret!")
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogoutRevokesRefresh(t *testing.T) {
	svc, _, mailer := newSessionEnv(t, DefaultOTPConfig())
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	refresh := verifyAndLogin(t, svc, mailer, out, "avery@example.com", "Sup3r-Secret!")

	require.NoError(t, svc.Logout(ctx, out.AccountID))

	_, err := svc.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrRefreshMismatch)

	// Logout is idempotent.
	require.NoError(t, svc.Logout(ctx, out.AccountID))
}
