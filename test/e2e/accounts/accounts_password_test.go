package accounts_test

import (
	"testing"

	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestChangePassword verifies an authenticated password change and that only
// the new password logs in afterwards.
func TestChangePassword(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)
	registerAndVerify(t, client, container, testEmail, testMobile)

	session, err := client.Login(t.Context(), testEmail, testPassword)
	require.NoError(t, err)

	const newPassword = "An0ther-Secret!"
	require.NoError(t, session.ChangePassword(t.Context(), testPassword, newPassword, newPassword))

	_, err = client.Login(t.Context(), testEmail, testPassword)
	require.True(t, accountsdk.IsUnauthorized(err), "old password should stop working, got: %v", err)

	_, err = client.Login(t.Context(), testEmail, newPassword)
	require.NoError(t, err, "new password should login")
}

// TestForgetResetPassword tests the full reset flow:
// 1. Request a reset link
// 2. Extract the token from the emailed link in the log mailer
// 3. Reset the password and login with it
// 4. Verify sessions issued before the reset are revoked
func TestForgetResetPassword(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)
	registerAndVerify(t, client, container, testEmail, testMobile)

	session, err := client.Login(t.Context(), testEmail, testPassword)
	require.NoError(t, err)
	oldRefreshToken := session.RefreshToken()
	oldAccessToken := session.AccessToken()

	require.NoError(t, client.ForgetPassword(t.Context(), testEmail))
	resetToken := latestResetTokenFromLogs(t, container)

	const newPassword = "Fresh-Secret-9!"
	require.NoError(t, client.ResetPassword(t.Context(), resetToken, newPassword, newPassword))

	t.Logf("Password reset successful")

	_, err = client.Login(t.Context(), testEmail, newPassword)
	require.NoError(t, err, "new password should login")

	_, err = client.Login(t.Context(), testEmail, testPassword)
	require.True(t, accountsdk.IsUnauthorized(err), "old password should stop working, got: %v", err)

	// Sessions issued before the reset must not survive it.
	stale := client.NewSessionFromTokens(oldAccessToken, oldRefreshToken, 0)
	_, err = stale.Me(t.Context())
	require.True(t, accountsdk.IsUnauthorized(err), "pre-reset refresh token should be rejected, got: %v", err)
}

// TestForgetPasswordUnknownEmail verifies a reset request for an unknown
// address is rejected.
func TestForgetPasswordUnknownEmail(t *testing.T) {
	baseURL, _, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)

	err := client.ForgetPassword(t.Context(), "nobody@example.com")
	require.True(t, accountsdk.IsUnauthorized(err), "unknown email should be rejected, got: %v", err)
}
