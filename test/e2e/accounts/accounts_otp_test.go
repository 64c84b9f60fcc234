package accounts_test

import (
	"net/http"
	"testing"

	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestVerifyOTPWrongCode verifies a wrong code is rejected and the correct
// code still works afterwards.
func TestVerifyOTPWrongCode(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)

	data, err := client.Register(t.Context(), accountsdk.RegisterRequest{
		FullName:     testFullName,
		Email:        testEmail,
		MobileNumber: testMobile,
		Password:     testPassword,
	})
	require.NoError(t, err)

	otp := latestOTPFromLogs(t, container, testEmail)

	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	err = client.VerifyOTP(t.Context(), data.ChallengeToken, wrong)
	require.True(t, accountsdk.IsStatus(err, http.StatusBadRequest), "wrong code should be rejected, got: %v", err)

	require.NoError(t, client.VerifyOTP(t.Context(), data.ChallengeToken, otp), "correct code should still verify")
}

// TestResendOTPReplacesCode verifies resend invalidates the previous code and
// the new one verifies.
func TestResendOTPReplacesCode(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)

	data, err := client.Register(t.Context(), accountsdk.RegisterRequest{
		FullName:     testFullName,
		Email:        testEmail,
		MobileNumber: testMobile,
		Password:     testPassword,
	})
	require.NoError(t, err)

	first := latestOTPFromLogs(t, container, testEmail)

	require.NoError(t, client.ResendOTP(t.Context(), data.ChallengeToken))
	second := otpAfter(t, container, testEmail, first)

	err = client.VerifyOTP(t.Context(), data.ChallengeToken, first)
	require.True(t, accountsdk.IsStatus(err, http.StatusBadRequest), "stale code should be rejected, got: %v", err)

	require.NoError(t, client.VerifyOTP(t.Context(), data.ChallengeToken, second))
}

// TestVerifyOTPRequiresChallengeToken verifies the endpoint is gated on the
// challenge token, not just the code.
func TestVerifyOTPRequiresChallengeToken(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), accountsdk.RegisterRequest{
		FullName:     testFullName,
		Email:        testEmail,
		MobileNumber: testMobile,
		Password:     testPassword,
	})
	require.NoError(t, err)

	otp := latestOTPFromLogs(t, container, testEmail)

	err = client.VerifyOTP(t.Context(), "not-a-token", otp)
	require.True(t, accountsdk.IsUnauthorized(err), "garbage challenge token should be unauthorized, got: %v", err)
}

// TestResendOTPAfterVerification verifies a verified account cannot request
// more codes.
func TestResendOTPAfterVerification(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)
	data := registerAndVerify(t, client, container, testEmail, testMobile)

	err := client.ResendOTP(t.Context(), data.ChallengeToken)
	require.True(t, accountsdk.IsStatus(err, http.StatusBadRequest), "resend after verification should fail, got: %v", err)
}
