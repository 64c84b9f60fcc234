package accounts_test

import (
	"testing"

	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// TestProfileUpdate verifies partial profile updates stick.
func TestProfileUpdate(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)
	registerAndVerify(t, client, container, testEmail, testMobile)

	session, err := client.Login(t.Context(), testEmail, testPassword)
	require.NoError(t, err)

	updated, err := session.UpdateMe(t.Context(), accountsdk.UpdateProfileRequest{
		Gender: strPtr("Female"),
		About:  strPtr("Hello from the e2e suite"),
	})
	require.NoError(t, err)
	require.Equal(t, "Female", updated.Gender)
	require.Equal(t, "Hello from the e2e suite", updated.About)
	require.Equal(t, testFullName, updated.FullName, "unset fields should be preserved")

	profile, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Female", profile.Gender)
}

// TestProfileListExcludesCaller verifies the directory hides the caller and
// unverified accounts.
func TestProfileListExcludesCaller(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)
	registerAndVerify(t, client, container, testEmail, testMobile)
	registerAndVerify(t, client, container, "second@example.com", "0498765432")

	// Unverified accounts never show up in the directory.
	_, err := client.Register(t.Context(), accountsdk.RegisterRequest{
		FullName:     "Never Verified",
		Email:        "pending@example.com",
		MobileNumber: "0411111111",
		Password:     testPassword,
	})
	require.NoError(t, err)

	session, err := client.Login(t.Context(), testEmail, testPassword)
	require.NoError(t, err)

	profiles, err := session.ListProfiles(t.Context())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "second@example.com", profiles[0].Email)
}

// TestDeleteAccount verifies deletion kills the account and its session.
func TestDeleteAccount(t *testing.T) {
	baseURL, container, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)
	registerAndVerify(t, client, container, testEmail, testMobile)

	session, err := client.Login(t.Context(), testEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, session.DeleteAccount(t.Context()))

	_, err = client.Login(t.Context(), testEmail, testPassword)
	require.True(t, accountsdk.IsUnauthorized(err), "deleted account should not login, got: %v", err)
}

// TestMeRequiresAuth verifies the profile endpoints reject anonymous calls.
func TestMeRequiresAuth(t *testing.T) {
	baseURL, _, cleanup := setupAccountsContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)

	anon := client.NewSessionFromTokens("not-a-token", "also-not-a-token", 3600)
	_, err := anon.Me(t.Context())
	require.True(t, accountsdk.IsUnauthorized(err), "garbage access token should be unauthorized, got: %v", err)
}
