package service

import (
	"context"
	"testing"

	"github.com/parleychat/parley/internal/accounts/domain"
	"github.com/stretchr/testify/require"
)

func TestProfileGetAndUpdate(t *testing.T) {
	svc, st, mailer := newSessionEnv(t, DefaultOTPConfig())
	profiles := NewProfileService(st)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	require.NoError(t, svc.VerifyOTP(ctx, out.AccountID, mailer.lastOTP(t)))

	profile, err := profiles.Get(ctx, out.AccountID)
	require.NoError(t, err)
	require.Equal(t, "Avery Quinn", profile.FullName)
	require.Equal(t, "avery@example.com", profile.Email)
	require.True(t, profile.IsVerified)

	name := "Avery Q."
	gender := domain.GenderOther
	about := "hello there"
	updated, err := profiles.Update(ctx, out.AccountID, UpdateInput{
		FullName: &name,
		Gender:   &gender,
		About:    &about,
	})
	require.NoError(t, err)
	require.Equal(t, name, updated.FullName)
	require.Equal(t, gender, updated.Gender)
	require.Equal(t, about, updated.About)

	// Untouched fields keep their values on a partial update.
	image := "https://cdn.parley.example/avatars/avery.png"
	updated, err = profiles.Update(ctx, out.AccountID, UpdateInput{ProfileImage: &image})
	require.NoError(t, err)
	require.Equal(t, name, updated.FullName)
	require.Equal(t, image, updated.ProfileImage)
}

func TestProfileUpdateValidation(t *testing.T) {
	svc, st, _ := newSessionEnv(t, DefaultOTPConfig())
	profiles := NewProfileService(st)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")

	bad := "alien"
	_, err := profiles.Update(ctx, out.AccountID, UpdateInput{Gender: &bad})
	require.True(t, IsValidation(err))

	blank := " "
	_, err = profiles.Update(ctx, out.AccountID, UpdateInput{FullName: &blank})
	require.True(t, IsValidation(err))
}

func TestProfileListExcludesCallerAndUnverified(t *testing.T) {
	svc, st, mailer := newSessionEnv(t, DefaultOTPConfig())
	profiles := NewProfileService(st)
	ctx := context.Background()

	avery := register(t, svc, "avery@example.com")
	require.NoError(t, svc.VerifyOTP(ctx, avery.AccountID, mailer.lastOTP(t)))

	blair, err := svc.Register(ctx, RegisterInput{
		FullName:     "Blair Woods",
		Email:        "blair@example.com",
		MobileNumber: "0498765432",
		Password:     "Bl4ir-Secret!",
	})
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(ctx, blair.AccountID, mailer.lastOTP(t)))

	// Still unverified, must not be listed.
	_, err = svc.Register(ctx, RegisterInput{
		FullName:     "Casey Pending",
		Email:        "casey@example.com",
		MobileNumber: "0411111111",
		Password:     "C4sey-Secret!",
	})
	require.NoError(t, err)

	listed, err := profiles.List(ctx, avery.AccountID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "blair@example.com", listed[0].Email)
}

func TestProfileDelete(t *testing.T) {
	svc, st, mailer := newSessionEnv(t, DefaultOTPConfig())
	profiles := NewProfileService(st)
	ctx := context.Background()

	out := register(t, svc, "avery@example.com")
	refresh := verifyAndLogin(t, svc, mailer, out, "avery@example.com", "Sup3r-Secret!")

	require.NoError(t, profiles.Delete(ctx, out.AccountID))

	_, err := profiles.Get(ctx, out.AccountID)
	require.ErrorIs(t, err, ErrTokenInvalid)

	// Tokens die with the account.
	_, err = svc.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrTokenInvalid)

	require.ErrorIs(t, profiles.Delete(ctx, out.AccountID), ErrTokenInvalid)
}
