package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/parleychat/parley/internal/accounts/domain"
	"github.com/parleychat/parley/internal/accounts/store"
	"github.com/parleychat/parley/pkg/slogx"
)

// ProfileService exposes the public projection of accounts: reading and
// editing the caller's own profile, listing verified members and account
// deletion.
type ProfileService struct {
	store store.Store
}

func NewProfileService(st store.Store) *ProfileService {
	return &ProfileService{store: st}
}

func (s *ProfileService) Get(ctx context.Context, accountID string) (domain.Profile, error) {
	account, err := s.store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrTokenInvalid
		}
		return domain.Profile{}, fmt.Errorf("failed to load account: %w", err)
	}
	return domain.NewProfile(account), nil
}

// UpdateInput carries the editable profile fields. Nil pointers leave the
// stored value untouched.
type UpdateInput struct {
	FullName     *string
	Gender       *string
	About        *string
	ProfileImage *string
}

func (s *ProfileService) Update(ctx context.Context, accountID string, in UpdateInput) (domain.Profile, error) {
	if in.FullName != nil {
		if err := validateFullName(*in.FullName); err != nil {
			return domain.Profile{}, err
		}
	}
	if in.Gender != nil {
		if err := validateGender(*in.Gender); err != nil {
			return domain.Profile{}, err
		}
	}

	patch := store.ProfilePatch{
		FullName:     in.FullName,
		Gender:       in.Gender,
		About:        in.About,
		ProfileImage: in.ProfileImage,
	}

	var account domain.Account
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().UpdateProfile(ctx, accountID, patch); err != nil {
			return err
		}
		var err error
		account, err = tx.Accounts().GetAccountByID(ctx, accountID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrTokenInvalid
		}
		return domain.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	slogx.FromContext(ctx).Info("profile updated", "account_id", accountID)
	return domain.NewProfile(account), nil
}

// List returns profiles of all verified accounts except the caller's own.
func (s *ProfileService) List(ctx context.Context, exclude string) ([]domain.Profile, error) {
	accounts, err := s.store.Accounts().ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(accounts))
	for _, account := range accounts {
		if !account.IsVerified || account.ID == exclude {
			continue
		}
		profiles = append(profiles, domain.NewProfile(account))
	}
	return profiles, nil
}

// Delete removes the account entirely. Its tokens become useless because
// refresh lookups no longer resolve.
func (s *ProfileService) Delete(ctx context.Context, accountID string) error {
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().DeleteAccount(ctx, accountID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	slogx.FromContext(ctx).Info("account deleted", "account_id", accountID)
	return nil
}
