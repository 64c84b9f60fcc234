package sqlite

import (
	"context"
	"time"

	"github.com/parleychat/parley/internal/accounts/domain"
	"github.com/parleychat/parley/internal/accounts/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, full_name, email, mobile_number, password_hash, is_verified,
	otp_hash, otp_expires_at, otp_attempt_count, otp_blocked_until, last_otp_sent_at,
	refresh_fingerprint, gender, about, profile_image, created_at, updated_at`

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			id, full_name, email, mobile_number, password_hash, is_verified,
			otp_hash, otp_expires_at, otp_attempt_count, otp_blocked_until, last_otp_sent_at,
			refresh_fingerprint, gender, about, profile_image
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FullName, a.Email, a.MobileNumber, a.PasswordHash, a.IsVerified,
		mapOptionalString(a.OTPHash), mapOptionalTime(a.OTPExpiresAt),
		a.OTPAttemptCount, mapOptionalTime(a.OTPBlockedUntil), mapOptionalTime(a.LastOTPSentAt),
		a.RefreshFingerprint, a.Gender, a.About, a.ProfileImage,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE accounts SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, passwordHash, id)
}

func (r *accountsRepo) SetOTPChallenge(ctx context.Context, id, otpHash string, expiresAt, sentAt time.Time) error {
	return r.exec(ctx, `
		UPDATE accounts SET
			otp_hash = ?,
			otp_expires_at = ?,
			otp_attempt_count = 0,
			last_otp_sent_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, otpHash, expiresAt, sentAt, id)
}

func (r *accountsRepo) ClearOTPChallenge(ctx context.Context, id string) error {
	return r.exec(ctx, `
		UPDATE accounts SET
			otp_hash = NULL,
			otp_expires_at = NULL,
			otp_attempt_count = 0,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
}

func (r *accountsRepo) IncrementOTPAttempts(ctx context.Context, id string) (int, error) {
	if err := r.exec(ctx, `
		UPDATE accounts SET
			otp_attempt_count = otp_attempt_count + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id); err != nil {
		return 0, err
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT otp_attempt_count FROM accounts WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return count, nil
}

func (r *accountsRepo) SetOTPLock(ctx context.Context, id string, until time.Time) error {
	return r.exec(ctx, `
		UPDATE accounts SET
			otp_blocked_until = ?,
			otp_attempt_count = 0,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, until, id)
}

func (r *accountsRepo) MarkVerified(ctx context.Context, id string) error {
	return r.exec(ctx, `
		UPDATE accounts SET is_verified = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
}

func (r *accountsRepo) UpdateRefreshFingerprint(ctx context.Context, id, fingerprint string) error {
	return r.exec(ctx, `
		UPDATE accounts SET refresh_fingerprint = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, fingerprint, id)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id string, patch store.ProfilePatch) error {
	return r.exec(ctx, `
		UPDATE accounts SET
			full_name = COALESCE(?, full_name),
			gender = COALESCE(?, gender),
			about = COALESCE(?, about),
			profile_image = COALESCE(?, profile_image),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		mapOptionalString(patch.FullName),
		mapOptionalString(patch.Gender),
		mapOptionalString(patch.About),
		mapOptionalString(patch.ProfileImage),
		id)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM accounts WHERE id = ?`, id)
}

func (r *accountsRepo) ClearExpiredOTPChallenges(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET
			otp_hash = NULL,
			otp_expires_at = NULL,
			otp_attempt_count = 0
		WHERE otp_expires_at IS NOT NULL AND otp_expires_at <= ?`, now)
	return err
}

func (r *accountsRepo) ClearExpiredOTPLocks(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET otp_blocked_until = NULL
		WHERE otp_blocked_until IS NOT NULL AND otp_blocked_until <= ?`, now)
	return err
}

// exec runs a mutation that must target an existing account; zero rows
// affected maps to ErrNotFound.
func (r *accountsRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
