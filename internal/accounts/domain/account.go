package domain

import "time"

// Gender values accepted on profile updates.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Account is the one record kept per identity. Secrets are stored hashed
// only; OTPHash/OTPExpiresAt are both set or both nil, never one of the two.
type Account struct {
	ID           string
	FullName     string
	Email        string // unique
	MobileNumber string // unique, 10 digits

	PasswordHash string // argon2 encoded, never plaintext
	IsVerified   bool   // false until the first successful OTP check

	// Outstanding OTP challenge, if any.
	OTPHash      *string
	OTPExpiresAt *time.Time

	// Brute-force containment.
	OTPAttemptCount int
	OTPBlockedUntil *time.Time

	// Resend cooldown marker.
	LastOTPSentAt *time.Time

	// SHA-256 fingerprint of the single currently-valid refresh token.
	// Empty when logged out.
	RefreshFingerprint string

	// Profile attributes, mutated only by the authenticated owner.
	Gender       string
	About        string
	ProfileImage string // URL provided by the upload service, persisted as-is

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveOTP reports whether an unexpired OTP challenge is outstanding.
func (a Account) HasActiveOTP(now time.Time) bool {
	return a.OTPHash != nil && a.OTPExpiresAt != nil && now.Before(*a.OTPExpiresAt)
}

// IsLocked reports whether OTP verification is suspended for the account.
func (a Account) IsLocked(now time.Time) bool {
	return a.OTPBlockedUntil != nil && now.Before(*a.OTPBlockedUntil)
}

// Profile is the caller-visible projection of an Account. No secret or
// bookkeeping fields ever leave the service.
type Profile struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	Gender       string    `json:"gender,omitempty"`
	About        string    `json:"about,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewProfile projects an account into its public view.
func NewProfile(a Account) Profile {
	return Profile{
		ID:           a.ID,
		FullName:     a.FullName,
		Email:        a.Email,
		MobileNumber: a.MobileNumber,
		Gender:       a.Gender,
		About:        a.About,
		ProfileImage: a.ProfileImage,
		IsVerified:   a.IsVerified,
		CreatedAt:    a.CreatedAt,
	}
}
