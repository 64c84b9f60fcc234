package accountsdk

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterRequest is the self-service signup payload.
type RegisterRequest struct {
	FullName     string `json:"fullName" example:"Avery Quinn"`
	Email        string `json:"email" example:"avery@example.com"`
	MobileNumber string `json:"mobileNumber" example:"0412345678"`
	Password     string `json:"password" example:"Sup3r-Secret!"`
}

// RegisterData is returned after a successful registration. The challenge
// token authorizes only the verify-otp and resend-otp endpoints.
type RegisterData struct {
	AccountID      string `json:"accountId"`
	ChallengeToken string `json:"challengeToken,omitempty"`
}

type RegisterResponse struct {
	Envelope
	Data RegisterData `json:"data"`
}

// VerifyOTPRequest submits the emailed code.
type VerifyOTPRequest struct {
	OTP string `json:"otp" example:"482913"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" example:"avery@example.com"`
	Password string `json:"password" example:"Sup3r-Secret!"`
}

// TokenData carries an issued token pair. Servers may deliver the same
// tokens via http-only cookies; the body always includes them for
// non-browser clients.
type TokenData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type LoginResponse struct {
	Envelope
	Data LoginData `json:"data"`
}

// LoginData pairs the issued tokens with the signed-in profile.
type LoginData struct {
	TokenData
	Profile ProfileData `json:"profile"`
}

type TokenResponse struct {
	Envelope
	Data TokenData `json:"data"`
}

// RefreshRequest is optional in browsers, where the refresh token rides the
// cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// ChangePasswordRequest rotates the password of a signed-in account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgetPasswordRequest starts the emailed reset-link flow.
type ForgetPasswordRequest struct {
	Email string `json:"email" example:"avery@example.com"`
}

// ResetPasswordRequest completes the reset-link flow.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileData is the public projection of an account.
type ProfileData struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	IsVerified   bool   `json:"isVerified"`
	Gender       string `json:"gender,omitempty"`
	About        string `json:"about,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type ProfileResponse struct {
	Envelope
	Data ProfileData `json:"data"`
}

type ProfileListResponse struct {
	Envelope
	Data []ProfileData `json:"data"`
}

// UpdateProfileRequest patches the caller's profile. Absent fields are left
// untouched.
type UpdateProfileRequest struct {
	FullName     *string `json:"fullName,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	About        *string `json:"about,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// HealthChecks reports per-dependency status in readiness probes.
type HealthChecks struct {
	Database string `json:"database"`
	Mailer   string `json:"mailer,omitempty"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
