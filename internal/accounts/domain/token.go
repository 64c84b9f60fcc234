package domain

// TokenPair is what login and refresh return: the short-lived access token
// and the refresh token that supersedes any previously issued one.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // access token lifetime in seconds
}
