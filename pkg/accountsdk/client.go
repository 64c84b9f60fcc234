// Package accountsdk is a Go client for the Parley accounts service. It
// mirrors the HTTP surface one-to-one: an SDKClient covers unauthenticated
// endpoints and mints Sessions, and a Session wraps the token pair for
// protected calls with automatic refresh.
package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Parley accounts service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates an accounts service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// postJSON performs an unauthenticated JSON POST.
func (c *SDKClient) postJSON(ctx context.Context, path string, in any, bearer string) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a response body into target, converting non-expected
// statuses into an *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Register creates a new account and returns the account id plus the
// challenge token used to verify the emailed OTP.
func (c *SDKClient) Register(ctx context.Context, in RegisterRequest) (RegisterData, error) {
	resp, err := c.postJSON(ctx, "/v1/accounts/register", in, "")
	if err != nil {
		return RegisterData{}, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return RegisterData{}, err
	}
	return out.Data, nil
}

// VerifyOTP submits the emailed code using the challenge token from Register.
func (c *SDKClient) VerifyOTP(ctx context.Context, challengeToken, otp string) error {
	resp, err := c.postJSON(ctx, "/v1/accounts/verify-otp", VerifyOTPRequest{OTP: otp}, challengeToken)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// ResendOTP requests a fresh code for an unverified account.
func (c *SDKClient) ResendOTP(ctx context.Context, challengeToken string) error {
	resp, err := c.postJSON(ctx, "/v1/accounts/resend-otp", nil, challengeToken)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Login authenticates and returns an authenticated Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.postJSON(ctx, "/v1/accounts/login", LoginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, out.Data.TokenData), nil
}

// ForgetPassword asks the service to email a password reset link.
func (c *SDKClient) ForgetPassword(ctx context.Context, email string) error {
	resp, err := c.postJSON(ctx, "/v1/accounts/forget-password", ForgetPasswordRequest{Email: email}, "")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// ResetPassword completes a reset-link flow with the token from the email.
func (c *SDKClient) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	resp, err := c.postJSON(ctx, "/v1/accounts/reset-password", ResetPasswordRequest{
		Token:           token,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	}, "")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// NewSessionFromTokens builds a Session from previously stored tokens. The
// session still auto-refreshes when the access token expires.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int64) *Session {
	return newSession(c, TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	})
}

// Livez calls the liveness probe.
func (c *SDKClient) Livez(ctx context.Context) (HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/livez"), nil)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return out, nil
}

// Readyz calls the readiness probe.
func (c *SDKClient) Readyz(ctx context.Context) (HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/readyz"), nil)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return out, nil
}
