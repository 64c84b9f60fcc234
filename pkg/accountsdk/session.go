package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Session represents an authenticated session with automatic token refresh.
// All Session methods refresh the access token when it nears expiry.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *SDKClient, tokens TokenData) *Session {
	return &Session{
		client:       client,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
		expiresAt:    expiryFrom(tokens.ExpiresIn),
	}
}

// expiryFrom converts an expires_in count into a refresh deadline, with a 30
// second buffer so refresh happens before actual expiry.
func expiryFrom(expiresIn int64) time.Time {
	return time.Now().Add(time.Duration(expiresIn)*time.Second - 30*time.Second)
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// getValidToken returns a valid access token, refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available")
	}

	resp, err := s.client.postJSON(ctx, "/v1/accounts/refresh", RefreshRequest{RefreshToken: s.refreshToken}, "")
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = out.Data.AccessToken
	s.refreshToken = out.Data.RefreshToken
	s.expiresAt = expiryFrom(out.Data.ExpiresIn)
	return s.accessToken, nil
}

// doAuthRequest performs an authenticated JSON request.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, in any) (*http.Response, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// Me fetches the caller's profile.
func (s *Session) Me(ctx context.Context) (ProfileData, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/me", nil)
	if err != nil {
		return ProfileData{}, err
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return ProfileData{}, err
	}
	return out.Data, nil
}

// UpdateMe patches the caller's profile and returns the updated projection.
func (s *Session) UpdateMe(ctx context.Context, in UpdateProfileRequest) (ProfileData, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/accounts/me", in)
	if err != nil {
		return ProfileData{}, err
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return ProfileData{}, err
	}
	return out.Data, nil
}

// ListProfiles returns every other verified member's profile.
func (s *Session) ListProfiles(ctx context.Context) ([]ProfileData, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/", nil)
	if err != nil {
		return nil, err
	}

	var out ProfileListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ChangePassword rotates the caller's password.
func (s *Session) ChangePassword(ctx context.Context, current, next, confirm string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/accounts/change-password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Logout revokes the session's refresh token server-side.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/accounts/logout", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// DeleteAccount removes the caller's account permanently.
func (s *Session) DeleteAccount(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/accounts/me", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
