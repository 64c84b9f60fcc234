package accountsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the typed form of an unsuccessful response envelope. The SDK
// returns it whenever the service answers with a non-2xx status.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`

	// Message is the human-readable message from the response envelope.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("accounts api: %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is, or wraps, an APIError with the given
// status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsRateLimited reports whether err is a 429 response.
func IsRateLimited(err error) bool { return IsStatus(err, http.StatusTooManyRequests) }

// parseErrorResponse builds an APIError from a failed response body. Bodies
// that are not envelope-shaped still produce a usable error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		apiErr.Message = env.Message
	}
	return apiErr
}
