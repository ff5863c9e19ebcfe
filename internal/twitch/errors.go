package twitch

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nicklaw5/helix/v2"
)

// AuthError is returned when the token exchange does not succeed.
// StatusCode is zero when no response was received.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to get OAuth token: %v", e.Err)
	}
	return fmt.Sprintf("failed to get OAuth token: %d %s", e.StatusCode, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError is returned when the streams request does not succeed.
// StatusCode is zero when no response was received.
type FetchError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API request failed: %v", e.Err)
	}
	return fmt.Sprintf("API request failed: %d %s", e.StatusCode, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether Helix rejected the token, which usually means
// it expired and the monitor has to be restarted.
func (e *FetchError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func errorMessage(resp helix.ResponseCommon) string {
	msg := strings.TrimSpace(resp.ErrorMessage)
	if msg == "" {
		msg = strings.TrimSpace(resp.Error)
	}
	if len(msg) > 500 {
		msg = msg[:500] + "..."
	}
	if msg == "" {
		msg = "<empty body>"
	}
	return msg
}
