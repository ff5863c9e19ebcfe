package config

import (
	"fmt"
	"strings"
)

// Error reports a required setting that is missing or malformed.
type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Key, e.Reason)
}

func missing(key string) *Error {
	return &Error{Key: key, Reason: "environment variable is not set"}
}

// Hint returns an example .env file listing every recognised key.
func Hint() string {
	lines := []string{
		KeyClientID + "=your_client_id",
		KeyClientSecret + "=your_client_secret",
		KeyChannelNames + "=streamer1,streamer2,streamer3",
		KeyPollInterval + "=60  # optional, defaults to 60 seconds",
	}
	return strings.Join(lines, "\n")
}
