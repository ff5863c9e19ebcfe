package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// maxIntervalSeconds is the largest interval a time.Duration can hold.
const maxIntervalSeconds = math.MaxInt64 / int64(time.Second)

const (
	KeyClientID     = "CLIENT_ID"
	KeyClientSecret = "CLIENT_SECRET"
	KeyChannelNames = "CHANNEL_NAMES"
	KeyPollInterval = "POLL_INTERVAL_SECONDS"
)

// Older deployments used these names; they are read when the primary key is unset.
var legacyKeys = map[string]string{
	KeyClientID:     "TWITCH_CLIENT_ID",
	KeyClientSecret: "TWITCH_CLIENT_SECRET",
	KeyChannelNames: "TWITCH_STREAMER_NAMES",
	KeyPollInterval: "CHECK_INTERVAL",
}

// envLookup reads the process environment first and the key=value file at
// path second. A missing or unreadable file is treated as empty.
func envLookup(path string) func(string) string {
	file, err := godotenv.Read(path)
	if err != nil {
		file = map[string]string{}
	}

	return func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return file[key]
	}
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	cfg.Twitch.ClientID = strings.TrimSpace(lookup(getenv, KeyClientID))
	if cfg.Twitch.ClientID == "" {
		return missing(KeyClientID)
	}

	cfg.Twitch.ClientSecret = strings.TrimSpace(lookup(getenv, KeyClientSecret))
	if cfg.Twitch.ClientSecret == "" {
		return missing(KeyClientSecret)
	}

	cfg.Channels = ParseChannels(lookup(getenv, KeyChannelNames))
	if len(cfg.Channels) == 0 {
		return &Error{Key: KeyChannelNames, Reason: "is not set or empty"}
	}

	interval, err := parseInterval(lookup(getenv, KeyPollInterval))
	if err != nil {
		return err
	}
	cfg.PollInterval = interval

	return nil
}

func lookup(getenv func(string) string, key string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return getenv(legacyKeys[key])
}

// ParseChannels splits a comma-separated list, trimming whitespace and
// dropping empty entries. Names that differ only in case keep the first
// spelling seen.
func ParseChannels(raw string) []string {
	var channels []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		channels = append(channels, name)
	}

	return channels
}

func parseInterval(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultPollInterval, nil
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds <= 0 {
		return 0, &Error{Key: KeyPollInterval, Reason: "must be a positive whole number of seconds, got " + strconv.Quote(raw)}
	}
	if seconds > maxIntervalSeconds {
		return 0, &Error{Key: KeyPollInterval, Reason: fmt.Sprintf("must be at most %d seconds, got %s", maxIntervalSeconds, strconv.Quote(raw))}
	}

	return time.Duration(seconds) * time.Second, nil
}
