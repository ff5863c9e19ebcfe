package twitch

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"twitch-monitor/internal/config"

	"github.com/nicklaw5/helix/v2"
)

// MaxBatch is the number of logins Helix accepts in a single streams request.
const MaxBatch = 100

const requestTimeout = 15 * time.Second

// Client talks to the Helix API with an app access token obtained once.
type Client struct {
	helix *helix.Client
}

type Option func(*helix.Options)

// WithHTTPClient replaces the transport used for every request.
func WithHTTPClient(c helix.HTTPClient) Option {
	return func(o *helix.Options) {
		o.HTTPClient = c
	}
}

func New(cfg config.Twitch, opts ...Option) (*Client, error) {
	options := &helix.Options{
		ClientID:      cfg.ClientID,
		ClientSecret:  cfg.ClientSecret,
		HTTPClient:    &http.Client{Timeout: requestTimeout},
		RateLimitFunc: waitForRateLimit,
	}
	for _, opt := range opts {
		opt(options)
	}

	client, err := helix.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("helix: NewClient: %w", err)
	}

	return &Client{helix: client}, nil
}

// waitForRateLimit blocks until the rate limit window resets once the
// remaining request budget reported by the last response is exhausted.
func waitForRateLimit(lastResponse *helix.Response) error {
	if lastResponse == nil || lastResponse.GetRateLimitRemaining() > 0 {
		return nil
	}

	reset := int64(lastResponse.GetRateLimitReset())
	now := time.Now().Unix()
	if now < reset {
		wait := time.Duration(reset-now) * time.Second
		log.Printf("POLL: waiting on rate limit (%s)", wait)
		time.Sleep(wait)
	}
	return nil
}
