package twitch

import (
	"log"
	"net/http"
)

// Authenticate exchanges the client credentials for an app access token.
// The token is kept for the lifetime of the client; it is never refreshed.
func (c *Client) Authenticate() (string, error) {
	resp, err := c.helix.RequestAppAccessToken(nil)
	if err != nil {
		log.Printf("AUTH: request error - %v", err)
		return "", &AuthError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("AUTH: status=%d body=%s", resp.StatusCode, errorMessage(resp.ResponseCommon))
		return "", &AuthError{StatusCode: resp.StatusCode, Message: errorMessage(resp.ResponseCommon)}
	}

	token := resp.Data.AccessToken
	if token == "" {
		return "", &AuthError{StatusCode: resp.StatusCode, Message: "response did not contain an access token"}
	}

	c.helix.SetAppAccessToken(token)

	log.Printf("AUTH: app access token issued, expires in %ds", resp.Data.ExpiresIn)
	return token, nil
}
