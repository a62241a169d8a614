package apiclient

import (
	"context"
	"net/http"

	"github.com/trezcool/lessonhub/core/session"
)

var _ session.Backend = (*Client)(nil)

// Me validates a session identifier against the identity endpoint.
func (c *Client) Me(ctx context.Context, token string) (session.User, error) {
	var usr session.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &usr); err != nil {
		return session.User{}, err
	}
	return usr, nil
}

// ExchangeProfile trades the one-time handoff identifier for a durable
// server-side session.
func (c *Client) ExchangeProfile(ctx context.Context, handoffID string) error {
	in := map[string]string{"session_id": handoffID}
	return c.do(ctx, http.MethodPost, "/api/auth/profile", "", in, nil)
}
