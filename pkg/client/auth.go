package client

import (
	"context"

	"github.com/bornholm/taskhub/internal/http/handler/api"
	"github.com/pkg/errors"
)

// Auth exchanges a signed initData payload for the matching user profile,
// creating it on first contact.
func (c *Client) Auth(ctx context.Context, initData string) (*api.AuthUser, error) {
	var res api.AuthResponse
	if err := c.jsonRequest(ctx, "POST", "/auth", api.AuthRequest{InitData: initData}, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res.User, nil
}
