package client

import (
	"context"
	"fmt"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) ListUsers(ctx context.Context) ([]api.UserHeader, error) {
	var users []api.UserHeader
	if err := c.jsonRequest(ctx, "GET", "/users", nil, &users); err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

func (c *Client) SetUserRole(ctx context.Context, userID model.UserID, role model.Role) error {
	endpoint := fmt.Sprintf("/users/%s/role", userID)

	if err := c.jsonRequest(ctx, "PATCH", endpoint, api.SetUserRoleRequest{Role: role}, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
