package client

import (
	"context"

	"github.com/bornholm/taskhub/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) ListAnnouncements(ctx context.Context) ([]api.AnnouncementHeader, error) {
	var announcements []api.AnnouncementHeader
	if err := c.jsonRequest(ctx, "GET", "/announcements", nil, &announcements); err != nil {
		return nil, errors.WithStack(err)
	}

	return announcements, nil
}

func (c *Client) PublishAnnouncement(ctx context.Context, content string) error {
	if err := c.jsonRequest(ctx, "POST", "/announcements", api.CreateAnnouncementRequest{Content: content}, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
