package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/pkg/errors"
)

// Only the most recent announcements are ever surfaced.
const announcementsLimit = 20

// Announcer publishes announcements and broadcasts them to every known
// user.
type Announcer struct {
	announcements port.AnnouncementStore
	notifier      port.Notifier
}

func NewAnnouncer(announcements port.AnnouncementStore, notifier port.Notifier) *Announcer {
	return &Announcer{
		announcements: announcements,
		notifier:      notifier,
	}
}

// Publish persists a new announcement and triggers a best-effort broadcast.
// Only admins and the owner may publish.
func (a *Announcer) Publish(ctx context.Context, actor *model.User, content string) (*model.Announcement, error) {
	if !actor.Role.CanManageTasks() {
		return nil, errors.WithStack(port.ErrForbidden)
	}

	announcement := &model.Announcement{
		ID:         model.NewAnnouncementID(),
		Content:    content,
		AuthorName: actor.FullName,
		CreatedAt:  time.Now().UTC(),
	}

	if err := a.announcements.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, errors.WithStack(err)
	}

	a.notifier.Broadcast(ctx, fmt.Sprintf("📢 Новое объявление:\n%s", content))

	return announcement, nil
}

func (a *Announcer) Latest(ctx context.Context) ([]*model.Announcement, error) {
	announcements, err := a.announcements.QueryAnnouncements(ctx, announcementsLimit)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return announcements, nil
}
