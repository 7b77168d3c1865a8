package gorm

import (
	"context"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateAnnouncement implements port.AnnouncementStore.
func (s *Store) CreateAnnouncement(ctx context.Context, announcement *model.Announcement) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(fromAnnouncement(announcement)).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// QueryAnnouncements implements port.AnnouncementStore.
func (s *Store) QueryAnnouncements(ctx context.Context, limit int) ([]*model.Announcement, error) {
	var announcements []*Announcement

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Order("created_at DESC").Limit(limit).Find(&announcements).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result := make([]*model.Announcement, 0, len(announcements))
	for _, a := range announcements {
		result = append(result, toAnnouncement(a))
	}

	return result, nil
}

var _ port.AnnouncementStore = &Store{}
