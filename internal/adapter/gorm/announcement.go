package gorm

import (
	"time"

	"github.com/bornholm/taskhub/internal/core/model"
)

type Announcement struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time `gorm:"index"`

	Content    string
	AuthorName string
}

func fromAnnouncement(a *model.Announcement) *Announcement {
	return &Announcement{
		ID:         string(a.ID),
		CreatedAt:  a.CreatedAt,
		Content:    a.Content,
		AuthorName: a.AuthorName,
	}
}

func toAnnouncement(a *Announcement) *model.Announcement {
	return &model.Announcement{
		ID:         model.AnnouncementID(a.ID),
		Content:    a.Content,
		AuthorName: a.AuthorName,
		CreatedAt:  a.CreatedAt,
	}
}
