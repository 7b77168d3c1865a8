package model

import (
	"time"

	"github.com/rs/xid"
)

type AnnouncementID string

func NewAnnouncementID() AnnouncementID {
	return AnnouncementID(xid.New().String())
}

// Announcement is immutable once created. AuthorName is a snapshot of the
// author's display name at publication time.
type Announcement struct {
	ID AnnouncementID

	Content    string
	AuthorName string

	CreatedAt time.Time
}
