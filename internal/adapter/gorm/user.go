package gorm

import (
	"time"

	"github.com/bornholm/taskhub/internal/core/model"
)

type User struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	TelegramID int64 `gorm:"uniqueIndex"`

	FullName string
	Role     string
}

func fromUser(u *model.User) *User {
	return &User{
		ID:         string(u.ID),
		TelegramID: u.TelegramID,
		FullName:   u.FullName,
		Role:       string(u.Role),
	}
}

func toUser(u *User) *model.User {
	return &model.User{
		ID:         model.UserID(u.ID),
		TelegramID: u.TelegramID,
		FullName:   u.FullName,
		Role:       model.Role(u.Role),
	}
}
