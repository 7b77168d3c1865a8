package model

import (
	"github.com/rs/xid"
)

type UserID string

func NewUserID() UserID {
	return UserID(xid.New().String())
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleWorker:
		return true
	}

	return false
}

// CanManageTasks reports whether the role may create tasks and edit tasks
// assigned to other users.
func (r Role) CanManageTasks() bool {
	return r == RoleOwner || r == RoleAdmin
}

type User struct {
	ID UserID

	// TelegramID is the identity issued by the messaging platform. Exactly
	// one user exists per Telegram identity.
	TelegramID int64

	FullName string
	Role     Role
}
