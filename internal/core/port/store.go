package port

import (
	"context"

	"github.com/bornholm/taskhub/internal/core/model"
)

type UserStore interface {
	// FindUserByTelegramID finds a user by its Telegram identity, or
	// returns ErrNotFound
	FindUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)

	// GetUserByID finds a user by its ID, or returns ErrNotFound
	GetUserByID(ctx context.Context, userID model.UserID) (*model.User, error)

	// SaveUser upserts a user in the store
	SaveUser(ctx context.Context, user *model.User) error

	// QueryUsers returns all known users
	QueryUsers(ctx context.Context) ([]*model.User, error)
}

type QueryTasksOptions struct {
	// AssigneeID restricts the result to tasks assigned to the given user
	AssigneeID *model.UserID
}

type TaskStore interface {
	// CreateTask persists a new task
	CreateTask(ctx context.Context, task *model.Task) error

	// GetTaskByID finds a task by its ID, or returns ErrNotFound
	GetTaskByID(ctx context.Context, taskID model.TaskID) (*model.Task, error)

	// SaveTask persists the given task's current field set
	SaveTask(ctx context.Context, task *model.Task) error

	// QueryTasks returns tasks ordered by deadline ascending, tasks
	// without a deadline last
	QueryTasks(ctx context.Context, opts QueryTasksOptions) ([]*model.Task, error)
}

type AnnouncementStore interface {
	// CreateAnnouncement persists a new announcement
	CreateAnnouncement(ctx context.Context, announcement *model.Announcement) error

	// QueryAnnouncements returns at most limit announcements, newest first
	QueryAnnouncements(ctx context.Context, limit int) ([]*model.Announcement, error)
}

type Store interface {
	UserStore
	TaskStore
	AnnouncementStore
}
