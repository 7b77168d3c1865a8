package gorm

import (
	"time"

	"github.com/bornholm/taskhub/internal/core/model"
)

type Task struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string
	Description string

	Status        string `gorm:"index"`
	DisputeReason string
	IsLocked      bool

	Creator   *User
	CreatorID string `gorm:"index"`

	Assignee   *User
	AssigneeID string `gorm:"index"`

	Deadline *time.Time
}

func fromTask(t *model.Task) *Task {
	return &Task{
		ID:            string(t.ID),
		CreatedAt:     t.CreatedAt,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		DisputeReason: t.DisputeReason,
		IsLocked:      t.IsLocked,
		CreatorID:     string(t.CreatorID),
		AssigneeID:    string(t.AssigneeID),
		Deadline:      t.Deadline,
	}
}

func toTask(t *Task) *model.Task {
	return &model.Task{
		ID:            model.TaskID(t.ID),
		Title:         t.Title,
		Description:   t.Description,
		Status:        model.Status(t.Status),
		DisputeReason: t.DisputeReason,
		IsLocked:      t.IsLocked,
		CreatorID:     model.UserID(t.CreatorID),
		AssigneeID:    model.UserID(t.AssigneeID),
		Deadline:      t.Deadline,
		CreatedAt:     t.CreatedAt,
	}
}
