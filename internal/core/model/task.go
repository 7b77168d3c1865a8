package model

import (
	"time"

	"github.com/rs/xid"
)

type TaskID string

func NewTaskID() TaskID {
	return TaskID(xid.New().String())
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusDisputed   Status = "disputed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusDisputed:
		return true
	}

	return false
}

type Task struct {
	ID TaskID

	Title       string
	Description string

	Status Status

	// DisputeReason is set while the task is disputed and cleared when the
	// owner rules on the dispute.
	DisputeReason string

	// IsLocked is set when an owner resolves a dispute to anything but
	// done. A locked task can never be disputed again.
	IsLocked bool

	CreatorID  UserID
	AssigneeID UserID

	Deadline  *time.Time
	CreatedAt time.Time
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Status        *Status    `json:"status"`
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Deadline      *time.Time `json:"deadline"`
	DisputeReason *string    `json:"dispute_reason"`
}
