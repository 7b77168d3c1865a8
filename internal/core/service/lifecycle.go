package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/pkg/errors"
)

// Lifecycle is the task lifecycle engine: it evaluates who may move a task
// between statuses and applies the mutation, dispatching best-effort
// notifications on state changes.
type Lifecycle struct {
	store    port.Store
	notifier port.Notifier
}

func NewLifecycle(store port.Store, notifier port.Notifier) *Lifecycle {
	return &Lifecycle{
		store:    store,
		notifier: notifier,
	}
}

type CreateTaskParams struct {
	Title       string
	Description string
	AssigneeID  model.UserID
	Deadline    *time.Time
}

// CreateTask creates a new task. Only admins and the owner may create
// tasks; the assignee is notified.
func (l *Lifecycle) CreateTask(ctx context.Context, actor *model.User, params CreateTaskParams) (*model.Task, error) {
	if !actor.Role.CanManageTasks() {
		return nil, errors.WithStack(port.ErrForbidden)
	}

	assignee, err := l.store.GetUserByID(ctx, params.AssigneeID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	task := &model.Task{
		ID:          model.NewTaskID(),
		Title:       params.Title,
		Description: params.Description,
		Status:      model.StatusTodo,
		CreatorID:   actor.ID,
		AssigneeID:  assignee.ID,
		Deadline:    params.Deadline,
		CreatedAt:   time.Now().UTC(),
	}

	if err := l.store.CreateTask(ctx, task); err != nil {
		return nil, errors.WithStack(err)
	}

	l.notifier.Notify(ctx, assignee.TelegramID, fmt.Sprintf("📝 Новая задача: %s", task.Title))

	return task, nil
}

// UpdateTask applies a partial update to a task on behalf of the given
// actor. The rules are evaluated in priority order against the task's
// current persisted status:
//
//  1. The assignee raises a dispute (unless the task is locked).
//  2. The owner resolves a dispute; resolving to anything but done locks
//     the task against future disputes.
//  3. A worker updates the status of their own task; other fields in the
//     patch are ignored.
//  4. An admin or the owner applies the full patch, dispute reason
//     excepted.
//
// No mutation is persisted when a rule rejects the request.
func (l *Lifecycle) UpdateTask(ctx context.Context, actor *model.User, taskID model.TaskID, patch model.TaskPatch) (*model.Task, error) {
	task, err := l.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	creator, err := l.store.GetUserByID(ctx, task.CreatorID)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return nil, errors.WithStack(err)
	}

	assignee, err := l.store.GetUserByID(ctx, task.AssigneeID)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return nil, errors.WithStack(err)
	}

	var notify func()

	switch {
	case patch.Status != nil && *patch.Status == model.StatusDisputed:
		if task.AssigneeID != actor.ID {
			return nil, errors.WithStack(port.ErrForbidden)
		}

		if task.IsLocked {
			return nil, errors.WithStack(port.ErrInvalidState)
		}

		task.Status = model.StatusDisputed
		if patch.DisputeReason != nil {
			task.DisputeReason = *patch.DisputeReason
		}

		if creator != nil {
			reason := task.DisputeReason
			notify = func() {
				l.notifier.Notify(ctx, creator.TelegramID, fmt.Sprintf("⚠️ Задача оспорена: %s\nПричина: %s", task.Title, reason))
			}
		}

	case task.Status == model.StatusDisputed && patch.Status != nil:
		if actor.Role != model.RoleOwner {
			return nil, errors.WithStack(port.ErrForbidden)
		}

		task.Status = *patch.Status
		task.DisputeReason = ""
		if *patch.Status != model.StatusDone {
			task.IsLocked = true
		}

		if assignee != nil {
			status := task.Status
			notify = func() {
				l.notifier.Notify(ctx, assignee.TelegramID, fmt.Sprintf("🔒 Решение по спору: %s\nСтатус: %s", task.Title, status))
			}
		}

	case actor.Role == model.RoleWorker:
		if task.AssigneeID != actor.ID {
			return nil, errors.WithStack(port.ErrForbidden)
		}

		// Only the status is honored; any other field in the patch is
		// ignored so that clients sending full objects keep working.
		if patch.Status != nil {
			task.Status = *patch.Status

			if *patch.Status == model.StatusDone && creator != nil {
				notify = func() {
					l.notifier.Notify(ctx, creator.TelegramID, fmt.Sprintf("✅ Задача выполнена: %s\nПроверьте выполнение!", task.Title))
				}
			}
		}

	default:
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Deadline != nil {
			task.Deadline = patch.Deadline
		}
	}

	if err := l.store.SaveTask(ctx, task); err != nil {
		return nil, errors.WithStack(err)
	}

	if notify != nil {
		notify()
	}

	return task, nil
}

// TaskView is a task as seen by a given user, with the assignee name
// resolved and the dispute reason redacted for workers the task does not
// belong to.
type TaskView struct {
	Task *model.Task

	AssigneeName  string
	IsMine        bool
	DisputeReason *string
}

// QueryTasks lists tasks visible to the actor, ordered by deadline.
// Workers only ever see their own assignments, regardless of mineOnly.
func (l *Lifecycle) QueryTasks(ctx context.Context, actor *model.User, mineOnly bool) ([]*TaskView, error) {
	opts := port.QueryTasksOptions{}
	if actor.Role == model.RoleWorker || mineOnly {
		opts.AssigneeID = &actor.ID
	}

	tasks, err := l.store.QueryTasks(ctx, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	views := make([]*TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := &TaskView{
			Task:         t,
			AssigneeName: "Unknown",
			IsMine:       t.AssigneeID == actor.ID,
		}

		assignee, err := l.store.GetUserByID(ctx, t.AssigneeID)
		if err != nil && !errors.Is(err, port.ErrNotFound) {
			return nil, errors.WithStack(err)
		}
		if assignee != nil {
			view.AssigneeName = assignee.FullName
		}

		if actor.Role != model.RoleWorker || view.IsMine {
			reason := t.DisputeReason
			view.DisputeReason = &reason
		}

		views = append(views, view)
	}

	return views, nil
}
