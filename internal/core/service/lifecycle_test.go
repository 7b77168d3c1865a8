package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bornholm/taskhub/internal/adapter/memory"
	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/pkg/errors"
)

type lifecycleEnv struct {
	store     *memory.Store
	notifier  *memory.Notifier
	lifecycle *Lifecycle

	owner  *model.User
	admin  *model.User
	worker *model.User
	other  *model.User
}

func newLifecycleEnv(t *testing.T) *lifecycleEnv {
	t.Helper()

	ctx := context.Background()

	store := memory.NewStore()
	notifier := memory.NewNotifier()

	env := &lifecycleEnv{
		store:     store,
		notifier:  notifier,
		lifecycle: NewLifecycle(store, notifier),
		owner:     &model.User{ID: model.NewUserID(), TelegramID: 1000, FullName: "The Owner", Role: model.RoleOwner},
		admin:     &model.User{ID: model.NewUserID(), TelegramID: 2000, FullName: "The Admin", Role: model.RoleAdmin},
		worker:    &model.User{ID: model.NewUserID(), TelegramID: 42, FullName: "Worker 42", Role: model.RoleWorker},
		other:     &model.User{ID: model.NewUserID(), TelegramID: 43, FullName: "Worker 43", Role: model.RoleWorker},
	}

	for _, u := range []*model.User{env.owner, env.admin, env.worker, env.other} {
		if err := store.SaveUser(ctx, u); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	return env
}

func (env *lifecycleEnv) createTask(t *testing.T, title string, assignee *model.User) *model.Task {
	t.Helper()

	task, err := env.lifecycle.CreateTask(context.Background(), env.admin, CreateTaskParams{
		Title:      title,
		AssigneeID: assignee.ID,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return task
}

func strPtr(s string) *string { return &s }

func statusPtr(s model.Status) *model.Status { return &s }

func TestCreateTaskForbiddenForWorkers(t *testing.T) {
	env := newLifecycleEnv(t)

	_, err := env.lifecycle.CreateTask(context.Background(), env.worker, CreateTaskParams{
		Title:      "T1",
		AssigneeID: env.other.ID,
	})
	if !errors.Is(err, port.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	env := newLifecycleEnv(t)

	env.createTask(t, "T1", env.worker)

	messages := env.notifier.Messages()
	if e, g := 1, len(messages); e != g {
		t.Fatalf("len(messages): expected %d, got %d", e, g)
	}

	if e, g := env.worker.TelegramID, messages[0].TelegramID; e != g {
		t.Errorf("messages[0].TelegramID: expected %d, got %d", e, g)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	env := newLifecycleEnv(t)

	_, err := env.lifecycle.UpdateTask(context.Background(), env.owner, model.TaskID("does-not-exist"), model.TaskPatch{
		Status: statusPtr(model.StatusDone),
	})
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWorkerUpdatesStatusOnly(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	task := env.createTask(t, "T1", env.worker)

	updated, err := env.lifecycle.UpdateTask(ctx, env.worker, task.ID, model.TaskPatch{
		Status:      statusPtr(model.StatusInProgress),
		Title:       strPtr("hijacked"),
		Description: strPtr("hijacked"),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.StatusInProgress, updated.Status; e != g {
		t.Errorf("updated.Status: expected '%s', got '%s'", e, g)
	}

	persisted, err := env.store.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "T1", persisted.Title; e != g {
		t.Errorf("persisted.Title: expected '%s', got '%s'", e, g)
	}

	if e, g := "", persisted.Description; e != g {
		t.Errorf("persisted.Description: expected '%s', got '%s'", e, g)
	}
}

func TestWorkerCannotUpdateOthersTask(t *testing.T) {
	env := newLifecycleEnv(t)

	task := env.createTask(t, "T1", env.worker)

	_, err := env.lifecycle.UpdateTask(context.Background(), env.other, task.ID, model.TaskPatch{
		Status: statusPtr(model.StatusDone),
	})
	if !errors.Is(err, port.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestWorkerDoneNotifiesCreator(t *testing.T) {
	env := newLifecycleEnv(t)

	task := env.createTask(t, "T1", env.worker)

	before := len(env.notifier.Messages())

	if _, err := env.lifecycle.UpdateTask(context.Background(), env.worker, task.ID, model.TaskPatch{
		Status: statusPtr(model.StatusDone),
	}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	messages := env.notifier.Messages()
	if e, g := before+1, len(messages); e != g {
		t.Fatalf("len(messages): expected %d, got %d", e, g)
	}

	last := messages[len(messages)-1]

	if e, g := env.admin.TelegramID, last.TelegramID; e != g {
		t.Errorf("last.TelegramID: expected %d, got %d", e, g)
	}
}

func TestDisputeByNonAssignee(t *testing.T) {
	env := newLifecycleEnv(t)

	task := env.createTask(t, "T1", env.worker)

	_, err := env.lifecycle.UpdateTask(context.Background(), env.other, task.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusDisputed),
		DisputeReason: strPtr("not mine anyway"),
	})
	if !errors.Is(err, port.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestDisputeLockedTask(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	task := env.createTask(t, "T1", env.worker)

	task.IsLocked = true
	if err := env.store.SaveTask(ctx, task); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	_, err := env.lifecycle.UpdateTask(ctx, env.worker, task.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusDisputed),
		DisputeReason: strPtr("blocked"),
	})
	if !errors.Is(err, port.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestResolveDisputeRequiresOwner(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	task := env.createTask(t, "T1", env.worker)

	if _, err := env.lifecycle.UpdateTask(ctx, env.worker, task.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusDisputed),
		DisputeReason: strPtr("blocked"),
	}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	_, err := env.lifecycle.UpdateTask(ctx, env.admin, task.ID, model.TaskPatch{
		Status: statusPtr(model.StatusInProgress),
	})
	if !errors.Is(err, port.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestResolveDisputeToDoneDoesNotLock(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	task := env.createTask(t, "T1", env.worker)

	if _, err := env.lifecycle.UpdateTask(ctx, env.worker, task.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusDisputed),
		DisputeReason: strPtr("blocked"),
	}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	resolved, err := env.lifecycle.UpdateTask(ctx, env.owner, task.ID, model.TaskPatch{
		Status: statusPtr(model.StatusDone),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if resolved.IsLocked {
		t.Errorf("resolved.IsLocked: expected false, got true")
	}

	if e, g := "", resolved.DisputeReason; e != g {
		t.Errorf("resolved.DisputeReason: expected '%s', got '%s'", e, g)
	}
}

func TestDisputeEndToEnd(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	task := env.createTask(t, "T1", env.worker)

	// The assignee raises a dispute, the creator is notified with the
	// reason
	disputed, err := env.lifecycle.UpdateTask(ctx, env.worker, task.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusDisputed),
		DisputeReason: strPtr("blocked"),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.StatusDisputed, disputed.Status; e != g {
		t.Errorf("disputed.Status: expected '%s', got '%s'", e, g)
	}

	messages := env.notifier.Messages()
	last := messages[len(messages)-1]

	if e, g := env.admin.TelegramID, last.TelegramID; e != g {
		t.Errorf("last.TelegramID: expected %d, got %d", e, g)
	}

	if !strings.Contains(last.Text, "blocked") {
		t.Errorf("last.Text should contain the dispute reason, got '%s'", last.Text)
	}

	// The owner rules against the assignee: reason cleared, task locked,
	// assignee notified
	resolved, err := env.lifecycle.UpdateTask(ctx, env.owner, task.ID, model.TaskPatch{
		Status: statusPtr(model.StatusInProgress),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.StatusInProgress, resolved.Status; e != g {
		t.Errorf("resolved.Status: expected '%s', got '%s'", e, g)
	}

	if e, g := "", resolved.DisputeReason; e != g {
		t.Errorf("resolved.DisputeReason: expected '%s', got '%s'", e, g)
	}

	if !resolved.IsLocked {
		t.Errorf("resolved.IsLocked: expected true, got false")
	}

	messages = env.notifier.Messages()
	last = messages[len(messages)-1]

	if e, g := env.worker.TelegramID, last.TelegramID; e != g {
		t.Errorf("last.TelegramID: expected %d, got %d", e, g)
	}

	// An adverse ruling cannot be re-disputed
	_, err = env.lifecycle.UpdateTask(ctx, env.worker, task.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusDisputed),
		DisputeReason: strPtr("still blocked"),
	})
	if !errors.Is(err, port.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestPrivilegedFullUpdate(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	task := env.createTask(t, "T1", env.worker)

	deadline := time.Now().Add(24 * time.Hour).UTC()

	updated, err := env.lifecycle.UpdateTask(ctx, env.admin, task.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusInProgress),
		Title:         strPtr("T1 revised"),
		Description:   strPtr("now with details"),
		Deadline:      &deadline,
		DisputeReason: strPtr("should be ignored"),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "T1 revised", updated.Title; e != g {
		t.Errorf("updated.Title: expected '%s', got '%s'", e, g)
	}

	if e, g := "now with details", updated.Description; e != g {
		t.Errorf("updated.Description: expected '%s', got '%s'", e, g)
	}

	if e, g := model.StatusInProgress, updated.Status; e != g {
		t.Errorf("updated.Status: expected '%s', got '%s'", e, g)
	}

	if updated.Deadline == nil || !updated.Deadline.Equal(deadline) {
		t.Errorf("updated.Deadline: expected '%s', got '%v'", deadline, updated.Deadline)
	}

	// The dispute reason is never writable through the privileged path
	if e, g := "", updated.DisputeReason; e != g {
		t.Errorf("updated.DisputeReason: expected '%s', got '%s'", e, g)
	}
}

func TestWorkerTaskVisibility(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	env.createTask(t, "mine-1", env.worker)
	env.createTask(t, "mine-2", env.worker)
	env.createTask(t, "other", env.other)

	views, err := env.lifecycle.QueryTasks(ctx, env.worker, false)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(views); e != g {
		t.Fatalf("len(views): expected %d, got %d", e, g)
	}

	for _, v := range views {
		if !v.IsMine {
			t.Errorf("view %s: expected IsMine=true", v.Task.Title)
		}
	}

	// Admins see everything, with the assignee name resolved
	views, err = env.lifecycle.QueryTasks(ctx, env.admin, false)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, len(views); e != g {
		t.Fatalf("len(views): expected %d, got %d", e, g)
	}

	if e, g := "Worker 42", views[0].AssigneeName; e != g {
		t.Errorf("views[0].AssigneeName: expected '%s', got '%s'", e, g)
	}
}

func TestDisputeReasonRedaction(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	mine := env.createTask(t, "mine", env.worker)
	env.createTask(t, "other", env.other)

	if _, err := env.lifecycle.UpdateTask(ctx, env.worker, mine.ID, model.TaskPatch{
		Status:        statusPtr(model.StatusDisputed),
		DisputeReason: strPtr("blocked"),
	}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// A worker never sees another worker's tasks, let alone their dispute
	// reasons
	views, err := env.lifecycle.QueryTasks(ctx, env.other, false)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(views); e != g {
		t.Fatalf("len(views): expected %d, got %d", e, g)
	}

	if e, g := "other", views[0].Task.Title; e != g {
		t.Errorf("views[0].Task.Title: expected '%s', got '%s'", e, g)
	}

	// Admins see the reason in clear
	views, err = env.lifecycle.QueryTasks(ctx, env.admin, false)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for _, v := range views {
		if v.Task.ID != mine.ID {
			continue
		}
		if v.DisputeReason == nil || *v.DisputeReason != "blocked" {
			t.Errorf("admin view: expected dispute reason 'blocked', got %v", v.DisputeReason)
		}
	}

	views, err = env.lifecycle.QueryTasks(ctx, env.worker, false)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(views); e != g {
		t.Fatalf("len(views): expected %d, got %d", e, g)
	}

	if views[0].DisputeReason == nil || *views[0].DisputeReason != "blocked" {
		t.Errorf("views[0].DisputeReason: expected 'blocked', got %v", views[0].DisputeReason)
	}
}
