package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/pkg/errors"
)

// Store is an in-memory port.Store, mostly useful for tests.
type Store struct {
	mutex sync.RWMutex

	users         map[model.UserID]*model.User
	tasks         map[model.TaskID]*model.Task
	announcements []*model.Announcement
}

func NewStore() *Store {
	return &Store{
		users: map[model.UserID]*model.User{},
		tasks: map[model.TaskID]*model.Task{},
	}
}

var _ port.Store = &Store{}

// FindUserByTelegramID implements port.UserStore.
func (s *Store) FindUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if u.TelegramID == telegramID {
			copied := *u
			return &copied, nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

// GetUserByID implements port.UserStore.
func (s *Store) GetUserByID(ctx context.Context, userID model.UserID) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	copied := *user
	return &copied, nil
}

// SaveUser implements port.UserStore.
func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *user
	s.users[user.ID] = &copied

	return nil
}

// QueryUsers implements port.UserStore.
func (s *Store) QueryUsers(ctx context.Context) ([]*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		users = append(users, &copied)
	}

	slices.SortFunc(users, func(u1, u2 *model.User) int {
		return strings.Compare(u1.FullName, u2.FullName)
	})

	return users, nil
}

// CreateTask implements port.TaskStore.
func (s *Store) CreateTask(ctx context.Context, task *model.Task) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *task
	s.tasks[task.ID] = &copied

	return nil
}

// GetTaskByID implements port.TaskStore.
func (s *Store) GetTaskByID(ctx context.Context, taskID model.TaskID) (*model.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	copied := *task
	return &copied, nil
}

// SaveTask implements port.TaskStore.
func (s *Store) SaveTask(ctx context.Context, task *model.Task) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *task
	s.tasks[task.ID] = &copied

	return nil
}

// QueryTasks implements port.TaskStore. Ordering matches the gorm store:
// deadline ascending, tasks without a deadline last.
func (s *Store) QueryTasks(ctx context.Context, opts port.QueryTasksOptions) ([]*model.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tasks := make([]*model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if opts.AssigneeID != nil && t.AssigneeID != *opts.AssigneeID {
			continue
		}

		copied := *t
		tasks = append(tasks, &copied)
	}

	slices.SortFunc(tasks, func(t1, t2 *model.Task) int {
		switch {
		case t1.Deadline == nil && t2.Deadline == nil:
			return t1.CreatedAt.Compare(t2.CreatedAt)
		case t1.Deadline == nil:
			return 1
		case t2.Deadline == nil:
			return -1
		default:
			return t1.Deadline.Compare(*t2.Deadline)
		}
	})

	return tasks, nil
}

// CreateAnnouncement implements port.AnnouncementStore.
func (s *Store) CreateAnnouncement(ctx context.Context, announcement *model.Announcement) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *announcement
	s.announcements = append(s.announcements, &copied)

	return nil
}

// QueryAnnouncements implements port.AnnouncementStore.
func (s *Store) QueryAnnouncements(ctx context.Context, limit int) ([]*model.Announcement, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	announcements := make([]*model.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		copied := *a
		announcements = append(announcements, &copied)
	}

	slices.SortFunc(announcements, func(a1, a2 *model.Announcement) int {
		return a2.CreatedAt.Compare(a1.CreatedAt)
	})

	if len(announcements) > limit {
		announcements = announcements[:limit]
	}

	return announcements, nil
}
