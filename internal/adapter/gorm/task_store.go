package gorm

import (
	"context"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateTask implements port.TaskStore.
func (s *Store) CreateTask(ctx context.Context, task *model.Task) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(fromTask(task)).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// GetTaskByID implements port.TaskStore.
func (s *Store) GetTaskByID(ctx context.Context, taskID model.TaskID) (*model.Task, error) {
	var task Task

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&task, "id = ?", string(taskID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return toTask(&task), nil
}

// SaveTask implements port.TaskStore.
func (s *Store) SaveTask(ctx context.Context, task *model.Task) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(fromTask(task)).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// QueryTasks implements port.TaskStore. Tasks are ordered by deadline
// ascending, tasks without a deadline last.
func (s *Store) QueryTasks(ctx context.Context, opts port.QueryTasksOptions) ([]*model.Task, error) {
	var tasks []*Task

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Model(&Task{})

		if opts.AssigneeID != nil {
			query = query.Where("assignee_id = ?", string(*opts.AssigneeID))
		}

		query = query.Order("deadline IS NULL").Order("deadline ASC")

		if err := query.Find(&tasks).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, toTask(t))
	}

	return result, nil
}
