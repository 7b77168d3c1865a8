package client

import (
	"context"
	"fmt"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/http/handler/api"
	"github.com/pkg/errors"
)

type ListTasksOptions struct {
	MineOnly bool
}

type ListTasksOptionFunc func(opts *ListTasksOptions)

func WithMineOnly() ListTasksOptionFunc {
	return func(opts *ListTasksOptions) {
		opts.MineOnly = true
	}
}

func NewListTasksOptions(funcs ...ListTasksOptionFunc) *ListTasksOptions {
	opts := &ListTasksOptions{}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func (c *Client) ListTasks(ctx context.Context, funcs ...ListTasksOptionFunc) ([]api.TaskHeader, error) {
	opts := NewListTasksOptions(funcs...)

	endpoint := "/tasks"
	if opts.MineOnly {
		endpoint += "?filter=mine"
	}

	var tasks []api.TaskHeader
	if err := c.jsonRequest(ctx, "GET", endpoint, nil, &tasks); err != nil {
		return nil, errors.WithStack(err)
	}

	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, req api.CreateTaskRequest) error {
	if err := c.jsonRequest(ctx, "POST", "/tasks", req, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) UpdateTask(ctx context.Context, taskID model.TaskID, patch model.TaskPatch) error {
	endpoint := fmt.Sprintf("/tasks/%s", taskID)

	if err := c.jsonRequest(ctx, "PATCH", endpoint, patch, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
