package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/service"
	httpCtx "github.com/bornholm/taskhub/internal/http/context"
)

type TaskHeader struct {
	ID           model.TaskID `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       model.Status `json:"status"`
	Deadline     *time.Time   `json:"deadline"`
	AssigneeName string       `json:"assignee_name"`
	IsMine       bool         `json:"is_mine"`
	IsLocked     bool         `json:"is_locked"`

	// DisputeReason is null for workers looking at tasks that are not
	// their own.
	DisputeReason *string `json:"dispute_reason"`
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := httpCtx.User(ctx)

	mineOnly := r.URL.Query().Get("filter") == "mine"

	views, err := h.lifecycle.QueryTasks(ctx, actor, mineOnly)
	if err != nil {
		handleError(w, r, err)
		return
	}

	headers := make([]TaskHeader, 0, len(views))
	for _, v := range views {
		headers = append(headers, TaskHeader{
			ID:            v.Task.ID,
			Title:         v.Task.Title,
			Description:   v.Task.Description,
			Status:        v.Task.Status,
			Deadline:      v.Task.Deadline,
			AssigneeName:  v.AssigneeName,
			IsMine:        v.IsMine,
			IsLocked:      v.Task.IsLocked,
			DisputeReason: v.DisputeReason,
		})
	}

	respondJSON(w, r, headers)
}

type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssigneeID  model.UserID `json:"assignee_id"`
	Deadline    *time.Time   `json:"deadline"`
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := httpCtx.User(ctx)

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	_, err := h.lifecycle.CreateTask(ctx, actor, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Deadline:    req.Deadline,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, StatusResponse{Status: "ok"})
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := httpCtx.User(ctx)

	var patch model.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if patch.Status != nil && !patch.Status.IsValid() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	taskID := model.TaskID(r.PathValue("taskID"))

	if _, err := h.lifecycle.UpdateTask(ctx, actor, taskID, patch); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, StatusResponse{Status: "updated"})
}
