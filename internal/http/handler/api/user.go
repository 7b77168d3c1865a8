package api

import (
	"encoding/json"
	"net/http"

	"github.com/bornholm/taskhub/internal/core/model"
	httpCtx "github.com/bornholm/taskhub/internal/http/context"
)

type UserHeader struct {
	ID       model.UserID `json:"id"`
	FullName string       `json:"full_name"`
	Role     model.Role   `json:"role"`
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.directory.List(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	headers := make([]UserHeader, 0, len(users))
	for _, u := range users {
		headers = append(headers, UserHeader{
			ID:       u.ID,
			FullName: u.FullName,
			Role:     u.Role,
		})
	}

	respondJSON(w, r, headers)
}

type SetUserRoleRequest struct {
	Role model.Role `json:"role"`
}

func (h *Handler) handleSetUserRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := httpCtx.User(ctx)

	var req SetUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Role.IsValid() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	targetID := model.UserID(r.PathValue("userID"))

	if err := h.directory.SetRole(ctx, actor, targetID, req.Role); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, StatusResponse{Status: "ok"})
}
