package api

import (
	"encoding/json"
	"net/http"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/telegram"
)

type AuthRequest struct {
	InitData string `json:"initData"`
}

type AuthResponse struct {
	User AuthUser `json:"user"`
}

type AuthUser struct {
	ID         model.UserID `json:"id"`
	TelegramID int64        `json:"telegram_id"`
	FullName   string       `json:"full_name"`
	Role       model.Role   `json:"role"`
}

func (h *Handler) handleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	claim, err := telegram.ParseInitData(req.InitData, h.botToken)
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := h.directory.ResolveOrCreate(ctx, claim.ID, claim.FullName())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, AuthResponse{
		User: AuthUser{
			ID:         user.ID,
			TelegramID: user.TelegramID,
			FullName:   user.FullName,
			Role:       user.Role,
		},
	})
}
