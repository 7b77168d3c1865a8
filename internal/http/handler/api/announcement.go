package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bornholm/taskhub/internal/core/model"
	httpCtx "github.com/bornholm/taskhub/internal/http/context"
)

type AnnouncementHeader struct {
	ID         model.AnnouncementID `json:"id"`
	Content    string               `json:"content"`
	AuthorName string               `json:"author_name"`
	CreatedAt  time.Time            `json:"created_at"`
}

func (h *Handler) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	announcements, err := h.announcer.Latest(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	headers := make([]AnnouncementHeader, 0, len(announcements))
	for _, a := range announcements {
		headers = append(headers, AnnouncementHeader{
			ID:         a.ID,
			Content:    a.Content,
			AuthorName: a.AuthorName,
			CreatedAt:  a.CreatedAt,
		})
	}

	respondJSON(w, r, headers)
}

type CreateAnnouncementRequest struct {
	Content string `json:"content"`
}

func (h *Handler) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := httpCtx.User(ctx)

	var req CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := h.announcer.Publish(ctx, actor, req.Content); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, StatusResponse{Status: "ok"})
}
