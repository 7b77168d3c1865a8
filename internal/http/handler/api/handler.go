package api

import (
	"net/http"

	"github.com/bornholm/taskhub/internal/core/service"
	"github.com/bornholm/taskhub/internal/http/middleware/initdata"
)

type Handler struct {
	directory *service.Directory
	lifecycle *service.Lifecycle
	announcer *service.Announcer
	botToken  string
	mux       *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(directory *service.Directory, lifecycle *service.Lifecycle, announcer *service.Announcer, botToken string) *Handler {
	h := &Handler{
		directory: directory,
		lifecycle: lifecycle,
		announcer: announcer,
		botToken:  botToken,
		mux:       &http.ServeMux{},
	}

	// The auth endpoint carries its token in the request body; everything
	// else authenticates through the initData header.
	authenticated := initdata.Middleware(directory, botToken)

	h.mux.Handle("POST /auth", http.HandlerFunc(h.handleAuth))

	h.mux.Handle("GET /users", authenticated(http.HandlerFunc(h.handleListUsers)))
	h.mux.Handle("PATCH /users/{userID}/role", authenticated(http.HandlerFunc(h.handleSetUserRole)))

	h.mux.Handle("GET /tasks", authenticated(http.HandlerFunc(h.handleListTasks)))
	h.mux.Handle("POST /tasks", authenticated(http.HandlerFunc(h.handleCreateTask)))
	h.mux.Handle("PATCH /tasks/{taskID}", authenticated(http.HandlerFunc(h.handleUpdateTask)))

	h.mux.Handle("GET /announcements", http.HandlerFunc(h.handleListAnnouncements))
	h.mux.Handle("POST /announcements", authenticated(http.HandlerFunc(h.handleCreateAnnouncement)))

	return h
}

var _ http.Handler = &Handler{}
