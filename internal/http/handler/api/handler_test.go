package api

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/bornholm/taskhub/internal/adapter/memory"
	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/service"
	"github.com/bornholm/taskhub/internal/http/middleware/initdata"
	"github.com/pkg/errors"
)

const (
	testBotToken        = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"
	testOwnerTelegramID = int64(1000)
)

type testEnv struct {
	handler  *Handler
	store    *memory.Store
	notifier *memory.Notifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	notifier := memory.NewNotifier()

	directory := service.NewDirectory(store, testOwnerTelegramID)
	lifecycle := service.NewLifecycle(store, notifier)
	announcer := service.NewAnnouncer(store, notifier)

	return &testEnv{
		handler:  NewHandler(directory, lifecycle, announcer, testBotToken),
		store:    store,
		notifier: notifier,
	}
}

func signedInitData(telegramID int64, firstName string) string {
	values := url.Values{}
	values.Set("auth_date", "1715000000")
	values.Set("user", fmt.Sprintf(`{"id":%d,"first_name":"%s"}`, telegramID, firstName))

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(testBotToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))

	return values.Encode()
}

func (env *testEnv) do(t *testing.T, method, target string, body any, telegramID int64, name string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if telegramID != 0 {
		req.Header.Set(initdata.Header, signedInitData(telegramID, name))
	}

	res := httptest.NewRecorder()
	env.handler.ServeHTTP(res, req)

	return res
}

func TestAuthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: signedInitData(testOwnerTelegramID, "Owner")}, 0, "")

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d: %s", e, g, res.Body.String())
	}

	var auth AuthResponse
	if err := json.Unmarshal(res.Body.Bytes(), &auth); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.RoleOwner, auth.User.Role; e != g {
		t.Errorf("auth.User.Role: expected '%s', got '%s'", e, g)
	}

	res = env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: "auth_date=1&hash=deadbeef"}, 0, "")

	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestTasksEndpoints(t *testing.T) {
	env := newTestEnv(t)

	// Sign in the owner and a worker
	env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: signedInitData(testOwnerTelegramID, "Owner")}, 0, "")
	env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: signedInitData(42, "Worker")}, 0, "")

	// Unauthenticated requests are rejected
	res := env.do(t, http.MethodGet, "/tasks", nil, 0, "")
	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	// Find the worker's internal id
	res = env.do(t, http.MethodGet, "/users", nil, testOwnerTelegramID, "Owner")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d: %s", e, g, res.Body.String())
	}

	var users []UserHeader
	if err := json.Unmarshal(res.Body.Bytes(), &users); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(users); e != g {
		t.Fatalf("len(users): expected %d, got %d", e, g)
	}

	var workerID model.UserID
	for _, u := range users {
		if u.Role == model.RoleWorker {
			workerID = u.ID
		}
	}

	// Workers may not create tasks
	res = env.do(t, http.MethodPost, "/tasks", CreateTaskRequest{Title: "T1", AssigneeID: workerID}, 42, "Worker")
	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	res = env.do(t, http.MethodPost, "/tasks", CreateTaskRequest{Title: "T1", AssigneeID: workerID}, testOwnerTelegramID, "Owner")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d: %s", e, g, res.Body.String())
	}

	res = env.do(t, http.MethodGet, "/tasks", nil, 42, "Worker")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var tasks []TaskHeader
	if err := json.Unmarshal(res.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(tasks); e != g {
		t.Fatalf("len(tasks): expected %d, got %d", e, g)
	}

	if !tasks[0].IsMine {
		t.Errorf("tasks[0].IsMine: expected true, got false")
	}

	if e, g := "Worker", tasks[0].AssigneeName; e != g {
		t.Errorf("tasks[0].AssigneeName: expected '%s', got '%s'", e, g)
	}

	// The worker completes the task
	status := model.StatusDone
	res = env.do(t, http.MethodPatch, "/tasks/"+string(tasks[0].ID), model.TaskPatch{Status: &status}, 42, "Worker")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d: %s", e, g, res.Body.String())
	}

	// A patch against a missing task is a 404
	res = env.do(t, http.MethodPatch, "/tasks/does-not-exist", model.TaskPatch{Status: &status}, 42, "Worker")
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestUserRoleEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: signedInitData(testOwnerTelegramID, "Owner")}, 0, "")
	env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: signedInitData(42, "Worker")}, 0, "")

	res := env.do(t, http.MethodGet, "/users", nil, testOwnerTelegramID, "Owner")

	var users []UserHeader
	if err := json.Unmarshal(res.Body.Bytes(), &users); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var workerID model.UserID
	for _, u := range users {
		if u.Role == model.RoleWorker {
			workerID = u.ID
		}
	}

	// Only the owner may change roles
	res = env.do(t, http.MethodPatch, "/users/"+string(workerID)+"/role", SetUserRoleRequest{Role: model.RoleAdmin}, 42, "Worker")
	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	res = env.do(t, http.MethodPatch, "/users/"+string(workerID)+"/role", SetUserRoleRequest{Role: model.RoleAdmin}, testOwnerTelegramID, "Owner")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d: %s", e, g, res.Body.String())
	}

	res = env.do(t, http.MethodPatch, "/users/"+string(workerID)+"/role", SetUserRoleRequest{Role: "emperor"}, testOwnerTelegramID, "Owner")
	if e, g := http.StatusBadRequest, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestAnnouncementEndpoints(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: signedInitData(testOwnerTelegramID, "Owner")}, 0, "")
	env.do(t, http.MethodPost, "/auth", AuthRequest{InitData: signedInitData(42, "Worker")}, 0, "")

	res := env.do(t, http.MethodPost, "/announcements", CreateAnnouncementRequest{Content: "All hands"}, 42, "Worker")
	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	res = env.do(t, http.MethodPost, "/announcements", CreateAnnouncementRequest{Content: "All hands"}, testOwnerTelegramID, "Owner")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d: %s", e, g, res.Body.String())
	}

	res = env.do(t, http.MethodGet, "/announcements", nil, 0, "")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var announcements []AnnouncementHeader
	if err := json.Unmarshal(res.Body.Bytes(), &announcements); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(announcements); e != g {
		t.Fatalf("len(announcements): expected %d, got %d", e, g)
	}

	if e, g := "Owner", announcements[0].AuthorName; e != g {
		t.Errorf("announcements[0].AuthorName: expected '%s', got '%s'", e, g)
	}
}
