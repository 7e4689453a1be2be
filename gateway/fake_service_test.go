package gateway

import (
	"clementus360/taskai/types"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeService is an in-memory stand-in for the remote task service.
type fakeService struct {
	mu       sync.Mutex
	nextID   int64
	tasks    map[int64]types.Task
	order    []int64
	token    string
	lastAuth string
	calls    []string
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	f := &fakeService{nextID: 1, tasks: map[int64]types.Task{}, token: "valid-token"}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.lastAuth = r.Header.Get("Authorization")

	switch r.URL.Path {
	case "/api/auth/login", "/api/auth/register":
		var creds types.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": f.token, "token_type": "bearer"})
		return
	}

	if f.lastAuth != "Bearer "+f.token {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	if r.URL.Path == "/api/chat" {
		var req types.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, types.ChatResponse{Response: "echo: " + req.Message})
		return
	}

	if r.URL.Path == "/api/tasks" {
		switch r.Method {
		case http.MethodGet:
			out := make([]types.Task, 0, len(f.order))
			for _, id := range f.order {
				out = append(out, f.tasks[id])
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			var req types.CreateTaskRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if strings.TrimSpace(req.Title) == "" {
				writeDetail(w, http.StatusUnprocessableEntity, "title is required")
				return
			}
			now := types.Timestamp{Time: time.Now().UTC()}
			task := types.Task{ID: f.nextID, Title: req.Title, Description: req.Description, CreatedAt: now, UpdatedAt: now, UserID: 1}
			f.tasks[task.ID] = task
			f.order = append(f.order, task.ID)
			f.nextID++
			writeJSON(w, http.StatusCreated, task)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	complete := strings.HasSuffix(rest, "/complete")
	id, err := strconv.ParseInt(strings.TrimSuffix(rest, "/complete"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	task, ok := f.tasks[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return
	}

	switch {
	case complete && r.Method == http.MethodPatch:
		task.Completed = !task.Completed
		f.tasks[id] = task
		writeJSON(w, http.StatusOK, task)
	case r.Method == http.MethodPut:
		var patch types.TaskPatch
		_ = json.NewDecoder(r.Body).Decode(&patch)
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}
		f.tasks[id] = task
		writeJSON(w, http.StatusOK, task)
	case r.Method == http.MethodDelete:
		delete(f.tasks, id)
		for i, v := range f.order {
			if v == id {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeService) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeService) authHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}
