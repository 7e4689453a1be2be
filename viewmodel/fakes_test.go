package viewmodel

import (
	"clementus360/taskai/api"
	"clementus360/taskai/types"
	"context"
	"errors"
	"sync"
)

// fakeTasks records every gateway call and serves a fixed task list.
type fakeTasks struct {
	mu    sync.Mutex
	tasks []types.Task
	calls []string
	fail  error
}

func (f *fakeTasks) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.fail
}

func (f *fakeTasks) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeTasks) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeTasks) Create(ctx context.Context, title, description string) (types.Task, error) {
	if err := f.record("create"); err != nil {
		return types.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := types.Task{ID: int64(len(f.tasks) + 1), Title: title, Description: description}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeTasks) List(ctx context.Context) ([]types.Task, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeTasks) Update(ctx context.Context, id int64, patch types.TaskPatch) (types.Task, error) {
	if err := f.record("update"); err != nil {
		return types.Task{}, err
	}
	return types.Task{ID: id}, nil
}

func (f *fakeTasks) Delete(ctx context.Context, id int64) error {
	return f.record("delete")
}

func (f *fakeTasks) ToggleComplete(ctx context.Context, id int64) (types.Task, error) {
	if err := f.record("toggle"); err != nil {
		return types.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			return f.tasks[i], nil
		}
	}
	return types.Task{}, &api.RequestError{Status: 404, Detail: "Task not found"}
}

// fakeChat answers with a fixed reply or error. When gate is non-nil the
// call blocks until it is closed.
type fakeChat struct {
	reply string
	err   error
	gate  chan struct{}

	mu    sync.Mutex
	texts []string
}

func (f *fakeChat) SendMessage(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeChat) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (types.TokenResponse, error) {
	f.calls++
	return types.TokenResponse{AccessToken: f.token}, f.err
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (types.TokenResponse, error) {
	f.calls++
	return types.TokenResponse{AccessToken: f.token}, f.err
}

var errOffline = &api.TransportError{Method: "GET", Path: "/api/tasks", Err: errors.New("connection refused")}
