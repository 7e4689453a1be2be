package gateway

import (
	"clementus360/taskai/api"
	"clementus360/taskai/routes"
	"clementus360/taskai/types"
	"context"
	"fmt"
	"net/http"
)

// Tasks maps task actions to single HTTP calls. No retries.
type Tasks struct {
	client *api.Client
}

func NewTasks(client *api.Client) *Tasks {
	return &Tasks{client: client}
}

func (g *Tasks) Create(ctx context.Context, title, description string) (types.Task, error) {
	var task types.Task
	body := types.CreateTaskRequest{Title: title, Description: description}
	if err := g.client.Send(ctx, http.MethodPost, routes.Tasks, body, &task); err != nil {
		return types.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (g *Tasks) List(ctx context.Context) ([]types.Task, error) {
	var tasks []types.Task
	if err := g.client.Send(ctx, http.MethodGet, routes.Tasks, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []types.Task{}
	}
	return tasks, nil
}

func (g *Tasks) Update(ctx context.Context, id int64, patch types.TaskPatch) (types.Task, error) {
	var task types.Task
	if err := g.client.Send(ctx, http.MethodPut, routes.Task(id), patch, &task); err != nil {
		return types.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return task, nil
}

func (g *Tasks) Delete(ctx context.Context, id int64) error {
	if err := g.client.Send(ctx, http.MethodDelete, routes.Task(id), nil, nil); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func (g *Tasks) ToggleComplete(ctx context.Context, id int64) (types.Task, error) {
	var task types.Task
	if err := g.client.Send(ctx, http.MethodPatch, routes.TaskComplete(id), nil, &task); err != nil {
		return types.Task{}, fmt.Errorf("toggle task %d: %w", id, err)
	}
	return task, nil
}
