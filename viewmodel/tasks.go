package viewmodel

import (
	"clementus360/taskai/api"
	"clementus360/taskai/config"
	"clementus360/taskai/types"
	"context"
	"strings"
	"sync"
)

// TaskGateway is the remote task capability used by TaskCollection.
type TaskGateway interface {
	Create(ctx context.Context, title, description string) (types.Task, error)
	List(ctx context.Context) ([]types.Task, error)
	Update(ctx context.Context, id int64, patch types.TaskPatch) (types.Task, error)
	Delete(ctx context.Context, id int64) error
	ToggleComplete(ctx context.Context, id int64) (types.Task, error)
}

// TaskCollection is the local projection of the user's tasks. It is only
// ever replaced by a full fetch; mutations are confirmed by the server and
// followed by a refetch instead of being patched in locally.
type TaskCollection struct {
	gw TaskGateway

	mu      sync.Mutex
	tasks   []types.Task
	loading bool
	busy    map[int64]bool
	err     string
	notice  string

	// gen changes on Reset; fetch changes on every Refresh. A call whose
	// captured values no longer match finished too late and is dropped.
	gen   uint64
	fetch uint64
}

func NewTaskCollection(gw TaskGateway) *TaskCollection {
	return &TaskCollection{
		gw:    gw,
		tasks: []types.Task{},
		busy:  map[int64]bool{},
	}
}

// Refresh fetches the full list and replaces the local collection. A result
// that arrives after Reset or after a newer Refresh started is discarded.
func (c *TaskCollection) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.fetch++
	gen, fetch := c.gen, c.fetch
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	tasks, err := c.gw.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.fetch != fetch {
		config.Logger.Debug("Discarding stale task list")
		return nil
	}
	c.loading = false
	if err != nil {
		config.Logger.Error("Failed to fetch tasks:", err)
		c.err = api.UserMessage(err, config.MsgLoadTasksFailed)
		return err
	}
	c.tasks = tasks
	return nil
}

func (c *TaskCollection) Create(ctx context.Context, title, description string) error {
	c.mu.Lock()
	c.err = ""
	c.notice = ""
	gen := c.gen
	c.mu.Unlock()

	// Basic validation
	title = strings.TrimSpace(title)
	if title == "" {
		c.setErr(config.MsgTitleRequired)
		return ErrTitleRequired
	}

	if _, err := c.gw.Create(ctx, title, strings.TrimSpace(description)); err != nil {
		config.Logger.Error("Failed to create task:", err)
		c.setErr(api.UserMessage(err, config.MsgCreateTaskFailed))
		return err
	}

	if err := c.Refresh(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.notice = config.MsgTaskCreated
	}
	c.mu.Unlock()
	return nil
}

// Update edits title and description. Completion is not editable here.
func (c *TaskCollection) Update(ctx context.Context, id int64, patch types.TaskPatch) error {
	c.setErr("")

	switch {
	case patch.Empty():
		c.setErr(ErrEmptyPatch.Error())
		return ErrEmptyPatch
	case patch.Completed != nil:
		c.setErr(ErrCompletedViaToggle.Error())
		return ErrCompletedViaToggle
	case patch.Title != nil && strings.TrimSpace(*patch.Title) == "":
		c.setErr(config.MsgTitleRequired)
		return ErrTitleRequired
	}

	return c.mutate(ctx, id, config.MsgUpdateTaskFailed, func(ctx context.Context) error {
		_, err := c.gw.Update(ctx, id, patch)
		return err
	})
}

func (c *TaskCollection) Toggle(ctx context.Context, id int64) error {
	return c.mutate(ctx, id, config.MsgUpdateTaskFailed, func(ctx context.Context) error {
		_, err := c.gw.ToggleComplete(ctx, id)
		return err
	})
}

func (c *TaskCollection) Remove(ctx context.Context, id int64) error {
	return c.mutate(ctx, id, config.MsgDeleteTaskFailed, func(ctx context.Context) error {
		return c.gw.Delete(ctx, id)
	})
}

// mutate runs one server mutation for task id and refetches on success.
func (c *TaskCollection) mutate(ctx context.Context, id int64, fallback string, call func(context.Context) error) error {
	c.mu.Lock()
	c.busy[id] = true
	c.err = ""
	gen := c.gen
	c.mu.Unlock()

	err := call(ctx)

	c.mu.Lock()
	current := c.gen == gen
	if current {
		delete(c.busy, id)
	}
	if err != nil {
		config.Logger.Errorf("Task %d mutation failed: %v", id, err)
		if current {
			c.err = api.UserMessage(err, fallback)
		}
	}
	c.mu.Unlock()

	if err != nil || !current {
		return err
	}
	return c.Refresh(ctx)
}

func (c *TaskCollection) setErr(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
}

// Tasks returns a copy of the collection in server order.
func (c *TaskCollection) Tasks() []types.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *TaskCollection) Filter(f Filter) []types.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterTasks(c.tasks, f)
}

func (c *TaskCollection) Stats() types.TaskStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.ComputeStats(c.tasks)
}

func (c *TaskCollection) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Busy reports whether a toggle, update or delete for id is in flight.
func (c *TaskCollection) Busy(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[id]
}

func (c *TaskCollection) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *TaskCollection) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

func (c *TaskCollection) ClearNotice() {
	c.mu.Lock()
	c.notice = ""
	c.mu.Unlock()
}

// Reset drops all local state, e.g. after logout.
func (c *TaskCollection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.tasks = []types.Task{}
	c.busy = map[int64]bool{}
	c.err = ""
	c.notice = ""
	c.loading = false
}
