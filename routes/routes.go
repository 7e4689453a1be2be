package routes

import "strconv"

// Endpoints of the task service.
const (
	AuthRegister = "/api/auth/register"
	AuthLogin    = "/api/auth/login"
	Tasks        = "/api/tasks"
	Chat         = "/api/chat"
)

// Task is the path of a single task.
func Task(id int64) string {
	return Tasks + "/" + strconv.FormatInt(id, 10)
}

// TaskComplete is the path that flips a task's completed flag.
func TaskComplete(id int64) string {
	return Task(id) + "/complete"
}
