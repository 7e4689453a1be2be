package config

import "time"

const (
	AppName            = "taskai"
	DefaultAPIURL      = "http://localhost:8000"
	DefaultHTTPTimeout = 30 * time.Second
	CredentialFileName = "credential.json"
	LogFileName        = "taskai.log"
)

// User-facing fallback messages, used when the server sends no detail.
const (
	MsgGenericFailure    = "Something went wrong. Please try again."
	MsgLoginFailed       = "Login failed. Please try again."
	MsgRegisterFailed    = "Registration failed. Please try again."
	MsgRegistered        = "Account created. Please sign in."
	MsgCredentialsNeeded = "Email and password are required"
	MsgLoadTasksFailed   = "Failed to load tasks"
	MsgCreateTaskFailed  = "Failed to create task"
	MsgUpdateTaskFailed  = "Failed to update task"
	MsgDeleteTaskFailed  = "Failed to delete task"
	MsgTaskCreated       = "Task created successfully!"
	MsgTitleRequired     = "Task title is required"
	MsgSendFailed        = "Failed to send message. Please try again."
)

// ChatSuggestions are shown on an empty transcript.
var ChatSuggestions = []string{
	"Create a task to buy groceries",
	"List all my active tasks",
	"Mark task 1 as complete",
	"Delete the grocery task",
}
