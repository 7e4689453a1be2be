package viewmodel

import (
	"clementus360/taskai/config"
	"errors"
)

// Validation errors. They are returned before any network call is made.
var (
	ErrTitleRequired       = errors.New(config.MsgTitleRequired)
	ErrEmptyPatch          = errors.New("no fields to update")
	ErrCompletedViaToggle  = errors.New("completion can only change through toggle")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrSendInFlight        = errors.New("a message is already being sent")
	ErrCredentialsRequired = errors.New(config.MsgCredentialsNeeded)
	ErrSendCompleted       = errors.New("send already completed")
)
