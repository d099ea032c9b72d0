package task

import "errors"

var (
	ErrEmptyTitle   = errors.New("title is required")
	ErrTaskNotFound = errors.New("task not found")
)
