package app

import "errors"

var (
	ErrLastProject     = errors.New("cannot delete the last project")
	ErrNoProject       = errors.New("no current project")
	ErrProjectNotFound = errors.New("project not found")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrEmptyName       = errors.New("project name cannot be empty")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDueDate  = errors.New("invalid due date")
)
