package app

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/Makepad-fr/tasks/internal/model"
)

// DateLayout is the stored due date format.
const DateLayout = time.DateOnly

// TodoInput is raw, user-supplied todo data as it comes off a form or the
// command line.
type TodoInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
	Notes       string
}

// todoFields is TodoInput after normalization.
type todoFields struct {
	title, description, dueDate, notes string
	priority                           model.Priority
}

// cleanText trims and NFC-normalizes free text so visually equal input is
// stored identically.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ParseDueDate accepts an empty string or a calendar date in YYYY-MM-DD form.
func ParseDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDueDate, s)
	}
	return s, nil
}

func (in TodoInput) validate() (todoFields, error) {
	f := todoFields{
		title:       cleanText(in.Title),
		description: cleanText(in.Description),
		notes:       cleanText(in.Notes),
	}
	if f.title == "" {
		return todoFields{}, ErrEmptyTitle
	}
	p, err := model.ParsePriority(in.Priority)
	if err != nil {
		return todoFields{}, fmt.Errorf("%w: %v", ErrInvalidPriority, err)
	}
	f.priority = p
	if f.dueDate, err = ParseDueDate(in.DueDate); err != nil {
		return todoFields{}, err
	}
	return f, nil
}

// InputFromTodo returns t's current values as input, the starting point
// for an edit.
func InputFromTodo(t *model.Todo) TodoInput {
	return TodoInput{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Notes:       t.Notes,
	}
}
