package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tasks/internal/app"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldPriority
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Due", "Priority", "Notes"}

// todoForm edits every field of a todo at once. editID is empty when
// adding.
//
// A text input flattens newlines and tabs, so what it shows can differ
// from the stored value. orig keeps the stored values and shown what the
// inputs started with; fields the user never changed are returned as orig.
type todoForm struct {
	inputs [fieldCount]textinput.Model
	orig   [fieldCount]string
	shown  [fieldCount]string
	focus  int
	editID string
	err    string
}

func newTodoForm(in app.TodoInput, editID string) todoForm {
	f := todoForm{editID: editID}
	placeholders := [fieldCount]string{
		"What needs doing?",
		"Details (optional)",
		"YYYY-MM-DD (optional)",
		"low | medium | high",
		"Notes (optional)",
	}
	f.orig = [fieldCount]string{in.Title, in.Description, in.DueDate, in.Priority, in.Notes}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 0
		ti.SetValue(f.orig[i])
		ti.CursorEnd()
		f.inputs[i] = ti
		f.shown[i] = ti.Value()
	}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f todoForm) input() app.TodoInput {
	return app.TodoInput{
		Title:       f.value(fieldTitle),
		Description: f.value(fieldDescription),
		DueDate:     f.value(fieldDue),
		Priority:    f.value(fieldPriority),
		Notes:       f.value(fieldNotes),
	}
}

func (f todoForm) value(field int) string {
	if v := f.inputs[field].Value(); v != f.shown[field] {
		return v
	}
	return f.orig[field]
}

// move shifts focus by delta, wrapping around.
func (f todoForm) move(delta int) todoForm {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	return f
}

func (f todoForm) update(msg tea.Msg) (todoForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f todoForm) view() string {
	title := "Add todo"
	if f.editID != "" {
		title = "Edit todo"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	if f.err != "" {
		b.WriteString(" " + errorStyle.Render(f.err))
	}
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := mutedStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = accentStyle.Render(fieldLabels[i])
		}
		b.WriteString(label + "\n" + in.View() + "\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab move • enter save • esc cancel"))
	return b.String()
}
