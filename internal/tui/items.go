package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/ui"
)

// todoItem adapts a model.Todo to bubbles/list.Item.
type todoItem struct{ t *model.Todo }

func (i todoItem) Title() string       { return i.t.Title }
func (i todoItem) Description() string { return i.t.Description }
func (i todoItem) FilterValue() string { return i.t.Title + " " + i.t.Description + " " + i.t.Notes }

type projectItem struct {
	p       *model.Project
	current bool
}

func (i projectItem) Title() string       { return i.p.Name }
func (i projectItem) Description() string { return "" }
func (i projectItem) FilterValue() string { return i.p.Name }

// todoDelegate renders one todo per line: box, title, priority, due date.
type todoDelegate struct{ now func() time.Time }

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	t := it.t
	box := mutedStyle.Render(boxUnchecked)
	text := t.Title
	if t.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prio := pendingStyle.Render("●")
	switch t.Priority {
	case model.PriorityHigh:
		prio = highStyle.Render("●")
	case model.PriorityLow:
		prio = lowStyle.Render("●")
	}

	due := ""
	if t.DueDate != "" {
		style := mutedStyle
		if ui.Overdue(t, d.now()) {
			style = errorStyle
		}
		due = "  " + style.Render(t.DueDate)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+fmt.Sprintf("%s %s %s%s", box, prio, text, due))
}

type projectDelegate struct{}

func (d projectDelegate) Height() int                               { return 1 }
func (d projectDelegate) Spacing() int                              { return 0 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(projectItem)
	if !ok {
		return
	}
	done, pending := it.p.Stats()
	name := it.p.Name
	if it.current {
		name = accentStyle.Render(symCurrent+" ") + titleStyle.Render(name)
	} else {
		name = "  " + name
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+name+" "+mutedStyle.Render(fmt.Sprintf("(%d/%d)", done, done+pending)))
}

func todoItems(todos []*model.Todo) []list.Item {
	out := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoItem{t: t})
	}
	return out
}

func projectItems(projects []*model.Project, currentID string) []list.Item {
	out := make([]list.Item, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectItem{p: p, current: p.ID == currentID})
	}
	return out
}
