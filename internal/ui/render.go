package ui

import (
	"fmt"
	"sort"
	"time"

	"github.com/Makepad-fr/tasks/internal/model"
)

const maxTitleWidth = 80

// TodoLines renders todos as numbered lines. Numbers are 1-based positions
// in todos, which the CLI accepts as indexes.
func TodoLines(todos []*model.Todo, now time.Time) []string {
	if len(todos) == 0 {
		return []string{current.Muted.Render("no todos yet")}
	}
	out := make([]string, 0, len(todos))
	for i, t := range todos {
		out = append(out, todoLine(i+1, t, now))
	}
	return out
}

func todoLine(n int, t *model.Todo, now time.Time) string {
	box, boxStyle := current.BoxUnchecked, current.Muted
	if t.Completed {
		box, boxStyle = current.BoxChecked, current.Success
	}
	title := truncate(t.Title, maxTitleWidth)
	due := ""
	if t.DueDate != "" {
		due = "  " + current.Muted.Render("due "+t.DueDate)
		if Overdue(t, now) {
			due = "  " + current.Error.Render("overdue "+t.DueDate)
		}
	}
	return fmt.Sprintf("%s %s %s  %s%s",
		current.Muted.Render(fmt.Sprintf("%2d.", n)),
		boxStyle.Render(box),
		title,
		PriorityLabel(t.Priority),
		due,
	)
}

// GroupedTodoLines splits todos into Pending and Done sections, keeping
// each todo's position number from the full list. Pending todos are
// ordered by priority, high first; ties keep list order.
func GroupedTodoLines(todos []*model.Todo, now time.Time) []string {
	order := make([]int, len(todos))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return todos[order[a]].Priority.Rank() < todos[order[b]].Priority.Rank()
	})

	var pend, done []string
	for _, i := range order {
		t := todos[i]
		if t.Completed {
			continue
		}
		pend = append(pend, todoLine(i+1, t, now))
	}
	for i, t := range todos {
		if t.Completed {
			done = append(done, todoLine(i+1, t, now))
		}
	}
	var lines []string
	lines = append(lines, current.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, current.Muted.Render("(none)"))
	}
	lines = append(lines, pend...)
	lines = append(lines, "")
	lines = append(lines, current.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, current.Muted.Render("(none)"))
	}
	lines = append(lines, done...)
	return lines
}

// ProjectHeader is the title line with live counts and a progress bar.
func ProjectHeader(p *model.Project) []string {
	d, pn := p.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		current.Title.Render(p.Name),
		current.Success.Render(current.SymDone), d,
		current.Pending.Render(current.SymPending), pn,
		current.Accent.Render("Total"), d+pn,
	)
	return []string{header, current.Muted.Render(ProgressBar(d, d+pn, 28))}
}

// ProjectLines lists projects with their todo counts, marking currentID.
func ProjectLines(projects []*model.Project, currentID string) []string {
	out := make([]string, 0, len(projects))
	for i, p := range projects {
		marker := " "
		name := p.Name
		if p.ID == currentID {
			marker = current.Accent.Render(current.SymCurrent)
			name = current.Title.Render(name)
		}
		d, pn := p.Stats()
		out = append(out, fmt.Sprintf("%s %s %s %s",
			marker,
			current.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			name,
			current.Muted.Render(fmt.Sprintf("(%d/%d done)", d, d+pn)),
		))
	}
	return out
}

// TodoDetail renders every field of t, one per line.
func TodoDetail(t *model.Todo, now time.Time) []string {
	status := current.Pending.Render("pending")
	if t.Completed {
		status = current.Success.Render("completed")
	}
	field := func(name, value string) string {
		if value == "" {
			value = current.Muted.Render("-")
		}
		return fmt.Sprintf("%s %s", current.Accent.Render(fmt.Sprintf("%-12s", name)), value)
	}
	return []string{
		current.Title.Render(t.Title),
		"",
		field("Status", status),
		field("Priority", PriorityLabel(t.Priority)),
		field("Due", FormatDue(t.DueDate, now)),
		field("Description", t.Description),
		field("Notes", t.Notes),
		field("ID", current.Muted.Render(t.ID)),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
