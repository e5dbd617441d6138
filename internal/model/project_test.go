package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/model"
)

func todoTitles(p *model.Project) []string {
	var out []string
	for _, td := range p.Todos() {
		out = append(out, td.Title)
	}
	return out
}

func newFilledProject(titles ...string) *model.Project {
	p := model.NewProject("Work")
	for _, title := range titles {
		p.AddTodo(model.NewTodo(title, "", "", model.PriorityMedium, ""))
	}
	return p
}

func TestNewProject_Empty(t *testing.T) {
	p := model.NewProject("Work")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Work", p.Name)
	assert.Empty(t, p.Todos())
}

func TestProject_AddTodoKeepsInsertionOrder(t *testing.T) {
	p := newFilledProject("a", "b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, todoTitles(p))
}

func TestProject_RemoveTodo(t *testing.T) {
	p := newFilledProject("a", "b", "c")
	b := p.Todos()[1]

	assert.True(t, p.RemoveTodo(b.ID))
	assert.Equal(t, []string{"a", "c"}, todoTitles(p))

	_, ok := p.Todo(b.ID)
	assert.False(t, ok)
}

func TestProject_RemoveMissingTodoIsNoop(t *testing.T) {
	p := newFilledProject("a")
	assert.False(t, p.RemoveTodo("nope"))
	assert.Len(t, p.Todos(), 1)
}

func TestProject_DuplicateIDsResolveToFirst(t *testing.T) {
	p := model.NewProject("dup")
	first := model.ReviveTodo(model.TodoRecord{ID: "same", Title: "first"})
	second := model.ReviveTodo(model.TodoRecord{ID: "same", Title: "second"})
	p.AddTodo(first)
	p.AddTodo(second)

	got, ok := p.Todo("same")
	require.True(t, ok)
	assert.Same(t, first, got)

	p.RemoveTodo("same")
	got, ok = p.Todo("same")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestProject_TodosIsLive(t *testing.T) {
	p := newFilledProject("a")
	p.Todos()[0].ToggleComplete()

	got, ok := p.Todo(p.Todos()[0].ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
}

func TestProject_MoveTodo(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		delta   int
		want    []string
		changed bool
	}{
		{"down one", 0, 1, []string{"b", "a", "c", "d"}, true},
		{"up one", 2, -1, []string{"a", "c", "b", "d"}, true},
		{"to end", 1, 2, []string{"a", "c", "d", "b"}, true},
		{"clamped at top", 0, -3, []string{"a", "b", "c", "d"}, false},
		{"clamped at bottom", 1, 10, []string{"a", "c", "d", "b"}, true},
		{"zero", 2, 0, []string{"a", "b", "c", "d"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFilledProject("a", "b", "c", "d")
			id := p.Todos()[tt.index].ID

			assert.Equal(t, tt.changed, p.MoveTodo(id, tt.delta))
			assert.Equal(t, tt.want, todoTitles(p))
		})
	}
}

func TestProject_MoveMissingTodo(t *testing.T) {
	p := newFilledProject("a", "b")
	assert.False(t, p.MoveTodo("nope", 1))
}

func TestProject_Stats(t *testing.T) {
	p := newFilledProject("a", "b", "c")
	p.Todos()[1].ToggleComplete()

	done, pending := p.Stats()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
}

func TestProject_RoundTrip(t *testing.T) {
	p := model.NewProject("Work")
	p.AddTodo(model.NewTodo("Write report", "desc", "2024-01-15", model.PriorityHigh, "n1"))
	p.AddTodo(model.NewTodo("Review", "", "2024-01-20", model.PriorityLow, ""))
	p.Todos()[1].ToggleComplete()

	rec := p.Record()
	got := model.ReviveProject(rec)
	assert.Empty(t, got.Todos(), "ReviveProject must not attach todos")
	for _, tr := range rec.Todos {
		got.AddTodo(model.ReviveTodo(tr))
	}

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Name, got.Name)
	require.Len(t, got.Todos(), len(p.Todos()))
	for i := range p.Todos() {
		assert.Equal(t, *p.Todos()[i], *got.Todos()[i])
	}
}

func TestProject_RecordOfEmptyProjectHasEmptyTodos(t *testing.T) {
	rec := model.NewProject("x").Record()
	assert.NotNil(t, rec.Todos)
	assert.Empty(t, rec.Todos)
}
