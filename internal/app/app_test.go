package app_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/app"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/persist"
	"github.com/Makepad-fr/tasks/internal/store"
	"github.com/Makepad-fr/tasks/internal/store/memstore"
)

func loaded(t *testing.T, kv store.KV) *app.App {
	t.Helper()
	a := app.New(kv, app.Options{})
	require.True(t, a.Load().OK())
	return a
}

// reopen loads kv into a brand new controller, as the next run would.
func reopen(t *testing.T, kv store.KV) *app.App {
	t.Helper()
	a := app.New(kv, app.Options{})
	require.Equal(t, persist.StatusLoaded, a.Load().Status)
	return a
}

func TestLoad_SeedsDefaultProject(t *testing.T) {
	a := loaded(t, memstore.New())

	require.Len(t, a.Projects(), 1)
	p, ok := a.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, "My Tasks", p.Name)
	assert.Empty(t, a.CurrentTodos())
}

func TestLoad_CustomDefaultProjectName(t *testing.T) {
	a := app.New(memstore.New(), app.Options{DefaultProjectName: "Inbox"})
	require.Equal(t, persist.StatusSeeded, a.Load().Status)
	assert.Equal(t, "Inbox", a.Projects()[0].Name)
}

func TestCreateProject_PersistsAndKeepsCurrent(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	first, _ := a.CurrentProject()

	p, err := a.CreateProject("  Work  ")
	require.NoError(t, err)
	assert.Equal(t, "Work", p.Name)
	cur, _ := a.CurrentProject()
	assert.Equal(t, first.ID, cur.ID)

	b := reopen(t, kv)
	require.Len(t, b.Projects(), 2)
	assert.Equal(t, "Work", b.Projects()[1].Name)
}

func TestCreateProject_EmptyName(t *testing.T) {
	a := loaded(t, memstore.New())
	_, err := a.CreateProject("   ")
	assert.ErrorIs(t, err, app.ErrEmptyName)
	assert.Len(t, a.Projects(), 1)
}

func TestRemoveProject_RefusesLast(t *testing.T) {
	a := loaded(t, memstore.New())
	only := a.Projects()[0]

	assert.ErrorIs(t, a.RemoveProject(only.ID), app.ErrLastProject)
	assert.Len(t, a.Projects(), 1)
}

func TestRemoveProject_CurrentReElects(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	work, err := a.CreateProject("Work")
	require.NoError(t, err)
	first := a.Projects()[0]

	require.NoError(t, a.RemoveProject(first.ID))
	cur, ok := a.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, work.ID, cur.ID)

	b := reopen(t, kv)
	assert.Equal(t, work.ID, b.Registry().CurrentProjectID())
}

func TestRemoveProject_Unknown(t *testing.T) {
	a := loaded(t, memstore.New())
	assert.ErrorIs(t, a.RemoveProject("ghost"), app.ErrProjectNotFound)
}

func TestSelectProject(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	work, err := a.CreateProject("Work")
	require.NoError(t, err)

	require.NoError(t, a.SelectProject(work.ID))
	assert.ErrorIs(t, a.SelectProject("ghost"), app.ErrProjectNotFound)

	b := reopen(t, kv)
	assert.Equal(t, work.ID, b.Registry().CurrentProjectID())
}

func TestRenameProject(t *testing.T) {
	a := loaded(t, memstore.New())
	id := a.Projects()[0].ID

	require.NoError(t, a.RenameProject(id, "Inbox"))
	assert.Equal(t, "Inbox", a.Projects()[0].Name)
	assert.ErrorIs(t, a.RenameProject(id, ""), app.ErrEmptyName)
	assert.ErrorIs(t, a.RenameProject("ghost", "x"), app.ErrProjectNotFound)
}

func TestAddTodo_ValidatesAndPersists(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)

	td, err := a.AddTodo(app.TodoInput{
		Title:    " Write report ",
		DueDate:  "2024-01-15",
		Priority: "HIGH",
	})
	require.NoError(t, err)
	assert.Equal(t, "Write report", td.Title)
	assert.Equal(t, model.PriorityHigh, td.Priority)
	assert.False(t, td.Completed)

	b := reopen(t, kv)
	todos := b.CurrentTodos()
	require.Len(t, todos, 1)
	assert.Equal(t, *td, *todos[0])
}

func TestAddTodo_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   app.TodoInput
		want error
	}{
		{"empty title", app.TodoInput{Title: "  "}, app.ErrEmptyTitle},
		{"bad priority", app.TodoInput{Title: "x", Priority: "urgent"}, app.ErrInvalidPriority},
		{"bad date", app.TodoInput{Title: "x", DueDate: "15/01/2024"}, app.ErrInvalidDueDate},
		{"impossible date", app.TodoInput{Title: "x", DueDate: "2024-02-30"}, app.ErrInvalidDueDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := loaded(t, memstore.New())
			_, err := a.AddTodo(tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, a.CurrentTodos())
		})
	}
}

func TestAddTodo_DefaultsPriority(t *testing.T) {
	a := loaded(t, memstore.New())
	td, err := a.AddTodo(app.TodoInput{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPriority, td.Priority)
	assert.Empty(t, td.DueDate)
}

func TestAddTodo_NormalizesUnicode(t *testing.T) {
	a := loaded(t, memstore.New())
	td, err := a.AddTodo(app.TodoInput{Title: "cafe\u0301"})
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", td.Title)
}

func TestUpdateTodo(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	td, err := a.AddTodo(app.TodoInput{Title: "x", Priority: "low"})
	require.NoError(t, err)
	_, err = a.ToggleTodo(td.ID)
	require.NoError(t, err)

	in := app.InputFromTodo(td)
	in.Notes = "more detail"
	in.Priority = "high"
	require.NoError(t, a.UpdateTodo(td.ID, in))

	b := reopen(t, kv)
	got := b.CurrentTodos()[0]
	assert.Equal(t, td.ID, got.ID)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, "more detail", got.Notes)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.True(t, got.Completed)

	assert.ErrorIs(t, a.UpdateTodo("ghost", in), app.ErrTodoNotFound)
	in.Title = ""
	assert.ErrorIs(t, a.UpdateTodo(td.ID, in), app.ErrEmptyTitle)
}

func TestToggleTodo(t *testing.T) {
	a := loaded(t, memstore.New())
	td, err := a.AddTodo(app.TodoInput{Title: "x"})
	require.NoError(t, err)

	done, err := a.ToggleTodo(td.ID)
	require.NoError(t, err)
	assert.True(t, done)
	done, err = a.ToggleTodo(td.ID)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = a.ToggleTodo("ghost")
	assert.ErrorIs(t, err, app.ErrTodoNotFound)
}

func TestRemoveTodo(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	keep, _ := a.AddTodo(app.TodoInput{Title: "keep"})
	drop, _ := a.AddTodo(app.TodoInput{Title: "drop"})

	require.NoError(t, a.RemoveTodo(drop.ID))
	assert.ErrorIs(t, a.RemoveTodo(drop.ID), app.ErrTodoNotFound)

	b := reopen(t, kv)
	require.Len(t, b.CurrentTodos(), 1)
	assert.Equal(t, keep.ID, b.CurrentTodos()[0].ID)
}

func TestMoveTodo(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	first, _ := a.AddTodo(app.TodoInput{Title: "first"})
	_, _ = a.AddTodo(app.TodoInput{Title: "second"})

	require.NoError(t, a.MoveTodo(first.ID, 1))
	require.NoError(t, a.MoveTodo(first.ID, 5))
	assert.ErrorIs(t, a.MoveTodo("ghost", 1), app.ErrTodoNotFound)

	b := reopen(t, kv)
	assert.Equal(t, "second", b.CurrentTodos()[0].Title)
	assert.Equal(t, "first", b.CurrentTodos()[1].Title)
}

func TestTodosFollowCurrentProject(t *testing.T) {
	a := loaded(t, memstore.New())
	_, err := a.AddTodo(app.TodoInput{Title: "in default"})
	require.NoError(t, err)
	work, _ := a.CreateProject("Work")
	require.NoError(t, a.SelectProject(work.ID))

	assert.Empty(t, a.CurrentTodos())
	_, err = a.AddTodo(app.TodoInput{Title: "in work"})
	require.NoError(t, err)
	assert.Len(t, work.Todos(), 1)
	assert.Len(t, a.Projects()[0].Todos(), 1)
}

func TestSaveFailureIsVisible(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	kv.FailWrites = true

	_, err := a.AddTodo(app.TodoInput{Title: "x"})
	require.NoError(t, err, "a failed save is not a domain error")
	assert.Equal(t, persist.StatusFailed, a.LastSave().Status)
	assert.Len(t, a.CurrentTodos(), 1)
}

func TestReset(t *testing.T) {
	kv := memstore.New()
	a := loaded(t, kv)
	_, _ = a.CreateProject("Work")
	_, _ = a.AddTodo(app.TodoInput{Title: "x"})

	res := a.Reset()
	assert.Equal(t, persist.StatusSeeded, res.Status)
	require.Len(t, a.Projects(), 1)
	assert.Equal(t, "My Tasks", a.Projects()[0].Name)
	assert.Empty(t, a.CurrentTodos())

	b := reopen(t, kv)
	assert.Len(t, b.Projects(), 1)
}

func TestExport(t *testing.T) {
	a := loaded(t, memstore.New())
	_, _ = a.AddTodo(app.TodoInput{Title: "exported"})

	var buf bytes.Buffer
	require.NoError(t, a.Export(&buf, "yaml"))
	assert.Contains(t, buf.String(), "title: exported")
}

func TestParseDueDate(t *testing.T) {
	got, err := app.ParseDueDate(" 2024-12-31 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", got)

	got, err = app.ParseDueDate("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = app.ParseDueDate("tomorrow")
	assert.ErrorIs(t, err, app.ErrInvalidDueDate)
}
