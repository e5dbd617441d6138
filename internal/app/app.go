// Package app is the controller between the views (CLI and TUI) and the
// domain model. Every mutating call changes the registry first and then
// persists it; views re-render from the in-memory registry afterwards.
package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasks/internal/logging"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/persist"
	"github.com/Makepad-fr/tasks/internal/store"
)

type App struct {
	reg      *model.Registry
	store    *persist.Adapter
	logger   *log.Logger
	lastSave persist.Result
}

type Options struct {
	Logger             *log.Logger
	DefaultProjectName string
}

// New wires a fresh registry to kv. Call Load before use.
func New(kv store.KV, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	reg := model.NewRegistry()
	return &App{
		reg: reg,
		store: persist.New(kv, reg,
			persist.WithLogger(logger),
			persist.WithDefaultProjectName(opts.DefaultProjectName),
		),
		logger:   logger,
		lastSave: persist.Result{Status: persist.StatusSaved},
	}
}

// Load restores state from the store, seeding a default project if needed.
func (a *App) Load() persist.Result {
	res := a.store.Load()
	a.lastSave = res
	return res
}

// LastSave reports the outcome of the most recent persistence call.
func (a *App) LastSave() persist.Result { return a.lastSave }

func (a *App) Registry() *model.Registry { return a.reg }

func (a *App) Projects() []*model.Project { return a.reg.Projects() }

func (a *App) CurrentProject() (*model.Project, bool) { return a.reg.CurrentProject() }

// CurrentTodos returns the todos of the current project, or nil.
func (a *App) CurrentTodos() []*model.Todo {
	p, ok := a.reg.CurrentProject()
	if !ok {
		return nil
	}
	return p.Todos()
}

func (a *App) CreateProject(name string) (*model.Project, error) {
	name = cleanText(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	p := model.NewProject(name)
	a.reg.AddProject(p)
	a.save()
	return p, nil
}

// RemoveProject deletes a project and its todos. The last remaining
// project can never be removed.
func (a *App) RemoveProject(id string) error {
	if _, ok := a.reg.Project(id); !ok {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if a.reg.Len() <= 1 {
		return ErrLastProject
	}
	a.reg.RemoveProject(id)
	a.save()
	return nil
}

func (a *App) SelectProject(id string) error {
	if !a.reg.SetCurrentProject(id) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	a.save()
	return nil
}

func (a *App) RenameProject(id, name string) error {
	p, ok := a.reg.Project(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	name = cleanText(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Rename(name)
	a.save()
	return nil
}

// AddTodo validates in and appends a new todo to the current project.
func (a *App) AddTodo(in TodoInput) (*model.Todo, error) {
	p, ok := a.reg.CurrentProject()
	if !ok {
		return nil, ErrNoProject
	}
	f, err := in.validate()
	if err != nil {
		return nil, err
	}
	t := model.NewTodo(f.title, f.description, f.dueDate, f.priority, f.notes)
	p.AddTodo(t)
	a.save()
	return t, nil
}

// UpdateTodo replaces every field of a todo in the current project.
func (a *App) UpdateTodo(id string, in TodoInput) error {
	t, err := a.currentTodo(id)
	if err != nil {
		return err
	}
	f, err := in.validate()
	if err != nil {
		return err
	}
	t.Update(f.title, f.description, f.dueDate, f.priority, f.notes)
	a.save()
	return nil
}

// ToggleTodo flips completion and returns the new state.
func (a *App) ToggleTodo(id string) (bool, error) {
	t, err := a.currentTodo(id)
	if err != nil {
		return false, err
	}
	t.ToggleComplete()
	a.save()
	return t.Completed, nil
}

func (a *App) RemoveTodo(id string) error {
	p, ok := a.reg.CurrentProject()
	if !ok {
		return ErrNoProject
	}
	if !p.RemoveTodo(id) {
		return fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	a.save()
	return nil
}

// MoveTodo shifts a todo within the current project. Moving past either
// end is clamped and not an error.
func (a *App) MoveTodo(id string, delta int) error {
	p, ok := a.reg.CurrentProject()
	if !ok {
		return ErrNoProject
	}
	if _, ok := p.Todo(id); !ok {
		return fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	if p.MoveTodo(id, delta) {
		a.save()
	}
	return nil
}

// Reset wipes the store and the registry and seeds the default project.
func (a *App) Reset() persist.Result {
	if err := a.store.Clear(); err != nil {
		a.lastSave = persist.Result{Status: persist.StatusFailed, Err: err}
		return a.lastSave
	}
	a.reg.Reset()
	a.lastSave = a.store.InitializeDefault()
	return a.lastSave
}

func (a *App) Export(w io.Writer, format string) error {
	return a.store.Export(w, format)
}

func (a *App) currentTodo(id string) (*model.Todo, error) {
	p, ok := a.reg.CurrentProject()
	if !ok {
		return nil, ErrNoProject
	}
	t, ok := p.Todo(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTodoNotFound, id)
	}
	return t, nil
}

func (a *App) save() {
	a.lastSave = a.store.Save()
}
