// Package tui is the interactive terminal view. It renders the registry
// through internal/app and routes every user action back through it, so
// each change is persisted as soon as it is made.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tasks/internal/app"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/ui"
)

type mode int

const (
	modeTodos mode = iota
	modeProjects
	modeForm
	modeProjectName
	modeDetail
)

type keyMap struct {
	toggle, add, edit, view, del, up, down, projects key.Binding
	sel, newProject, rename, back, quit               key.Binding
}

var keys = keyMap{
	toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	view:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
	del:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	up:         key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
	down:       key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
	projects:   key.NewBinding(key.WithKeys("p", "tab"), key.WithHelp("p", "projects")),
	sel:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	newProject: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type modelTUI struct {
	app  *app.App
	now  func() time.Time
	mode mode

	todos    list.Model
	projects list.Model

	form      todoForm
	nameInput textinput.Model
	renameID  string // project being renamed; empty when creating

	status    string
	statusErr bool

	width, height int
}

func newModel(a *app.App, now func() time.Time) modelTUI {
	if now == nil {
		now = time.Now
	}
	applyTheme(ui.Current())
	tl := list.New(nil, todoDelegate{now: now}, 0, 0)
	tl.SetShowHelp(true)
	tl.SetShowStatusBar(true)
	tl.SetFilteringEnabled(true)
	tl.Styles.Title = titleStyle
	tl.Styles.HelpStyle = helpStyle
	tl.Styles.PaginationStyle = helpStyle
	tl.FilterInput.Prompt = "/ "
	tl.SetStatusBarItemName("todo", "todos")
	tl.KeyMap.Quit.SetEnabled(false)
	todoKeys := []key.Binding{keys.toggle, keys.add, keys.edit, keys.view, keys.del, keys.up, keys.down, keys.projects, keys.quit}
	tl.AdditionalShortHelpKeys = func() []key.Binding { return todoKeys[:8] }
	tl.AdditionalFullHelpKeys = func() []key.Binding { return todoKeys }

	pl := list.New(nil, projectDelegate{}, 0, 0)
	pl.Title = titleStyle.Render("Projects")
	pl.Styles.Title = titleStyle
	pl.Styles.HelpStyle = helpStyle
	pl.SetStatusBarItemName("project", "projects")
	pl.SetFilteringEnabled(false)
	pl.KeyMap.Quit.SetEnabled(false)
	projectKeys := []key.Binding{keys.sel, keys.newProject, keys.rename, keys.del, keys.back}
	pl.AdditionalShortHelpKeys = func() []key.Binding { return projectKeys }
	pl.AdditionalFullHelpKeys = func() []key.Binding { return projectKeys }

	ni := textinput.New()
	ni.Prompt = "> "
	ni.CharLimit = 100

	m := modelTUI{
		app:       a,
		now:       now,
		todos:     tl,
		projects:  pl,
		nameInput: ni,
	}
	m = m.resize(80, 24)
	m.refresh()
	return m
}

// Run starts the Bubble Tea program. Changes are saved as they happen.
func Run(a *app.App) error {
	p := tea.NewProgram(newModel(a, time.Now), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m modelTUI) Init() tea.Cmd { return nil }

// refresh re-reads the registry into both lists.
func (m *modelTUI) refresh() {
	reg := m.app.Registry()
	m.projects.SetItems(projectItems(reg.Projects(), reg.CurrentProjectID()))

	p, ok := m.app.CurrentProject()
	if !ok {
		m.todos.Title = titleStyle.Render("No project")
		m.todos.SetItems(nil)
		return
	}
	done, pending := p.Stats()
	m.todos.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(p.Name),
		successStyle.Render(symDone), done,
		pendingStyle.Render(symPending), pending,
		accentStyle.Render("Total"), done+pending,
	)
	m.todos.SetItems(todoItems(p.Todos()))
}

// after records the outcome of an action and re-renders from memory.
func (m *modelTUI) after(okMsg string, err error) {
	m.refresh()
	switch {
	case errors.Is(err, app.ErrLastProject):
		m.setStatus("Cannot delete the last project!", true)
	case err != nil:
		m.setStatus(err.Error(), true)
	case !m.app.LastSave().OK():
		m.setStatus("not saved: "+m.app.LastSave().Err.Error(), true)
	default:
		m.setStatus(okMsg, false)
	}
}

func (m *modelTUI) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m modelTUI) resize(w, h int) modelTUI {
	m.width, m.height = w, h
	listHeight := h - 4
	if listHeight < 3 {
		listHeight = 3
	}
	m.todos.SetSize(w-4, listHeight)
	m.projects.SetSize(w-4, listHeight)
	return m
}

func (m modelTUI) selectedTodo() (*model.Todo, bool) {
	it, ok := m.todos.SelectedItem().(todoItem)
	if !ok {
		return nil, false
	}
	return it.t, true
}

func (m modelTUI) selectedProject() (*model.Project, bool) {
	it, ok := m.projects.SelectedItem().(projectItem)
	if !ok {
		return nil, false
	}
	return it.p, true
}

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		return m.resize(ws.Width, ws.Height), nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeProjectName:
		return m.updateProjectName(msg)
	case modeDetail:
		return m.updateDetail(msg)
	case modeProjects:
		return m.updateProjects(msg)
	default:
		return m.updateTodos(msg)
	}
}

func (m modelTUI) updateTodos(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.todos.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.todos, cmd = m.todos.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.quit):
		return m, tea.Quit
	case key.Matches(km, keys.toggle):
		if t, ok := m.selectedTodo(); ok {
			done, err := m.app.ToggleTodo(t.ID)
			label := "reopened"
			if done {
				label = "completed"
			}
			m.after(label, err)
		}
		return m, nil
	case key.Matches(km, keys.add):
		m.form = newTodoForm(app.TodoInput{Priority: string(model.DefaultPriority)}, "")
		m.mode = modeForm
		return m, textinput.Blink
	case key.Matches(km, keys.edit):
		if t, ok := m.selectedTodo(); ok {
			m.form = newTodoForm(app.InputFromTodo(t), t.ID)
			m.mode = modeForm
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(km, keys.view):
		if _, ok := m.selectedTodo(); ok {
			m.mode = modeDetail
		}
		return m, nil
	case key.Matches(km, keys.del):
		if t, ok := m.selectedTodo(); ok {
			m.after("deleted", m.app.RemoveTodo(t.ID))
		}
		return m, nil
	case key.Matches(km, keys.up), key.Matches(km, keys.down):
		// List positions are filtered positions while a filter is applied.
		if m.todos.FilterState() != list.Unfiltered {
			m.setStatus("clear the filter to reorder", true)
			return m, nil
		}
		if t, ok := m.selectedTodo(); ok {
			delta := 1
			if key.Matches(km, keys.up) {
				delta = -1
			}
			idx := m.todos.Index()
			m.after("moved", m.app.MoveTodo(t.ID, delta))
			next := idx + delta
			if next >= 0 && next < len(m.todos.Items()) {
				m.todos.Select(next)
			}
		}
		return m, nil
	case key.Matches(km, keys.projects):
		m.mode = modeProjects
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.todos, cmd = m.todos.Update(msg)
	return m, cmd
}

func (m modelTUI) updateProjects(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.projects, cmd = m.projects.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.quit):
		return m, tea.Quit
	case key.Matches(km, keys.back):
		m.mode = modeTodos
		return m, nil
	case key.Matches(km, keys.sel):
		if p, ok := m.selectedProject(); ok {
			m.after("switched to "+p.Name, m.app.SelectProject(p.ID))
			m.todos.ResetSelected()
			m.mode = modeTodos
		}
		return m, nil
	case key.Matches(km, keys.newProject):
		m.renameID = ""
		m.nameInput.SetValue("")
		m.nameInput.Placeholder = "New project name..."
		m.nameInput.Focus()
		m.mode = modeProjectName
		return m, textinput.Blink
	case key.Matches(km, keys.rename):
		if p, ok := m.selectedProject(); ok {
			m.renameID = p.ID
			m.nameInput.SetValue(p.Name)
			m.nameInput.CursorEnd()
			m.nameInput.Placeholder = "Project name..."
			m.nameInput.Focus()
			m.mode = modeProjectName
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(km, keys.del):
		if p, ok := m.selectedProject(); ok {
			m.after("deleted "+p.Name, m.app.RemoveProject(p.ID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

func (m modelTUI) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.mode = modeTodos
			return m, nil
		case "tab", "down":
			m.form = m.form.move(1)
			return m, nil
		case "shift+tab", "up":
			m.form = m.form.move(-1)
			return m, nil
		case "enter":
			in := m.form.input()
			var err error
			okMsg := "added"
			if m.form.editID == "" {
				_, err = m.app.AddTodo(in)
			} else {
				err = m.app.UpdateTodo(m.form.editID, in)
				okMsg = "updated"
			}
			if isInputError(err) {
				m.form.err = err.Error()
				return m, nil
			}
			m.after(okMsg, err)
			if m.form.editID == "" && err == nil {
				m.todos.Select(len(m.todos.Items()) - 1)
			}
			m.mode = modeTodos
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m modelTUI) updateProjectName(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.nameInput.Blur()
			m.mode = modeProjects
			return m, nil
		case "enter":
			name := m.nameInput.Value()
			var err error
			okMsg := "renamed"
			if m.renameID == "" {
				_, err = m.app.CreateProject(name)
				okMsg = "created " + strings.TrimSpace(name)
			} else {
				err = m.app.RenameProject(m.renameID, name)
			}
			if errors.Is(err, app.ErrEmptyName) {
				m.setStatus("Name cannot be empty", true)
				return m, nil
			}
			m.nameInput.Blur()
			m.after(okMsg, err)
			m.mode = modeProjects
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m modelTUI) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.quit):
		return m, tea.Quit
	case key.Matches(km, keys.edit):
		if t, ok := m.selectedTodo(); ok {
			m.form = newTodoForm(app.InputFromTodo(t), t.ID)
			m.mode = modeForm
			return m, textinput.Blink
		}
	case key.Matches(km, keys.toggle):
		if t, ok := m.selectedTodo(); ok {
			_, err := m.app.ToggleTodo(t.ID)
			m.after("toggled", err)
		}
	case km.String() == "esc", km.String() == "enter":
		m.mode = modeTodos
	}
	return m, nil
}

func isInputError(err error) bool {
	return errors.Is(err, app.ErrEmptyTitle) ||
		errors.Is(err, app.ErrInvalidPriority) ||
		errors.Is(err, app.ErrInvalidDueDate)
}

func (m modelTUI) View() string {
	var content string
	switch m.mode {
	case modeProjects:
		content = m.projects.View()
	case modeProjectName:
		title := "New project"
		if m.renameID != "" {
			title = "Rename project"
		}
		content = m.projects.View() + "\n" + panelString(titleStyle.Render(title)+"\n"+m.nameInput.View())
	case modeForm:
		content = m.form.view()
	case modeDetail:
		if t, ok := m.selectedTodo(); ok {
			content = strings.Join(ui.TodoDetail(t, m.now()), "\n") +
				"\n\n" + helpStyle.Render("e edit • space toggle • esc back")
		}
	default:
		content = m.todos.View()
	}
	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		content += "\n" + style.Render(m.status)
	}
	return panelString(content)
}
