package model

// Project is a named, ordered collection of todos. Insertion order is
// display order. A todo belongs to exactly one project.
type Project struct {
	ID    string
	Name  string
	todos []*Todo
}

// ProjectRecord is the persisted shape of a Project.
type ProjectRecord struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Todos []TodoRecord `json:"todos" yaml:"todos"`
}

func NewProject(name string) *Project {
	return &Project{ID: newID(), Name: name, todos: []*Todo{}}
}

func (p *Project) Rename(name string) { p.Name = name }

// AddTodo appends t. Ids are not checked for duplicates; lookups resolve
// to the first match.
func (p *Project) AddTodo(t *Todo) {
	p.todos = append(p.todos, t)
}

// RemoveTodo drops the first todo with the given id. It reports whether
// anything was removed.
func (p *Project) RemoveTodo(id string) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	p.todos = append(p.todos[:i], p.todos[i+1:]...)
	return true
}

func (p *Project) Todo(id string) (*Todo, bool) {
	i := p.index(id)
	if i < 0 {
		return nil, false
	}
	return p.todos[i], true
}

// Todos returns the live slice, not a copy. Do not append to or reorder it.
func (p *Project) Todos() []*Todo { return p.todos }

// MoveTodo shifts a todo by delta positions, clamped to the ends of the
// list. It reports whether the order changed.
func (p *Project) MoveTodo(id string, delta int) bool {
	from := p.index(id)
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(p.todos)-1 {
		to = len(p.todos) - 1
	}
	if to == from {
		return false
	}
	t := p.todos[from]
	if to > from {
		copy(p.todos[from:to], p.todos[from+1:to+1])
	} else {
		copy(p.todos[to+1:from+1], p.todos[to:from])
	}
	p.todos[to] = t
	return true
}

// Stats counts completed and pending todos.
func (p *Project) Stats() (done, pending int) {
	for _, t := range p.todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func (p *Project) Record() ProjectRecord {
	todos := make([]TodoRecord, 0, len(p.todos))
	for _, t := range p.todos {
		todos = append(todos, t.Record())
	}
	return ProjectRecord{ID: p.ID, Name: p.Name, Todos: todos}
}

// ReviveProject restores the project shell (id and name) only. Reviving
// r.Todos and attaching them with AddTodo is left to the caller, which
// owns the persisted layout.
func ReviveProject(r ProjectRecord) *Project {
	p := NewProject(r.Name)
	p.ID = r.ID
	return p
}

func (p *Project) index(id string) int {
	for i, t := range p.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
