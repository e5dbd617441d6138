package model

// Todo is a single task. ID is fixed at creation; everything else is
// mutated in place through ToggleComplete and Update.
type Todo struct {
	ID          string
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD, stored verbatim
	Priority    Priority
	Notes       string
	Completed   bool
}

// TodoRecord is the persisted shape of a Todo.
type TodoRecord struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	DueDate     string `json:"dueDate" yaml:"dueDate"`
	Priority    string `json:"priority" yaml:"priority"`
	Notes       string `json:"notes" yaml:"notes"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// NewTodo creates an incomplete todo with a fresh id. Field values are
// stored as given; validating user input is the caller's job.
func NewTodo(title, description, dueDate string, priority Priority, notes string) *Todo {
	return &Todo{
		ID:          newID(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Notes:       notes,
	}
}

func (t *Todo) ToggleComplete() {
	t.Completed = !t.Completed
}

// Update replaces every mutable field. There is no partial form: pass the
// current value for fields that should stay the same.
func (t *Todo) Update(title, description, dueDate string, priority Priority, notes string) {
	t.Title = title
	t.Description = description
	t.DueDate = dueDate
	t.Priority = priority
	t.Notes = notes
}

func (t *Todo) Record() TodoRecord {
	return TodoRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Notes:       t.Notes,
		Completed:   t.Completed,
	}
}

// ReviveTodo rebuilds a todo from its record. ID and Completed are taken
// verbatim; the rest goes through NewTodo. An unknown priority is
// normalized to DefaultPriority.
func ReviveTodo(r TodoRecord) *Todo {
	t := NewTodo(r.Title, r.Description, r.DueDate, NormalizePriority(r.Priority), r.Notes)
	t.ID = r.ID
	t.Completed = r.Completed
	return t
}
