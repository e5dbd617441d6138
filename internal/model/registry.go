package model

// Registry owns every project and the pointer to the one currently in
// focus. While it holds at least one project the pointer always resolves
// to a member; an empty registry has no current project.
//
// The registry does not refuse to remove its last project. Callers that
// need "at least one project" enforce it themselves.
type Registry struct {
	projects  []*Project
	currentID string
}

func NewRegistry() *Registry {
	return &Registry{projects: []*Project{}}
}

// AddProject appends p. The first project added to an empty registry
// becomes current.
func (r *Registry) AddProject(p *Project) {
	r.projects = append(r.projects, p)
	if len(r.projects) == 1 {
		r.currentID = p.ID
	}
}

// RemoveProject drops the project with the given id, discarding its todos.
// Removing the current project moves the pointer to the first remaining
// project, or clears it when none remain.
func (r *Registry) RemoveProject(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.projects = append(r.projects[:i], r.projects[i+1:]...)
	if r.currentID == id {
		r.currentID = ""
		if len(r.projects) > 0 {
			r.currentID = r.projects[0].ID
		}
	}
	return true
}

func (r *Registry) Project(id string) (*Project, bool) {
	i := r.index(id)
	if i < 0 {
		return nil, false
	}
	return r.projects[i], true
}

func (r *Registry) CurrentProject() (*Project, bool) {
	if r.currentID == "" {
		return nil, false
	}
	return r.Project(r.currentID)
}

// CurrentProjectID returns "" when there is no current project.
func (r *Registry) CurrentProjectID() string { return r.currentID }

// SetCurrentProject points the registry at id. Unknown ids are refused and
// leave the pointer where it was.
func (r *Registry) SetCurrentProject(id string) bool {
	if r.index(id) < 0 {
		return false
	}
	r.currentID = id
	return true
}

// Projects returns the live slice, not a copy.
func (r *Registry) Projects() []*Project { return r.projects }

func (r *Registry) Len() int { return len(r.projects) }

// Reset empties the registry.
func (r *Registry) Reset() {
	r.projects = []*Project{}
	r.currentID = ""
}

func (r *Registry) index(id string) int {
	for i, p := range r.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
