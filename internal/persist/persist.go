// Package persist saves the project registry to a store.KV and rebuilds it
// on startup.
//
// The whole state lives in one JSON document under a single key:
//
//	{
//	  "projects": [{"id", "name", "todos": [{"id", "title", "description",
//	                 "dueDate", "priority", "notes", "completed"}]}],
//	  "currentProjectId": "..." | null
//	}
//
// Persistence failures never escape as panics or mandatory errors. Save
// logs and reports through Result; Load falls back to a fresh default
// project and keeps any undecodable document under "<key>.corrupt". When
// the store cannot be read at all, the default project is not saved.
package persist

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tasks/internal/logging"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/store"
)

const (
	DefaultKey         = "todoAppData"
	DefaultProjectName = "My Tasks"

	corruptSuffix = ".corrupt"
)

// Adapter moves registry state in and out of a store.
type Adapter struct {
	kv          store.KV
	reg         *model.Registry
	logger      *log.Logger
	key         string
	defaultName string
}

type Option func(*Adapter)

func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithDefaultProjectName sets the name of the project seeded into an
// empty store.
func WithDefaultProjectName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.defaultName = name
		}
	}
}

func New(kv store.KV, reg *model.Registry, opts ...Option) *Adapter {
	a := &Adapter{
		kv:          kv,
		reg:         reg,
		logger:      logging.Discard(),
		key:         DefaultKey,
		defaultName: DefaultProjectName,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CorruptKey is where Load parks a document it could not use.
func (a *Adapter) CorruptKey() string { return a.key + corruptSuffix }

// Save writes the registry under the storage key, replacing any previous
// value. Failures are logged and reported in the result.
func (a *Adapter) Save() Result {
	data, err := encodeBlob(Snapshot(a.reg))
	if err == nil {
		err = a.kv.Set(a.key, data)
	}
	if err != nil {
		a.logger.Error("save failed", "key", a.key, "err", err)
		return Result{Status: StatusFailed, Err: fmt.Errorf("save: %w", err)}
	}
	a.logger.Debug("saved", "key", a.key, "projects", a.reg.Len(), "bytes", len(data))
	return Result{Status: StatusSaved}
}

// Load replaces the registry contents with the stored state. A missing or
// empty document seeds the default project. A document that cannot be
// decoded, fails validation or repeats an id is copied to CorruptKey and
// the default project is seeded in its place.
func (a *Adapter) Load() Result {
	a.reg.Reset()

	raw, err := a.kv.Get(a.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		a.logger.Info("no stored data, seeding default project", "key", a.key)
		return a.InitializeDefault()
	case err != nil:
		// Nothing was read, so the stored document may be intact. Seed in
		// memory only and leave it in place.
		a.logger.Error("load failed, using an unsaved default project", "key", a.key, "err", err)
		a.seed()
		return Result{Status: StatusRecovered, Err: fmt.Errorf("load: %w", err)}
	}

	if isEmptyBlob(raw) {
		a.logger.Info("stored data has no projects, seeding default project", "key", a.key)
		return a.InitializeDefault()
	}

	blob, err := decodeBlob(raw)
	if err != nil {
		a.logger.Error("stored data rejected, seeding default project", "key", a.key, "err", err)
		a.preserve(raw)
		return a.recover(fmt.Errorf("load: %w", err))
	}

	a.restore(blob)

	res := Result{Status: StatusLoaded}
	if blob.CurrentProjectID != nil && *blob.CurrentProjectID != "" {
		if !a.reg.SetCurrentProject(*blob.CurrentProjectID) {
			a.logger.Warn("stored current project does not exist, selecting first project",
				"stale", *blob.CurrentProjectID, "current", a.reg.CurrentProjectID())
			res.Status = StatusRepaired
		}
	}
	a.logger.Debug("loaded", "key", a.key, "projects", a.reg.Len(), "current", a.reg.CurrentProjectID())
	return res
}

// restore revives every project shell, then its todos, preserving both
// orders. model.ReviveProject leaves todo attachment to us.
func (a *Adapter) restore(b Blob) {
	for _, pr := range b.Projects {
		p := model.ReviveProject(pr)
		for _, tr := range pr.Todos {
			p.AddTodo(model.ReviveTodo(tr))
		}
		a.reg.AddProject(p)
	}
}

// InitializeDefault registers a single project with the default name,
// makes it current and saves immediately. It does not clear the registry.
func (a *Adapter) InitializeDefault() Result {
	a.seed()
	if res := a.Save(); !res.OK() {
		return res
	}
	return Result{Status: StatusSeeded}
}

func (a *Adapter) seed() {
	p := model.NewProject(a.defaultName)
	a.reg.AddProject(p)
	a.reg.SetCurrentProject(p.ID)
}

// Clear deletes the stored document. The in-memory registry is untouched.
func (a *Adapter) Clear() error {
	if err := a.kv.Delete(a.key); err != nil {
		a.logger.Error("clear failed", "key", a.key, "err", err)
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// Export writes the current registry state as "json" or "yaml".
func (a *Adapter) Export(w io.Writer, format string) error {
	blob := Snapshot(a.reg)
	switch format {
	case "", "json":
		data, err := encodeBlob(blob)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(blob); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q: must be json or yaml", format)
	}
}

func (a *Adapter) recover(cause error) Result {
	a.reg.Reset()
	res := a.InitializeDefault()
	if res.OK() {
		return Result{Status: StatusRecovered, Err: cause}
	}
	return Result{Status: StatusFailed, Err: errors.Join(cause, res.Err)}
}

func (a *Adapter) preserve(raw []byte) {
	if err := a.kv.Set(a.CorruptKey(), raw); err != nil {
		a.logger.Error("could not preserve rejected data", "key", a.CorruptKey(), "err", err)
		return
	}
	a.logger.Warn("rejected data preserved", "key", a.CorruptKey())
}
