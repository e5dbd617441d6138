package persist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tasks/internal/model"
)

//go:embed schema.json
var schemaJSON string

var blobSchema = jsonschema.MustCompileString("tasks-blob.schema.json", schemaJSON)

var (
	// ErrInvalidBlob wraps schema violations and undecodable data.
	ErrInvalidBlob = errors.New("invalid stored data")
	// ErrDuplicateID is returned when two projects, or two todos of one
	// project, share an id.
	ErrDuplicateID = errors.New("duplicate id")
)

// Blob is the single document stored under the storage key.
type Blob struct {
	Projects         []model.ProjectRecord `json:"projects" yaml:"projects"`
	CurrentProjectID *string               `json:"currentProjectId" yaml:"currentProjectId"`
}

// Snapshot captures the registry's full state.
func Snapshot(reg *model.Registry) Blob {
	projects := make([]model.ProjectRecord, 0, reg.Len())
	for _, p := range reg.Projects() {
		projects = append(projects, p.Record())
	}
	b := Blob{Projects: projects}
	if id := reg.CurrentProjectID(); id != "" {
		b.CurrentProjectID = &id
	}
	return b
}

func encodeBlob(b Blob) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return data, nil
}

// isEmptyBlob reports whether raw carries nothing worth reviving: blank
// input, a non-object, or an object whose projects array is missing, null
// or empty. Undecodable input is not "empty"; decodeBlob rejects it.
func isEmptyBlob(raw []byte) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return true
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		var doc any
		// valid JSON that is simply not an object
		return json.Unmarshal(raw, &doc) == nil
	}
	projects, ok := probe["projects"]
	if !ok {
		return true
	}
	trimmed := strings.TrimSpace(string(projects))
	if trimmed == "null" {
		return true
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(projects, &arr); err != nil {
		return false
	}
	return len(arr) == 0
}

// decodeBlob validates raw against the embedded schema, decodes it and
// checks id uniqueness.
func decodeBlob(raw []byte) (Blob, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Blob{}, fmt.Errorf("%w: json: %v", ErrInvalidBlob, err)
	}
	if err := blobSchema.Validate(doc); err != nil {
		return Blob{}, fmt.Errorf("%w: %s", ErrInvalidBlob, schemaMessage(err))
	}

	var b Blob
	if err := json.Unmarshal(raw, &b); err != nil {
		return Blob{}, fmt.Errorf("%w: json: %v", ErrInvalidBlob, err)
	}
	if err := checkUniqueIDs(b); err != nil {
		return Blob{}, err
	}
	return b, nil
}

func checkUniqueIDs(b Blob) error {
	projects := make(map[string]bool, len(b.Projects))
	for _, p := range b.Projects {
		if projects[p.ID] {
			return fmt.Errorf("%w: project %q", ErrDuplicateID, p.ID)
		}
		projects[p.ID] = true

		todos := make(map[string]bool, len(p.Todos))
		for _, t := range p.Todos {
			if todos[t.ID] {
				return fmt.Errorf("%w: todo %q in project %q", ErrDuplicateID, t.ID, p.ID)
			}
			todos[t.ID] = true
		}
	}
	return nil
}

// schemaMessage flattens a validation error to its leaf causes.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	collectCauses(ve, &msgs)
	return strings.Join(msgs, "; ")
}

func collectCauses(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, c := range ve.Causes {
		collectCauses(c, out)
	}
}
