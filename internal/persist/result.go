package persist

// Status describes what a Save or Load actually did.
type Status int

const (
	StatusSaved     Status = iota // state written
	StatusLoaded                  // stored state restored as is
	StatusRepaired                // restored, but a stale current project id was replaced
	StatusSeeded                  // nothing stored; default project created and saved
	StatusRecovered               // stored state unusable; default project created and saved
	StatusFailed                  // the store could not be written
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusLoaded:
		return "loaded"
	case StatusRepaired:
		return "repaired"
	case StatusSeeded:
		return "seeded"
	case StatusRecovered:
		return "recovered"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports the outcome of a persistence call. Callers may ignore
// it; failures are logged either way. Err is set for Recovered (the cause
// that was recovered from) and Failed.
type Result struct {
	Status Status
	Err    error
}

// OK reports whether the in-memory state is now usable and persisted.
func (r Result) OK() bool { return r.Status != StatusFailed }
