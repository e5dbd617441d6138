package model

import "github.com/google/uuid"

// IDGenerator produces opaque entity identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator issues time-ordered UUIDv7 strings.
type UUIDv7Generator struct{}

func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

var ids IDGenerator = UUIDv7Generator{}

// SetIDGenerator swaps the generator used by NewTodo and NewProject and
// returns a func restoring the previous one. Intended for tests.
func SetIDGenerator(g IDGenerator) (restore func()) {
	prev := ids
	ids = g
	return func() { ids = prev }
}

func newID() string { return ids.NewID() }
