// Package memstore is an in-memory store.KV for tests and throwaway runs.
package memstore

import (
	"errors"

	"github.com/Makepad-fr/tasks/internal/store"
)

var _ store.KV = (*Store)(nil)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("memstore: closed")

type Store struct {
	data   map[string][]byte
	closed bool

	// FailWrites makes Set and Delete fail with WriteErr. Used to simulate
	// an unwritable store.
	FailWrites bool
	WriteErr   error
}

func New() *Store {
	return &Store{data: map[string][]byte{}}
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := s.writable(key); err != nil {
		return err
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(key string) error {
	if err := s.writable(key); err != nil {
		return err
	}
	delete(s.data, key)
	return nil
}

func (s *Store) Close() error {
	s.closed = true
	return nil
}

func (s *Store) writable(key string) error {
	if s.closed {
		return ErrClosed
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if s.FailWrites {
		if s.WriteErr != nil {
			return s.WriteErr
		}
		return errors.New("memstore: writes disabled")
	}
	return nil
}
