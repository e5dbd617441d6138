// Package store defines the synchronous key-value store the persistence
// layer writes its blob into. Implementations live in subpackages.
package store

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// KV is a minimal blocking key-value store. Set overwrites. Deleting an
// absent key is not an error.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

var keyRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKey rejects keys that cannot be used as a file name.
func ValidateKey(key string) error {
	if !keyRegexp.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
