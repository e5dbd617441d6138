// Package storetest holds behaviour checks shared by every store.KV
// implementation.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/store"
)

// Run exercises kv implementations returned by open. Each subtest gets a
// fresh store.
func Run(t *testing.T, open func(t *testing.T) store.KV) {
	t.Run("missing key", func(t *testing.T) {
		kv := open(t)
		_, err := kv.Get("absent")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		kv := open(t)
		require.NoError(t, kv.Set("todoAppData", []byte(`{"projects":[]}`)))
		got, err := kv.Get("todoAppData")
		require.NoError(t, err)
		assert.Equal(t, `{"projects":[]}`, string(got))
	})

	t.Run("set overwrites", func(t *testing.T) {
		kv := open(t)
		require.NoError(t, kv.Set("k", []byte("one")))
		require.NoError(t, kv.Set("k", []byte("two")))
		got, err := kv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "two", string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		kv := open(t)
		require.NoError(t, kv.Set("a", []byte("1")))
		require.NoError(t, kv.Set("a.corrupt", []byte("2")))
		got, err := kv.Get("a")
		require.NoError(t, err)
		assert.Equal(t, "1", string(got))
	})

	t.Run("delete", func(t *testing.T) {
		kv := open(t)
		require.NoError(t, kv.Set("k", []byte("v")))
		require.NoError(t, kv.Delete("k"))
		_, err := kv.Get("k")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete missing is not an error", func(t *testing.T) {
		kv := open(t)
		assert.NoError(t, kv.Delete("never-set"))
	})

	t.Run("invalid key", func(t *testing.T) {
		kv := open(t)
		assert.Error(t, kv.Set("../escape", []byte("v")))
		_, err := kv.Get("../escape")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
		assert.Error(t, kv.Delete("../escape"))
		assert.Error(t, kv.Delete(""))
	})
}
