package model_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/model"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func TestUUIDv7Generator_Format(t *testing.T) {
	id := model.UUIDv7Generator{}.NewID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestIDs_UniqueAcrossEntities(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, 2*n)
	for i := 0; i < n; i++ {
		td := model.NewTodo("t", "", "", model.PriorityLow, "")
		p := model.NewProject("p")
		require.False(t, seen[td.ID], "todo id %s issued twice", td.ID)
		seen[td.ID] = true
		require.False(t, seen[p.ID], "project id %s issued twice", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 2*n)
}

func TestSetIDGenerator_Restore(t *testing.T) {
	restore := model.SetIDGenerator(&seqIDs{})
	assert.Equal(t, "id-1", model.NewProject("a").ID)
	assert.Equal(t, "id-2", model.NewTodo("b", "", "", model.PriorityLow, "").ID)
	restore()

	_, err := uuid.Parse(model.NewProject("c").ID)
	assert.NoError(t, err)
}
