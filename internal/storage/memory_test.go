package storage

import (
	"testing"

	"github.com/cuemby/scoutd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreTaskRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	task := model.Task{ID: "task-1", PieceLength: 1024}
	require.NoError(t, s.PutTask(task))

	tasks, err := s.GetTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task, tasks[0])
}

func TestMemoryStorePiecesScopedByTask(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.PutPiece("task-1", model.Piece{Number: 0}))
	require.NoError(t, s.PutPiece("task-1", model.Piece{Number: 1}))
	require.NoError(t, s.PutPiece("task-2", model.Piece{Number: 0}))

	pieces, err := s.GetPieces("task-1")
	require.NoError(t, err)
	assert.Len(t, pieces, 2)

	pieces, err = s.GetPieces("unknown-task")
	require.NoError(t, err)
	assert.Empty(t, pieces)
}

func TestMemoryStoreDeleteTaskRemovesPieces(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.PutTask(model.Task{ID: "task-1"}))
	require.NoError(t, s.PutPiece("task-1", model.Piece{Number: 0}))

	require.NoError(t, s.DeleteTask("task-1"))

	tasks, _ := s.GetTasks()
	assert.Empty(t, tasks)

	pieces, _ := s.GetPieces("task-1")
	assert.Empty(t, pieces)
}
