package storage

import (
	"testing"

	"github.com/cuemby/scoutd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStoreTaskAndPieceRoundTrip(t *testing.T) {
	s, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	task := model.Task{ID: "task-1", PieceLength: 2048, ContentLength: 4096}
	require.NoError(t, s.PutTask(task))
	require.NoError(t, s.PutPiece("task-1", model.Piece{Number: 0, Digest: "abc"}))
	require.NoError(t, s.PutPiece("task-1", model.Piece{Number: 1, Digest: "def"}))

	tasks, err := s.GetTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	pieces, err := s.GetPieces("task-1")
	require.NoError(t, err)
	assert.Len(t, pieces, 2)
}

func TestBoltStoreDeleteTaskRemovesItsPiecesOnly(t *testing.T) {
	s, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.PutTask(model.Task{ID: "task-1"}))
	require.NoError(t, s.PutTask(model.Task{ID: "task-2"}))
	require.NoError(t, s.PutPiece("task-1", model.Piece{Number: 0}))
	require.NoError(t, s.PutPiece("task-2", model.Piece{Number: 0}))

	require.NoError(t, s.DeleteTask("task-1"))

	pieces1, _ := s.GetPieces("task-1")
	assert.Empty(t, pieces1)

	pieces2, _ := s.GetPieces("task-2")
	assert.Len(t, pieces2, 1)

	tasks, _ := s.GetTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-2", tasks[0].ID)
}
