package storage

import (
	"sync"

	"github.com/cuemby/scoutd/internal/model"
)

// MemoryStore is an in-process Store used by tests that need
// deterministic, toolchain-free inventory fixtures.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  map[string]model.Task
	pieces map[string][]model.Piece
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:  make(map[string]model.Task),
		pieces: make(map[string][]model.Piece),
	}
}

func (s *MemoryStore) GetTasks() ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *MemoryStore) GetPieces(taskID string) ([]model.Piece, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Piece(nil), s.pieces[taskID]...), nil
}

func (s *MemoryStore) PutTask(task model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task
	return nil
}

func (s *MemoryStore) PutPiece(taskID string, piece model.Piece) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pieces[taskID] = append(s.pieces[taskID], piece)
	return nil
}

func (s *MemoryStore) DeleteTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, taskID)
	delete(s.pieces, taskID)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
