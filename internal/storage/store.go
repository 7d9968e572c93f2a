// Package storage defines the local task/piece inventory the reconciler
// reads each cycle, plus a bbolt-backed implementation.
package storage

import "github.com/cuemby/scoutd/internal/model"

// Store is the local inventory the Peer Inventory Reconciler scans every
// cycle. It is read-mostly from this core's point of view — tasks and
// pieces are written by the download/storage subsystem this core is
// announcing on behalf of, which lies outside this module's scope.
type Store interface {
	// GetTasks returns every task currently tracked locally, finished or
	// not. The reconciler classifies each one itself.
	GetTasks() ([]model.Task, error)

	// GetPieces returns the pieces held locally for taskID, in no
	// particular order.
	GetPieces(taskID string) ([]model.Piece, error)

	// PutTask and PutPiece exist for tests and for any future writer
	// component; this core's own reconciliation path never calls them.
	PutTask(task model.Task) error
	PutPiece(taskID string, piece model.Piece) error

	// DeleteTask removes a task and its pieces, mirroring the scheduler
	// eviction the reconciler triggers for expired/abandoned tasks.
	DeleteTask(taskID string) error

	Close() error
}
