package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cuemby/scoutd/internal/model"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketTasks  = []byte("tasks")
	bucketPieces = []byte("pieces")
)

// BoltStore implements Store on top of a local bbolt file. Pieces are
// keyed by "<taskID>/<number>" inside bucketPieces so a cursor prefix
// scan returns the full piece set for one task.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if absent) the inventory database under
// dataDir.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "scoutd.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open inventory database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketTasks, bucketPieces} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) GetTasks() ([]model.Task, error) {
	var tasks []model.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		return b.ForEach(func(k, v []byte) error {
			var task model.Task
			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}
			tasks = append(tasks, task)
			return nil
		})
	})
	return tasks, err
}

func (s *BoltStore) PutTask(task model.Task) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		data, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return b.Put([]byte(task.ID), data)
	})
}

func (s *BoltStore) DeleteTask(taskID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketTasks).Delete([]byte(taskID)); err != nil {
			return err
		}
		b := tx.Bucket(bucketPieces)
		c := b.Cursor()
		prefix := []byte(taskID + "/")
		for k, _ := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) GetPieces(taskID string) ([]model.Piece, error) {
	var pieces []model.Piece
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPieces)
		c := b.Cursor()
		prefix := []byte(taskID + "/")
		for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
			var piece model.Piece
			if err := json.Unmarshal(v, &piece); err != nil {
				return err
			}
			pieces = append(pieces, piece)
		}
		return nil
	})
	return pieces, err
}

func (s *BoltStore) PutPiece(taskID string, piece model.Piece) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPieces)
		data, err := json.Marshal(piece)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s/%010d", taskID, piece.Number)
		return b.Put([]byte(key), data)
	})
}

func hasPrefix(k, prefix []byte) bool {
	if len(k) < len(prefix) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}
