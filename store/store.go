package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"tasklist-service/models"
)

// Store owns the single JSON document holding all users and tasks.
// Every operation reads or writes the whole document; mutations run through
// Update, which holds the write lock across the load-modify-save cycle so
// concurrent requests cannot lose each other's writes.
type Store struct {
	path string

	mu sync.RWMutex

	idMu   sync.Mutex
	lastID int64
}

// New creates a store backed by the file at path. The file does not have to
// exist yet; a missing file reads as an empty document. The task id generator
// is seeded from the highest id already on disk.
func New(path string) *Store {
	s := &Store{path: path}
	if doc, err := s.read(); err == nil {
		for _, t := range doc.Tasks {
			if t.ID > s.lastID {
				s.lastID = t.ID
			}
		}
	}
	return s
}

// Load returns the current document. A missing file yields an empty document
// so a fresh deployment starts clean; unreadable or unparsable data is an
// error rather than a silent reset.
func (s *Store) Load() (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

// Update applies fn to the document and persists the result. The write lock
// is held for the full read-modify-write, so each mutation is atomic with
// respect to every other store operation. If fn returns an error nothing is
// saved and the error is returned unchanged.
func (s *Store) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.write(doc)
}

// NextTaskID issues a unique task id. Ids are millisecond timestamps, bumped
// past the last issued value so rapid adds and clock steps cannot collide.
func (s *Store) NextTaskID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) read() (models.Document, error) {
	doc := models.Document{
		Users: []models.User{},
		Tasks: []models.Task{},
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("read store file: %w", err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, fmt.Errorf("parse store file: %w", err)
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []models.Task{}
	}
	return doc, nil
}

func (s *Store) write(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}
