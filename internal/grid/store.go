// Package grid stores the number-naming grid: rows of numbers the
// student reads aloud during the rapid-naming test.
package grid

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

var ErrInvalidGrid = errors.New("grid must be an array of rows")

// FileStore keeps the grid as one JSON array-of-arrays on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Row is one line of the grid. Cells stay raw JSON: a grid is usually
// numbers, but any cell values round-trip unchanged.
type Row []json.RawMessage

// Load returns the grid rows, or an empty grid when none was saved yet.
func (s *FileStore) Load() ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Row{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []Row{}, nil
	}
	var g []Row
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return g, nil
}

// Save parses raw JSON content and replaces the stored grid. Content
// that is not an array of rows fails with ErrInvalidGrid.
func (s *FileStore) Save(content string) error {
	var g []Row
	if err := json.Unmarshal([]byte(content), &g); err != nil {
		return ErrInvalidGrid
	}
	return s.write(g)
}

// Clear replaces the grid with an empty one.
func (s *FileStore) Clear() error {
	return s.write([]Row{})
}

func (s *FileStore) write(g []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
