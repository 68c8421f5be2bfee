package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/existflow/taskmaster/internal/model"
)

// FileStore keeps the state in a single JSON document
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing file is an empty state.
func (s *FileStore) Load(ctx context.Context) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, Wrap("load", err)
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.State{Tasks: []model.Task{}, Categories: []model.Category{}}, nil
		}
		return model.State{}, Wrap("load", err)
	}

	var state model.State
	if err := json.Unmarshal(b, &state); err != nil {
		return model.State{}, Wrap("load", fmt.Errorf("failed to parse %s: %w", s.path, err))
	}
	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}
	if state.Categories == nil {
		state.Categories = []model.Category{}
	}
	return state, nil
}

// Save writes the document through a temp file and rename so readers never
// see a partial write.
func (s *FileStore) Save(ctx context.Context, state model.State) error {
	if err := ctx.Err(); err != nil {
		return Wrap("save", err)
	}

	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return Wrap("save", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Wrap("save", err)
	}

	tmp, err := os.CreateTemp(dir, ".taskmaster-*.json")
	if err != nil {
		return Wrap("save", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return Wrap("save", err)
	}
	if err := tmp.Close(); err != nil {
		return Wrap("save", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return Wrap("save", err)
	}
	return nil
}
