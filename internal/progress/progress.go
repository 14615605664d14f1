// Package progress persists what the player has earned between sessions:
// unlocked powers, whether the gun was picked up, and the last checkpoint.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/darkbibni/Substanz/internal/power"
)

// ErrNoSave is returned by Load when nothing was saved yet.
var ErrNoSave = errors.New("no saved progress")

const fileName = "progress.json"

// Point is a checkpoint position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is one save.
type State struct {
	Level      string                `json:"level"`
	HasGun     bool                  `json:"has_gun"`
	Unlocked   [power.SlotCount]bool `json:"unlocked"`
	Checkpoint *Point                `json:"checkpoint,omitempty"`
	SavedAt    time.Time             `json:"saved_at"`
}

// Store reads and writes the save file in a directory.
type Store struct {
	dir string
}

// NewStore keeps saves under dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path of the save file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Load returns the saved state, or ErrNoSave.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, ErrNoSave
	}
	if err != nil {
		return State{}, fmt.Errorf("read progress: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode progress: %w", err)
	}
	return st, nil
}

// Save writes st, replacing the previous save atomically.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	if st.SavedAt.IsZero() {
		st.SavedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

// Clear removes the save. Missing saves are not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
