// package checkpoint persists batch progress between process invocations.
//
// Progress is a single versioned TOML record that is always rewritten
// whole; a crash mid-write can only lose the latest update, never corrupt
// the previous one. A separate flag file marks the one-time event of a
// full catalog walk.
package checkpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/duskren/ytrd/internal/shared"
)

// SchemaVersion identifies the progress record layout. Bump when fields
// change shape so a resume can reject records it no longer understands.
const SchemaVersion = 1

const (
	progressFile = "bulk_progress.toml"
	completeFlag = "bulk_complete.flag"
)

// BatchState is the durable record of one batch's progress.
// Invariant: LastCompletedPage <= LastAttemptedPage <= TotalPages.
type BatchState struct {
	Version           int       `toml:"version"`
	LastCompletedPage int       `toml:"last_completed_page"`
	LastAttemptedPage int       `toml:"last_attempted_page"`
	TotalPages        int       `toml:"total_pages"`
	Added             int       `toml:"added"`
	Skipped           int       `toml:"skipped"`
	Failed            int       `toml:"failed"`
	BatchComplete     bool      `toml:"batch_complete"`
	Timestamp         time.Time `toml:"timestamp"`
}

// Store reads and writes checkpoint files in a directory.
type Store struct {
	dir string
}

// NewStore creates a checkpoint store rooted at dir. An empty dir means
// the process working directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// ProgressPath returns the location of the progress record.
func (s *Store) ProgressPath() string {
	return filepath.Join(s.dir, progressFile)
}

// MarkerPath returns the location of the completion marker.
func (s *Store) MarkerPath() string {
	return filepath.Join(s.dir, completeFlag)
}

// Save overwrites the progress record with the given state. The write goes
// through a temp file and rename so an interrupted save leaves the prior
// record intact.
func (s *Store) Save(state BatchState) error {
	state.Version = SchemaVersion
	if state.Timestamp.IsZero() {
		state.Timestamp = time.Now().UTC()
	}

	data, err := toml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	return s.writeAtomic(s.ProgressPath(), data)
}

// Load reads the progress record from a previous invocation. Returns
// [shared.ErrNoCheckpoint] when none has been written yet.
func (s *Store) Load() (BatchState, error) {
	data, err := os.ReadFile(s.ProgressPath())
	if errors.Is(err, fs.ErrNotExist) {
		return BatchState{}, shared.ErrNoCheckpoint
	}
	if err != nil {
		return BatchState{}, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var state BatchState
	if err := toml.Unmarshal(data, &state); err != nil {
		return BatchState{}, fmt.Errorf("failed to parse checkpoint: %w", err)
	}

	if state.Version != SchemaVersion {
		return BatchState{}, fmt.Errorf("%w: unsupported checkpoint version %d", shared.ErrInvalidConfig, state.Version)
	}

	return state, nil
}

// MarkComplete records that the entire catalog has been walked at least
// once. The marker is written atomically and exactly once; subsequent
// calls leave the original timestamp in place.
func (s *Store) MarkComplete(at time.Time) error {
	if s.Complete() {
		return nil
	}
	return s.writeAtomic(s.MarkerPath(), []byte(at.UTC().Format(time.RFC3339)+"\n"))
}

// Complete reports whether the completion marker exists.
func (s *Store) Complete() bool {
	_, err := os.Stat(s.MarkerPath())
	return err == nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	return nil
}
