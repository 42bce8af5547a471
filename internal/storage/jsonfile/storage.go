package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/fightlight/fightlight/internal/models"
	"github.com/fightlight/fightlight/internal/storage"
)

// Storage keeps one ProjectState per JSON document.
//
// A flock sidecar serializes access between processes (CLI and web
// server share the same file). Writes go through a temp file and
// rename, so readers never observe a half-written document.
type Storage struct {
	path string
	lock *flock.Flock
}

const lockRetryDelay = 50 * time.Millisecond

func New(path string) (*Storage, error) {
	const op = "storage.jsonfile.New"

	if path == "" {
		return nil, fmt.Errorf("%s: empty state path", op)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the state file location.
func (s *Storage) Path() string {
	return s.path
}

// Exists reports whether a project document is on disk.
func (s *Storage) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and validates the whole document. Any invariant
// violation or unknown top-level field fails the entire load.
func (s *Storage) Load(ctx context.Context) (models.ProjectState, error) {
	const op = "storage.jsonfile.Load"

	if _, err := s.lock.TryRLockContext(ctx, lockRetryDelay); err != nil {
		return models.ProjectState{}, fmt.Errorf("%s: %w", op, err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.ProjectState{}, storage.ErrProjectNotFound
		}
		return models.ProjectState{}, fmt.Errorf("%s: %w", op, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var state models.ProjectState
	if err := dec.Decode(&state); err != nil {
		return models.ProjectState{}, fmt.Errorf("%s: %w: %w", op, storage.ErrProjectCorrupt, err)
	}

	return state, nil
}

// Save writes the document atomically.
func (s *Storage) Save(ctx context.Context, state models.ProjectState) error {
	const op = "storage.jsonfile.Save"

	if err := state.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.lock.TryLockContext(ctx, lockRetryDelay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer s.lock.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".project-*.json")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
