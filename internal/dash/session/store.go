package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// schemaVersion guards the persisted session shape. A bump invalidates any
// previously stored file: mismatched versions are discarded on load, never
// migrated and never treated as an error.
const schemaVersion = 1

// State is the session snapshot that survives process restarts.
type State struct {
	User            *model.User `json:"user,omitempty"`
	AccessToken     string      `json:"access_token"`
	RefreshToken    string      `json:"refresh_token"`
	IsAuthenticated bool        `json:"is_authenticated"`
}

// Store persists session state across restarts.
type Store interface {
	// Load returns the stored state and whether one was found. Incompatible
	// stored data must be reported as not found, not as an error.
	Load() (State, bool, error)
	Save(state State) error
	Clear() error
}

type persistedState struct {
	SchemaVersion int `json:"schema_version"`
	State
}

// FileStore keeps the session in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore at path. The parent directory is created
// on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored session. A missing file, unreadable JSON, or a
// schema version mismatch all yield (zero, false, nil): stale or corrupt
// state is discarded rather than crashing the client.
func (s *FileStore) Load() (State, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("read session file: %w", err)
	}

	var stored persistedState
	if err := json.Unmarshal(raw, &stored); err != nil {
		return State{}, false, nil
	}
	if stored.SchemaVersion != schemaVersion {
		return State{}, false, nil
	}
	return stored.State, true, nil
}

// Save writes the session atomically via a temp-file rename.
func (s *FileStore) Save(state State) error {
	raw, err := json.Marshal(persistedState{SchemaVersion: schemaVersion, State: state})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store used by tests and one-shot commands.
type MemoryStore struct {
	state State
	has   bool
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (s *MemoryStore) Load() (State, bool, error) {
	return s.state, s.has, nil
}

// Save implements Store.
func (s *MemoryStore) Save(state State) error {
	s.state, s.has = state, true
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.state, s.has = State{}, false
	return nil
}
