package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/arthur-debert/tamodel/types"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another process holds the file lock past the
// timeout.
var ErrLocked = errors.New("project file is locked")

// JSONStorage implements the Storage interface on a single project file
type JSONStorage struct {
	filePath    string
	fileLock    *flock.Flock
	lockTimeout time.Duration
	mu          sync.RWMutex
}

// NewJSONStorage creates a storage for filePath. The lock lives next to it
// in filePath + ".lock".
func NewJSONStorage(filePath string, lockTimeout time.Duration) *JSONStorage {
	return &JSONStorage{
		filePath:    filePath,
		fileLock:    flock.New(filePath + ".lock"),
		lockTimeout: lockTimeout,
	}
}

// Path returns the project file path.
func (s *JSONStorage) Path() string { return s.filePath }

// Load reads and decodes the project file
func (s *JSONStorage) Load() (*types.RawProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty project file %s", s.filePath)
	}
	return types.DecodeProject(data)
}

// Save encodes raw and replaces the project file atomically
func (s *JSONStorage) Save(raw *types.RawProject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := types.Encode(raw)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	// Unique temp name so concurrent writers never share one
	tmpFile := fmt.Sprintf("%s.%s.tmp", s.filePath, uuid.NewString()[:8])
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, s.filePath); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Close releases resources
func (s *JSONStorage) Close() error {
	_ = os.Remove(s.filePath + ".lock")
	return nil
}

func (s *JSONStorage) lock() (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, s.filePath)
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, s.filePath)
	}
	return func() { _ = s.fileLock.Unlock() }, nil
}
