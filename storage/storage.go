// Package storage persists projects as JSON files.
//
// A Storage moves whole projects in and out of a file; a Session binds one
// file to a project open in a model.Workspace.
package storage

import (
	"log/slog"
	"time"

	"github.com/arthur-debert/tamodel/storage/internal"
	"github.com/arthur-debert/tamodel/types"
)

// DefaultLockTimeout bounds how long Load and Save wait for the file lock.
const DefaultLockTimeout = 3 * time.Second

// ErrLocked is returned when another process holds the project file.
var ErrLocked = internal.ErrLocked

// Storage defines the low-level interface for batch persistence.
// A project file is loaded and saved as a single unit.
type Storage interface {
	// Load reads the whole project
	Load() (*types.RawProject, error)

	// Save replaces the whole project
	Save(raw *types.RawProject) error

	// Close releases any resources held by the storage
	Close() error
}

// Option configures a storage.
type Option func(*options)

type options struct {
	lockTimeout time.Duration
	log         *slog.Logger
}

// WithLockTimeout sets how long to wait for the file lock.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}

// WithLogger sets the logger for session records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{lockTimeout: DefaultLockTimeout, log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
