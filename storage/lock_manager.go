package storage

import (
	"sync"
)

// OperationType tells a LockManager whether fn only reads the project.
type OperationType int

const (
	// ReadOperation may run alongside other reads.
	ReadOperation OperationType = iota

	// WriteOperation runs alone.
	WriteOperation
)

// LockManager serialises access to an in-memory project. The model itself
// is single threaded; a Session shared between goroutines goes through
// here.
type LockManager struct {
	mu *sync.RWMutex
}

// NewLockManager creates a new lock manager instance.
func NewLockManager() *LockManager {
	return &LockManager{
		mu: &sync.RWMutex{},
	}
}

// Execute runs fn holding the lock matching opType. The lock is released
// when fn returns, even if it panics.
//
// Example:
//
//	err := locks.Execute(ReadOperation, func() error {
//	    // Safe to read the project here
//	    return nil
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
