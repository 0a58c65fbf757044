package storage

import "github.com/arthur-debert/tamodel/storage/internal"

// NewJSONStorage creates a JSON file storage for filePath
func NewJSONStorage(filePath string, opts ...Option) Storage {
	o := buildOptions(opts)
	return internal.NewJSONStorage(filePath, o.lockTimeout)
}
