package repository

import (
	"io/fs"

	"github.com/greenbin/bunrigo/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithPath sets the path of the JSON document.
func WithPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.path = path
		}
	}
}

// WithFileMode sets the permission bits used when writing the document.
func WithFileMode(mode fs.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *FileStore) {
		if log != nil {
			s.log = log
		}
	}
}
