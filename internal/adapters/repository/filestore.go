package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/greenbin/bunrigo/internal/domain/model"
	"github.com/greenbin/bunrigo/pkg/logger"
	"github.com/greenbin/bunrigo/pkg/metrics"
)

// Default file store configuration constants.
const (
	defaultPath            = "data.json"
	defaultMode fs.FileMode = 0o644
)

// FileStore persists the record set as one pretty-printed JSON array,
// matching the document format the rest of the tooling expects. Every
// Save rewrites the whole file through a temp file plus rename so readers
// never observe a partial document.
type FileStore struct {
	path string
	mode fs.FileMode
	log  logger.Logger
}

// NewFileStore creates a file store with configuration options.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		path: defaultPath,
		mode: defaultMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Path returns the location of the persisted document.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the whole document. A missing file or a file that does not
// parse yields an empty set: there is no repair and no backup, the next
// Save simply regenerates the document.
func (s *FileStore) Load(ctx context.Context) (model.RecordSet, error) {
	done := metrics.TimeStoreLoad()
	defer done()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(ctx, "record file unreadable, starting empty",
				logger.String("path", s.path), logger.Error(err))
			metrics.RecordStoreError("load")
		}
		return model.RecordSet{}, nil
	}

	var set model.RecordSet
	if err := json.Unmarshal(raw, &set); err != nil {
		s.log.Warn(ctx, "record file corrupt, starting empty",
			logger.String("path", s.path), logger.Error(err))
		metrics.RecordStoreError("load")
		return model.RecordSet{}, nil
	}
	return set, nil
}

// Save serializes the full set and atomically replaces the document.
func (s *FileStore) Save(ctx context.Context, set model.RecordSet) error {
	done := metrics.TimeStoreSave()
	defer done()

	if set == nil {
		set = model.RecordSet{}
	}
	raw, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		metrics.RecordStoreError("save")
		return WrapSave(err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		metrics.RecordStoreError("save")
		return WrapSave(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		metrics.RecordStoreError("save")
		return WrapSave(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		metrics.RecordStoreError("save")
		return WrapSave(err)
	}
	if err := os.Chmod(tmpName, s.mode); err != nil {
		_ = os.Remove(tmpName)
		metrics.RecordStoreError("save")
		return WrapSave(err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		metrics.RecordStoreError("save")
		return WrapSave(err)
	}

	s.log.Debug(ctx, "record set saved",
		logger.String("path", s.path), logger.Int("records", len(set)))
	metrics.UpdateRecordCount(len(set))
	return nil
}
