package repositories

import (
	"context"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
)

// FileBackend keeps the pipeline document in a single JSON file. Writes go
// through a temp file and rename, so a failed save leaves the prior on-disk
// copy intact.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExists
		}
		return nil, errors.Wrap(err, "failed to read pipeline file")
	}
	return data, nil
}

func (b *FileBackend) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create pipeline directory")
	}

	tmp, err := os.CreateTemp(dir, ".pipeline-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to write pipeline file")
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to close pipeline file")
	}

	if err = os.Rename(tmp.Name(), b.path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to replace pipeline file")
	}
	return nil
}
