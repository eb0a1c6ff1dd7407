// Package modelstore persists trained hybrid models as artifact files. The
// trainer writes a new artifact after each cycle; the API loads it at startup
// and on demand after a retrain.
package modelstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/recommend"
	"cineswipe/internal/repository"
)

// FileStore implements repository.ModelStore on the local filesystem.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given artifact path.
func NewFileStore(path string) repository.ModelStore {
	return &FileStore{path: path}
}

// Path returns the artifact location, for version records and logs.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the model to a temporary file in the artifact's directory and
// renames it into place, so a crashed trainer never leaves a truncated
// artifact behind.
func (s *FileStore) Save(ctx context.Context, model *recommend.HybridModel) error {
	if err := ctx.Err(); err != nil {
		return &entity.PersistenceError{Stage: "save", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entity.PersistenceError{Stage: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &entity.PersistenceError{Stage: "save", Path: s.path, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := model.Save(tmp); err != nil {
		_ = tmp.Close()
		return &entity.PersistenceError{Stage: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &entity.PersistenceError{Stage: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return &entity.PersistenceError{Stage: "save", Path: s.path, Err: err}
	}

	slog.Info("model artifact saved", slog.String("path", s.path))
	return nil
}

// Load reads the artifact and rebuilds the fitted model. A missing artifact
// is reported with Missing set so callers can treat "not yet trained"
// differently from a corrupted file.
func (s *FileStore) Load(ctx context.Context) (*recommend.HybridModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, &entity.PersistenceError{Stage: "load", Path: s.path, Err: err}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &entity.PersistenceError{
			Stage:   "load",
			Path:    s.path,
			Missing: os.IsNotExist(err),
			Err:     err,
		}
	}
	defer func() { _ = f.Close() }()

	model, err := recommend.LoadModel(f)
	if err != nil {
		return nil, &entity.PersistenceError{
			Stage: "load",
			Path:  s.path,
			Err:   fmt.Errorf("decode artifact: %w", err),
		}
	}

	slog.Info("model artifact loaded", slog.String("path", s.path))
	return model, nil
}
