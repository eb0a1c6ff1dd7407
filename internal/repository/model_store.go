package repository

import (
	"context"

	"cineswipe/internal/recommend"
)

// ModelStore persists and retrieves fitted hybrid models as opaque blobs.
// Load must distinguish "not yet trained" from a corrupted artifact; both are
// surfaced as *entity.PersistenceError with the Missing flag set accordingly.
type ModelStore interface {
	Save(ctx context.Context, model *recommend.HybridModel) error
	Load(ctx context.Context) (*recommend.HybridModel, error)
}
