package repository

import (
	"context"
	"time"

	"cineswipe/internal/domain/entity"
)

// ModelVersion is one training-cycle record kept for audit and debugging.
type ModelVersion struct {
	Name      string
	TrainedAt time.Time
	Movies    int
	Users     int
	Events    int
	Artifact  string
}

// SessionRepository persists serving-side session documents: which
// recommendations were shown to whom and why, plus model version records
// written by the trainer. Writes are fire-and-forget from the caller's point
// of view; a failed session write never fails a recommendation request.
type SessionRepository interface {
	// RecordRecommendations stores one served result list with its
	// explanations and component scores.
	RecordRecommendations(ctx context.Context, userID int64, recs []*entity.Recommendation) error
	// RecordModelVersion stores a training-cycle record and marks it active.
	RecordModelVersion(ctx context.Context, version ModelVersion) error
}
