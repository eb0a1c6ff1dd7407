// Package mongo stores serving-side session documents. Recommendation
// explanations and model version records are append-heavy and schemaless, so
// they live in MongoDB rather than the relational store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/repository"
)

const (
	collRecommendations = "recommendation_explanations"
	collModelVersions   = "model_versions"
)

// Connect opens a client for the given URI and verifies it with a short ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("Connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("Connect: ping: %w", err)
	}
	return client, nil
}

// SessionRepo implements repository.SessionRepository on a MongoDB database.
type SessionRepo struct {
	db *mongo.Database
}

// NewSessionRepo creates a SessionRepository backed by the named database.
func NewSessionRepo(client *mongo.Client, database string) repository.SessionRepository {
	return &SessionRepo{db: client.Database(database)}
}

type recommendationDoc struct {
	MovieID         int64              `bson:"movie_id"`
	Score           float64            `bson:"score"`
	Algorithm       string             `bson:"algorithm"`
	Rank            int                `bson:"rank"`
	Explanation     string             `bson:"explanation"`
	ComponentScores map[string]float64 `bson:"component_scores,omitempty"`
}

func (r *SessionRepo) RecordRecommendations(ctx context.Context, userID int64, recs []*entity.Recommendation) error {
	docs := make([]recommendationDoc, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, recommendationDoc{
			MovieID:         rec.MovieID,
			Score:           rec.Score,
			Algorithm:       string(rec.Algorithm),
			Rank:            rec.Rank,
			Explanation:     rec.Explanation,
			ComponentScores: rec.ComponentScores,
		})
	}

	_, err := r.db.Collection(collRecommendations).InsertOne(ctx, bson.M{
		"user_id":         userID,
		"recommendations": docs,
		"served_at":       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("RecordRecommendations: %w", err)
	}
	return nil
}

func (r *SessionRepo) RecordModelVersion(ctx context.Context, version repository.ModelVersion) error {
	coll := r.db.Collection(collModelVersions)

	// Only the newest record stays active.
	_, err := coll.UpdateMany(ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("RecordModelVersion: deactivate: %w", err)
	}

	_, err = coll.InsertOne(ctx, bson.M{
		"name":       version.Name,
		"trained_at": version.TrainedAt.UTC(),
		"movies":     version.Movies,
		"users":      version.Users,
		"events":     version.Events,
		"artifact":   version.Artifact,
		"active":     true,
	})
	if err != nil {
		return fmt.Errorf("RecordModelVersion: %w", err)
	}
	return nil
}
