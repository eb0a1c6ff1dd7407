// Package recommendation provides HTTP handlers for per-user recommendation
// and swipe endpoints.
package recommendation

import (
	"net/http"
	"strconv"

	"cineswipe/internal/domain/entity"
)

// DTO represents the JSON structure for one ranked recommendation entry.
type DTO struct {
	MovieID         int64              `json:"movie_id" example:"603"`
	Score           float64            `json:"score" example:"0.87"`
	Algorithm       string             `json:"algorithm" example:"hybrid"`
	Rank            int                `json:"rank" example:"1"`
	Explanation     string             `json:"explanation" example:"Blended match (60% taste profile, 40% similar users)"`
	ComponentScores map[string]float64 `json:"component_scores,omitempty"`
	ContentWeight   *float64           `json:"content_weight,omitempty" example:"0.6"`
	CollabWeight    *float64           `json:"collaborative_weight,omitempty" example:"0.4"`
}

// ListDTO wraps a ranked recommendation list. Message is set when the list
// comes back empty, so clients can tell the user why.
type ListDTO struct {
	Items   []DTO  `json:"items"`
	Message string `json:"message,omitempty" example:"keep rating movies to get personalized picks"`
}

const emptyListMessage = "keep rating movies to get personalized picks"

func toListDTO(recs []*entity.Recommendation) ListDTO {
	out := ListDTO{Items: toDTOs(recs)}
	if len(out.Items) == 0 {
		out.Message = emptyListMessage
	}
	return out
}

func toDTOs(recs []*entity.Recommendation) []DTO {
	out := make([]DTO, 0, len(recs))
	for _, rec := range recs {
		dto := DTO{
			MovieID:         rec.MovieID,
			Score:           rec.Score,
			Algorithm:       string(rec.Algorithm),
			Rank:            rec.Rank,
			Explanation:     rec.Explanation,
			ComponentScores: rec.ComponentScores,
		}
		if rec.WeightsUsed != nil {
			content, collab := rec.WeightsUsed.Content, rec.WeightsUsed.Collaborative
			dto.ContentWeight, dto.CollabWeight = &content, &collab
		}
		out = append(out, dto)
	}
	return out
}

const (
	defaultLimit = 10
	maxLimit     = 50
)

func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
