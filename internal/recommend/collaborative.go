package recommend

import (
	"fmt"
	"log/slog"
	"sort"

	"cineswipe/internal/domain/entity"
)

// UserSimilarity is one user-to-user similarity result.
type UserSimilarity struct {
	UserID     int64
	Similarity float64
}

// CollaborativeModel is the collaborative engine: a sparse user×movie matrix
// pivoted from the interaction log with a brute-force cosine k-nearest-neighbor
// lookup over its rows. Missing (user, movie) pairs are 0, which is
// indistinguishable from an explicit skip; that is an accepted modeling
// approximation, not a bug.
type CollaborativeModel struct {
	cfg        Config
	rows       []SparseVector
	users      *IDIndex
	movies     *IDIndex
	popularity []float64 // per-column total signed interaction weight
	fitted     bool
}

// NewCollaborativeModel creates an unfitted collaborative engine.
func NewCollaborativeModel(cfg Config) *CollaborativeModel {
	return &CollaborativeModel{cfg: cfg}
}

// Fitted reports whether Fit has completed.
func (m *CollaborativeModel) Fitted() bool { return m.fitted }

// Fit pivots the interaction log into the user×movie matrix. The log holds one
// logical event per (user, movie) pair; if duplicates slip through, the last
// event wins. Row and column order follow first appearance in the log and are
// frozen in the id indexes.
func (m *CollaborativeModel) Fit(events []*entity.InteractionEvent) error {
	if len(events) == 0 {
		return fmt.Errorf("Fit: %w: empty interaction log", entity.ErrInvalidInput)
	}

	userIDs := make([]int64, 0, len(events))
	movieIDs := make([]int64, 0, len(events))
	seenUser := make(map[int64]struct{})
	seenMovie := make(map[int64]struct{})
	for _, ev := range events {
		if _, ok := seenUser[ev.UserID]; !ok {
			seenUser[ev.UserID] = struct{}{}
			userIDs = append(userIDs, ev.UserID)
		}
		if _, ok := seenMovie[ev.MovieID]; !ok {
			seenMovie[ev.MovieID] = struct{}{}
			movieIDs = append(movieIDs, ev.MovieID)
		}
	}
	m.users = NewIDIndex(userIDs)
	m.movies = NewIDIndex(movieIDs)

	cells := make([]map[int]float64, m.users.Len())
	for i := range cells {
		cells[i] = make(map[int]float64)
	}
	for _, ev := range events {
		row, _ := m.users.Lookup(ev.UserID)
		col, _ := m.movies.Lookup(ev.MovieID)
		cells[row][col] = ev.Outcome.Weight()
	}

	m.rows = make([]SparseVector, m.users.Len())
	m.popularity = make([]float64, m.movies.Len())
	for row, rowCells := range cells {
		vec := SparseVector{
			Indices: make([]int, 0, len(rowCells)),
			Values:  make([]float64, 0, len(rowCells)),
		}
		for col := range rowCells {
			vec.Indices = append(vec.Indices, col)
		}
		sort.Ints(vec.Indices)
		for _, col := range vec.Indices {
			vec.Values = append(vec.Values, rowCells[col])
			m.popularity[col] += rowCells[col]
		}
		m.rows[row] = vec
	}
	m.fitted = true

	slog.Info("collaborative model fitted",
		slog.Int("users", m.users.Len()),
		slog.Int("movies", m.movies.Len()),
		slog.Int("events", len(events)))
	return nil
}

// GetSimilarUsers returns up to n nearest neighbors of the given user under
// cosine distance, converted to similarity (1 - distance). A user absent from
// the fitted matrix fails closed with an empty list.
func (m *CollaborativeModel) GetSimilarUsers(userID int64, n int) ([]UserSimilarity, error) {
	if !m.fitted {
		return nil, fmt.Errorf("GetSimilarUsers: %w", entity.ErrNotFitted)
	}
	row, ok := m.users.Lookup(userID)
	if !ok {
		slog.Warn("similar users requested for unknown user", slog.Int64("user_id", userID))
		return []UserSimilarity{}, nil
	}

	neighbors := make([]UserSimilarity, 0, m.users.Len()-1)
	for i := range m.rows {
		if i == row {
			continue
		}
		neighbors = append(neighbors, UserSimilarity{
			UserID:     m.users.At(i),
			Similarity: Cosine(m.rows[row], m.rows[i]),
		})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors, nil
}

// RecommendForUser predicts scores for every movie the user has not rated as a
// similarity-weighted average of the neighbors' ratings. Unknown users and
// empty neighborhoods fall back to the global popularity ranking; neither case
// is an error.
func (m *CollaborativeModel) RecommendForUser(userID int64, n int, excludeIDs []int64) ([]*entity.Recommendation, error) {
	if !m.fitted {
		return nil, fmt.Errorf("RecommendForUser: %w", entity.ErrNotFitted)
	}
	if n <= 0 {
		return []*entity.Recommendation{}, nil
	}

	exclude := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}

	row, ok := m.users.Lookup(userID)
	if !ok {
		slog.Info("user not in fitted matrix, using popularity fallback", slog.Int64("user_id", userID))
		return m.popularFallback(n, exclude), nil
	}

	neighbors, err := m.GetSimilarUsers(userID, m.cfg.Neighbors)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		slog.Info("no neighbors for user, using popularity fallback", slog.Int64("user_id", userID))
		return m.popularFallback(n, exclude), nil
	}

	neighborRows := make([]int, len(neighbors))
	for i, nb := range neighbors {
		neighborRows[i], _ = m.users.Lookup(nb.UserID)
	}

	type prediction struct {
		col   int
		score float64
	}
	predictions := make([]prediction, 0, m.movies.Len())
	for col := 0; col < m.movies.Len(); col++ {
		if m.rows[row].At(col) != 0 {
			continue // already rated by the target user
		}
		if _, skip := exclude[m.movies.At(col)]; skip {
			continue
		}
		var score, weight float64
		for i, nb := range neighbors {
			rating := m.rows[neighborRows[i]].At(col)
			if rating == 0 {
				continue // neighbor has no signal for this movie
			}
			score += nb.Similarity * rating
			if nb.Similarity < 0 {
				weight -= nb.Similarity
			} else {
				weight += nb.Similarity
			}
		}
		if weight == 0 {
			continue // no neighbor signal at all: dropped, not scored
		}
		predictions = append(predictions, prediction{col: col, score: score / weight})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].score > predictions[j].score
	})
	if len(predictions) > n {
		predictions = predictions[:n]
	}

	recs := make([]*entity.Recommendation, len(predictions))
	for i, p := range predictions {
		// Weighted averages of ratings live in [-1, 1] (superlikes can push
		// above; clamp); map to [0, 1] for presentation.
		normalized := (p.score + 1) / 2
		if normalized > 1 {
			normalized = 1
		}
		if normalized < 0 {
			normalized = 0
		}
		recs[i] = &entity.Recommendation{
			MovieID:     m.movies.At(p.col),
			Score:       normalized,
			Algorithm:   entity.AlgorithmCollaborative,
			Rank:        i + 1,
			Explanation: "Users similar to you liked this movie",
			ComponentScores: map[string]float64{
				"collaborative_raw": p.score,
			},
		}
	}
	return recs, nil
}

// popularFallback ranks movies by total signed interaction weight across all
// users. Scores are min-max normalized over the returned batch so they stay in
// [0, 1] even when the catalog's net sentiment is negative.
func (m *CollaborativeModel) popularFallback(n int, exclude map[int64]struct{}) []*entity.Recommendation {
	type popular struct {
		col int
		sum float64
	}
	candidates := make([]popular, 0, m.movies.Len())
	for col, sum := range m.popularity {
		if _, skip := exclude[m.movies.At(col)]; skip {
			continue
		}
		candidates = append(candidates, popular{col: col, sum: sum})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sum > candidates[j].sum
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	if len(candidates) == 0 {
		return []*entity.Recommendation{}
	}

	lo, hi := candidates[len(candidates)-1].sum, candidates[0].sum
	recs := make([]*entity.Recommendation, len(candidates))
	for i, c := range candidates {
		score := 0.5
		if hi != lo {
			score = (c.sum - lo) / (hi - lo)
		}
		recs[i] = &entity.Recommendation{
			MovieID:     m.movies.At(c.col),
			Score:       score,
			Algorithm:   entity.AlgorithmPopular,
			Rank:        i + 1,
			Explanation: "Popular among all users",
			ComponentScores: map[string]float64{
				"popularity_raw": c.sum,
			},
		}
	}
	return recs
}
