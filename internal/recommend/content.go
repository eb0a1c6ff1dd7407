package recommend

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"cineswipe/internal/domain/entity"
)

// MovieSimilarity is one item-to-item similarity result.
type MovieSimilarity struct {
	MovieID    int64
	Similarity float64
}

// ContentModel is the content-based engine: a TF-IDF vectorizer fitted over
// combined movie feature strings plus the resulting movie×term matrix. Taste
// profiles are derived per request as the centroid of liked-movie rows and are
// never stored.
type ContentModel struct {
	cfg        Config
	vectorizer *Vectorizer
	rows       []SparseVector
	movies     *IDIndex
	fitted     bool
}

// NewContentModel creates an unfitted content engine.
func NewContentModel(cfg Config) *ContentModel {
	return &ContentModel{
		cfg:        cfg,
		vectorizer: NewVectorizer(cfg.VocabSize),
	}
}

// Fitted reports whether Fit has completed.
func (m *ContentModel) Fitted() bool { return m.fitted }

// Fit builds one combined feature string per movie and fits the TF-IDF
// embedding over the whole catalog. Every movie in the catalog gets exactly one
// row; row order follows catalog order and is frozen in the id index.
func (m *ContentModel) Fit(movies []*entity.Movie) error {
	if len(movies) == 0 {
		return fmt.Errorf("Fit: %w: empty movie catalog", entity.ErrInvalidInput)
	}

	ids := make([]int64, len(movies))
	docs := make([]string, len(movies))
	for i, mov := range movies {
		ids[i] = mov.ID
		docs[i] = featureString(mov)
	}

	m.movies = NewIDIndex(ids)
	m.rows = m.vectorizer.Fit(docs)
	m.fitted = true

	slog.Info("content model fitted",
		slog.Int("movies", m.movies.Len()),
		slog.Int("vocabulary", m.vectorizer.Dimension()))
	return nil
}

// featureString combines a movie's categorical tags and overview into a single
// weighted bag-of-terms document. Genres repeat 3x and keywords 2x so the
// movie's categorical identity dominates over incidental overview text before
// term weighting.
func featureString(m *entity.Movie) string {
	parts := make([]string, 0, len(m.Genres)*3+len(m.Keywords)*2+1)
	for i := 0; i < 3; i++ {
		parts = append(parts, m.Genres...)
	}
	for i := 0; i < 2; i++ {
		parts = append(parts, m.Keywords...)
	}
	if m.Overview != "" {
		parts = append(parts, m.Overview)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// GetSimilarMovies ranks the catalog by cosine similarity to the given movie
// and returns the top n, excluding the movie itself. An unknown movie id
// returns an empty list: ids drift between catalog snapshots and requests, so
// absence is a normal occurrence, not an error.
func (m *ContentModel) GetSimilarMovies(movieID int64, n int) ([]MovieSimilarity, error) {
	if !m.fitted {
		return nil, fmt.Errorf("GetSimilarMovies: %w", entity.ErrNotFitted)
	}
	row, ok := m.movies.Lookup(movieID)
	if !ok {
		slog.Warn("similar movies requested for unknown movie", slog.Int64("movie_id", movieID))
		return []MovieSimilarity{}, nil
	}

	results := make([]MovieSimilarity, 0, m.movies.Len()-1)
	for i := range m.rows {
		if i == row {
			continue
		}
		results = append(results, MovieSimilarity{
			MovieID:    m.movies.At(i),
			Similarity: m.rows[row].Dot(m.rows[i]), // rows are L2-normalized
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > n {
		results = results[:n]
	}
	return results, nil
}

// RecommendForUser computes the centroid of the resolved liked-movie rows as
// the user's taste profile, ranks all non-excluded catalog movies by cosine
// similarity to it, and returns the top n with displayed scores rescaled into
// the content presentation band. Unknown liked ids are silently dropped; if
// none resolve the result is empty.
func (m *ContentModel) RecommendForUser(likedIDs []int64, n int, excludeIDs []int64) ([]*entity.Recommendation, error) {
	if !m.fitted {
		return nil, fmt.Errorf("RecommendForUser: %w", entity.ErrNotFitted)
	}
	if n <= 0 || len(likedIDs) == 0 {
		return []*entity.Recommendation{}, nil
	}

	liked := make([]SparseVector, 0, len(likedIDs))
	for _, id := range likedIDs {
		if row, ok := m.movies.Lookup(id); ok {
			liked = append(liked, m.rows[row])
		} else {
			slog.Debug("liked movie not in fitted catalog, dropped", slog.Int64("movie_id", id))
		}
	}
	if len(liked) == 0 {
		slog.Warn("no liked movies resolved against fitted catalog",
			slog.Int("requested", len(likedIDs)))
		return []*entity.Recommendation{}, nil
	}

	exclude := make(map[int64]struct{}, len(excludeIDs)+len(likedIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}
	for _, id := range likedIDs {
		exclude[id] = struct{}{}
	}

	profile := Centroid(liked)
	candidates := make([]MovieSimilarity, 0, m.movies.Len())
	for i := range m.rows {
		id := m.movies.At(i)
		if _, skip := exclude[id]; skip {
			continue
		}
		candidates = append(candidates, MovieSimilarity{
			MovieID:    id,
			Similarity: Cosine(profile, m.rows[i]),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	recs := make([]*entity.Recommendation, len(candidates))
	for i, c := range candidates {
		recs[i] = &entity.Recommendation{
			MovieID:   c.MovieID,
			Algorithm: entity.AlgorithmContentBased,
			Rank:      i + 1,
			ComponentScores: map[string]float64{
				"content_raw": c.Similarity,
			},
		}
	}
	m.applyContentBand(recs, candidates)
	return recs, nil
}

// applyContentBand rescales the batch's raw scores into the content display
// band and fills the explanation. A zero score range (including a single
// resolved liked movie producing identical similarities) flattens the batch to
// the band's mid score.
func (m *ContentModel) applyContentBand(recs []*entity.Recommendation, candidates []MovieSimilarity) {
	if len(recs) == 0 {
		return
	}
	band := m.cfg.ContentBand
	lo, hi := candidates[len(candidates)-1].Similarity, candidates[0].Similarity

	for i, rec := range recs {
		var display float64
		if hi == lo {
			display = band.Flat
		} else {
			span := band.Ceiling - band.Floor - m.cfg.RankBonusCap
			display = band.Floor + (candidates[i].Similarity-lo)/(hi-lo)*span + m.cfg.rankBonus(rec.Rank)
			if display > band.Ceiling {
				display = band.Ceiling
			}
		}
		rec.Score = display
		rec.Explanation = fmt.Sprintf("Similar to movies you've liked (content match: %.0f%%)", display*100)
	}
}
