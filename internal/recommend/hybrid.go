package recommend

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"cineswipe/internal/domain/entity"
)

// RatingHints carries auxiliary external rating signals for one user, such as
// ratings imported from a third-party profile. Purely a UX framing input: a
// richly-rated user gets a small bounded boost to displayed scores.
type RatingHints struct {
	ImportedRatings int
}

// HybridRequest is one hybrid recommendation query.
type HybridRequest struct {
	UserID           int64
	LikedMovieIDs    []int64
	N                int
	ExcludeIDs       []int64
	InteractionCount int
	// Hints is optional; nil means no external rating signal.
	Hints *RatingHints
}

// HybridModel is the top-level fusion layer. It owns a content engine and an
// optional collaborative engine, computes adaptive blend weights from the
// user's interaction count, merges both candidate lists, and emits a ranked,
// explained recommendation list.
type HybridModel struct {
	cfg     Config
	content *ContentModel
	collab  *CollaborativeModel
	fitted  bool
}

// NewHybridModel creates an unfitted hybrid model.
func NewHybridModel(cfg Config) *HybridModel {
	return &HybridModel{
		cfg:     cfg,
		content: NewContentModel(cfg),
		collab:  NewCollaborativeModel(cfg),
	}
}

// Config returns the configuration the model was built with.
func (m *HybridModel) Config() Config { return m.cfg }

// Fitted reports whether Fit has completed.
func (m *HybridModel) Fitted() bool { return m.fitted }

// CollaborativeAvailable reports whether the collaborative sub-engine was
// fitted. When false every hybrid result is driven entirely by content scores.
func (m *HybridModel) CollaborativeAvailable() bool { return m.collab.Fitted() }

// Fit always fits the content engine; the collaborative engine is fitted only
// when at least one interaction event is supplied, otherwise it stays
// unavailable for the lifetime of this instance. That state is logged, not
// fatal: a catalog with no swipe history is a normal launch condition.
func (m *HybridModel) Fit(movies []*entity.Movie, events []*entity.InteractionEvent) error {
	if err := m.content.Fit(movies); err != nil {
		return fmt.Errorf("Fit: content: %w", err)
	}
	if len(events) == 0 {
		slog.Warn("no interaction events, collaborative filtering disabled for this model")
		m.fitted = true
		return nil
	}
	if err := m.collab.Fit(events); err != nil {
		return fmt.Errorf("Fit: collaborative: %w", err)
	}
	m.fitted = true
	return nil
}

// WeightsFor returns the adaptive blend for a user with the given interaction
// count: a brand-new user has no reliable collaborative signal so content
// dominates, and collaborative signal is trusted more as history accumulates.
func (m *HybridModel) WeightsFor(interactionCount int) entity.Weights {
	switch {
	case interactionCount < 5:
		return entity.Weights{Content: 0.9, Collaborative: 0.1}
	case interactionCount < 20:
		return entity.Weights{Content: 0.6, Collaborative: 0.4}
	default:
		return entity.Weights{Content: m.cfg.ContentWeight, Collaborative: m.cfg.CollaborativeWeight}
	}
}

// GetSimilarMovies exposes the content engine's item-to-item lookup.
func (m *HybridModel) GetSimilarMovies(movieID int64, n int) ([]MovieSimilarity, error) {
	return m.content.GetSimilarMovies(movieID, n)
}

// RecommendContentBased exposes the content engine directly.
func (m *HybridModel) RecommendContentBased(likedIDs []int64, n int, excludeIDs []int64) ([]*entity.Recommendation, error) {
	return m.content.RecommendForUser(likedIDs, n, excludeIDs)
}

// RecommendCollaborative exposes the collaborative engine directly. Calling it
// on a model whose collaborative engine was never fitted returns ErrNotFitted.
func (m *HybridModel) RecommendCollaborative(userID int64, n int, excludeIDs []int64) ([]*entity.Recommendation, error) {
	return m.collab.RecommendForUser(userID, n, excludeIDs)
}

// GetSimilarUsers exposes the collaborative engine's neighbor lookup.
func (m *HybridModel) GetSimilarUsers(userID int64, n int) ([]UserSimilarity, error) {
	return m.collab.GetSimilarUsers(userID, n)
}

// candidate accumulates one movie's contributions during the merge.
type candidate struct {
	movieID    int64
	combined   float64
	order      int // first-seen position, the deterministic tie-breaker
	components map[string]float64
	parts      []string
}

// RecommendForUser runs the full fusion pipeline: adaptive weights, 2n
// over-fetch from each engine, union merge of weighted scores, top-n cut, and
// presentation rescaling. A movie absent from one engine's list simply
// contributes zero from that engine; the only hard failure is querying before
// Fit.
func (m *HybridModel) RecommendForUser(req HybridRequest) ([]*entity.Recommendation, error) {
	if !m.fitted {
		return nil, fmt.Errorf("RecommendForUser: %w", entity.ErrNotFitted)
	}
	if req.N <= 0 {
		return []*entity.Recommendation{}, nil
	}

	interactions := req.InteractionCount
	if interactions <= 0 {
		interactions = len(req.LikedMovieIDs)
	}
	weights := m.WeightsFor(interactions)

	// Over-fetch 2n from each engine so the merged list still covers n after
	// the union is re-ranked.
	var contentRecs []*entity.Recommendation
	if len(req.LikedMovieIDs) > 0 {
		var err error
		contentRecs, err = m.content.RecommendForUser(req.LikedMovieIDs, req.N*2, req.ExcludeIDs)
		if err != nil {
			return nil, fmt.Errorf("RecommendForUser: content: %w", err)
		}
	}
	var collabRecs []*entity.Recommendation
	if m.collab.Fitted() {
		var err error
		collabRecs, err = m.collab.RecommendForUser(req.UserID, req.N*2, req.ExcludeIDs)
		if err != nil {
			return nil, fmt.Errorf("RecommendForUser: collaborative: %w", err)
		}
	}

	merged := make(map[int64]*candidate, len(contentRecs)+len(collabRecs))
	ordered := make([]*candidate, 0, len(contentRecs)+len(collabRecs))
	add := func(rec *entity.Recommendation, weight float64, scoreKey string) {
		c, ok := merged[rec.MovieID]
		if !ok {
			c = &candidate{
				movieID:    rec.MovieID,
				order:      len(ordered),
				components: make(map[string]float64, 4),
			}
			merged[rec.MovieID] = c
			ordered = append(ordered, c)
		}
		c.combined += weight * rec.Score
		c.components[scoreKey] = rec.Score
		for k, v := range rec.ComponentScores {
			c.components[k] = v
		}
		c.parts = append(c.parts, rec.Explanation)
	}
	for _, rec := range contentRecs {
		add(rec, weights.Content, "content")
	}
	for _, rec := range collabRecs {
		add(rec, weights.Collaborative, "collaborative")
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].combined != ordered[j].combined {
			return ordered[i].combined > ordered[j].combined
		}
		return ordered[i].order < ordered[j].order
	})
	if len(ordered) > req.N {
		ordered = ordered[:req.N]
	}

	recs := make([]*entity.Recommendation, len(ordered))
	for i, c := range ordered {
		c.components["combined"] = c.combined
		explanation := strings.Join(c.parts, " | ")
		if explanation == "" {
			explanation = "Recommended for you"
		}
		recs[i] = &entity.Recommendation{
			MovieID:         c.movieID,
			Algorithm:       entity.AlgorithmHybrid,
			Rank:            i + 1,
			Explanation:     explanation,
			ComponentScores: c.components,
			WeightsUsed:     &weights,
		}
	}
	m.applyHybridBand(recs, ordered, req.Hints)
	return recs, nil
}

// applyHybridBand rescales the top-n combined scores into the hybrid display
// band, adds the bounded rank bonus, and applies the external-rating boost when
// the hints cross the configured threshold. Raw combined scores stay in
// ComponentScores.
func (m *HybridModel) applyHybridBand(recs []*entity.Recommendation, ordered []*candidate, hints *RatingHints) {
	if len(recs) == 0 {
		return
	}
	band := m.cfg.HybridBand
	lo, hi := ordered[len(ordered)-1].combined, ordered[0].combined

	boost := 0.0
	boosted := hints != nil && hints.ImportedRatings >= m.cfg.RatingHintThreshold
	if boosted {
		boost = m.cfg.RatingHintBoost
	}

	for i, rec := range recs {
		var display float64
		if hi == lo {
			display = band.Flat
		} else {
			span := band.Ceiling - band.Floor - m.cfg.RankBonusCap
			display = band.Floor + (ordered[i].combined-lo)/(hi-lo)*span + m.cfg.rankBonus(rec.Rank)
		}
		display += boost
		if display > band.Ceiling {
			display = band.Ceiling
		}
		rec.Score = display
		if boosted {
			rec.Explanation += fmt.Sprintf(" | Informed by your %d imported ratings", hints.ImportedRatings)
		}
	}
}
