package entity

// Algorithm identifies which engine produced a recommendation.
type Algorithm string

// Recommendation algorithms.
const (
	AlgorithmContentBased  Algorithm = "content_based"
	AlgorithmCollaborative Algorithm = "collaborative"
	AlgorithmHybrid        Algorithm = "hybrid"
	AlgorithmPopular       Algorithm = "popular"
)

// Weights is the blend applied by the hybrid fusion layer for one request.
type Weights struct {
	Content       float64
	Collaborative float64
}

// Recommendation is one ranked entry of a recommendation result list.
//
// Score is the displayed score in [0,1]. ComponentScores keeps the raw
// sub-engine contributions (keys such as "content_raw", "collaborative",
// "combined") so the presentation rescaling never hides the internal numbers.
// Rank is 1-based and dense within a result list.
type Recommendation struct {
	MovieID         int64
	Score           float64
	Algorithm       Algorithm
	Rank            int
	Explanation     string
	ComponentScores map[string]float64
	WeightsUsed     *Weights
}
