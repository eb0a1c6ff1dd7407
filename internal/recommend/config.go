// Package recommend implements the hybrid movie recommendation core: a TF-IDF
// content model, a k-nearest-neighbor collaborative model over the user×movie
// interaction matrix, and the fusion layer that blends both with adaptive
// weights. All models are batch-fitted and read-only afterwards, so one fitted
// instance can serve concurrent queries without locking.
package recommend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Band is a presentation band for displayed scores. Raw cosine similarities over
// sparse high-dimensional vectors cluster in a narrow low range and mean nothing
// as a "percent match" to an end user, so the top-n raw scores are linearly
// rescaled into [Floor, Ceiling]. Flat is used when the batch has a zero score
// range. The bounds are a UX decision, not a statistical one; raw scores are
// always kept in ComponentScores.
type Band struct {
	Floor   float64 `yaml:"floor"`
	Ceiling float64 `yaml:"ceiling"`
	Flat    float64 `yaml:"flat"`
}

// Config holds the tunable parameters of the recommendation core.
type Config struct {
	// VocabSize caps the TF-IDF vocabulary at the top-N terms by document
	// frequency.
	VocabSize int `yaml:"vocab_size"`

	// Neighbors is the k of the collaborative k-nearest-neighbor lookup,
	// bounded at fit time by the number of distinct users.
	Neighbors int `yaml:"neighbors"`

	// ContentWeight and CollaborativeWeight are the default hybrid blend used
	// once a user has at least 20 interactions. Below that the adaptive
	// schedule in WeightsFor applies.
	ContentWeight       float64 `yaml:"content_weight"`
	CollaborativeWeight float64 `yaml:"collaborative_weight"`

	// ContentBand and HybridBand are the display bands for content-based and
	// hybrid result lists.
	ContentBand Band `yaml:"content_band"`
	HybridBand  Band `yaml:"hybrid_band"`

	// RankBonusStep and RankBonusCap shape the small monotonically-decreasing
	// bonus added to earlier ranks inside a display band.
	RankBonusStep float64 `yaml:"rank_bonus_step"`
	RankBonusCap  float64 `yaml:"rank_bonus_cap"`

	// RatingHintBoost is added (capped at the band ceiling) when external
	// rating hints report at least RatingHintThreshold imported ratings.
	RatingHintBoost     float64 `yaml:"rating_hint_boost"`
	RatingHintThreshold int     `yaml:"rating_hint_threshold"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		VocabSize:           5000,
		Neighbors:           20,
		ContentWeight:       0.4,
		CollaborativeWeight: 0.6,
		ContentBand:         Band{Floor: 0.70, Ceiling: 0.95, Flat: 0.85},
		HybridBand:          Band{Floor: 0.75, Ceiling: 0.98, Flat: 0.85},
		RankBonusStep:       0.005,
		RankBonusCap:        0.02,
		RatingHintBoost:     0.03,
		RatingHintThreshold: 20,
	}
}

// ConfigFromFile reads a YAML config file and overlays it on the defaults.
// An empty path returns the defaults unchanged, so deployments without a
// tuning file need no special casing. The merged config is validated.
func ConfigFromFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ConfigFromFile: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("ConfigFromFile: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("ConfigFromFile: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engines cannot work with.
func (c Config) Validate() error {
	if c.VocabSize <= 0 {
		return errConfig("vocab_size must be positive")
	}
	if c.Neighbors <= 0 {
		return errConfig("neighbors must be positive")
	}
	if c.ContentWeight < 0 || c.CollaborativeWeight < 0 {
		return errConfig("weights must not be negative")
	}
	for _, b := range []Band{c.ContentBand, c.HybridBand} {
		if b.Floor < 0 || b.Ceiling > 1 || b.Floor >= b.Ceiling {
			return errConfig("band bounds must satisfy 0 <= floor < ceiling <= 1")
		}
		if b.Flat < b.Floor || b.Flat > b.Ceiling {
			return errConfig("band flat score must lie inside the band")
		}
	}
	return nil
}

type configError string

func errConfig(msg string) error { return configError(msg) }

func (e configError) Error() string { return "recommend config: " + string(e) }

// rankBonus returns the bonus for a 1-based rank: RankBonusCap at rank 1,
// decreasing by RankBonusStep per rank, never below zero. Adding a decreasing
// bonus to an already-descending score list preserves the ranking order.
func (c Config) rankBonus(rank int) float64 {
	bonus := c.RankBonusCap - float64(rank-1)*c.RankBonusStep
	if bonus < 0 {
		return 0
	}
	return bonus
}
