package entity

import "time"

// Outcome is the result of a single swipe on a movie.
type Outcome string

// Supported swipe outcomes. Superlike is an optional stronger tier of like.
const (
	OutcomeLike      Outcome = "like"
	OutcomeSuperlike Outcome = "superlike"
	OutcomeDislike   Outcome = "dislike"
	OutcomeSkip      Outcome = "skip"
)

// Valid reports whether o is one of the supported outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeLike, OutcomeSuperlike, OutcomeDislike, OutcomeSkip:
		return true
	}
	return false
}

// Weight maps the outcome to the signed rating used by the interaction matrix:
// like +1, superlike +2, dislike -1, skip 0. Unknown outcomes map to 0 so a
// malformed log row degrades to "no signal" instead of poisoning the matrix.
func (o Outcome) Weight() float64 {
	switch o {
	case OutcomeLike:
		return 1
	case OutcomeSuperlike:
		return 2
	case OutcomeDislike:
		return -1
	default:
		return 0
	}
}

// InteractionEvent is one (user, movie, outcome) entry of the append-only swipe log.
// The log holds one logical event per (user, movie) pair: re-swiping the same pair
// overwrites the previous outcome rather than duplicating it.
type InteractionEvent struct {
	UserID    int64
	MovieID   int64
	Outcome   Outcome
	CreatedAt time.Time
}

// Validate checks that the event can be recorded.
func (e *InteractionEvent) Validate() error {
	if e.UserID <= 0 {
		return &ValidationError{Field: "user_id", Message: "user ID must be positive"}
	}
	if e.MovieID <= 0 {
		return &ValidationError{Field: "movie_id", Message: "movie ID must be positive"}
	}
	if !e.Outcome.Valid() {
		return &ValidationError{Field: "outcome", Message: "outcome must be like, superlike, dislike, or skip"}
	}
	return nil
}
