package fixtures

import (
	"time"

	"cineswipe/internal/domain/entity"
)

// SwipeOption is a functional option for customizing test swipe events.
type SwipeOption func(*entity.InteractionEvent)

// NewTestSwipe creates a valid InteractionEvent with sensible defaults.
//
// Example:
//
//	ev := NewTestSwipe()
//	ev := NewTestSwipe(WithUser(7), WithOutcome(entity.OutcomeDislike))
func NewTestSwipe(opts ...SwipeOption) *entity.InteractionEvent {
	ev := &entity.InteractionEvent{
		UserID:    1,
		MovieID:   1,
		Outcome:   entity.OutcomeLike,
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(ev)
	}

	return ev
}

// WithUser sets the user ID.
func WithUser(id int64) SwipeOption {
	return func(ev *entity.InteractionEvent) {
		ev.UserID = id
	}
}

// WithSwipedMovie sets the movie ID.
func WithSwipedMovie(id int64) SwipeOption {
	return func(ev *entity.InteractionEvent) {
		ev.MovieID = id
	}
}

// WithOutcome sets the swipe outcome.
func WithOutcome(outcome entity.Outcome) SwipeOption {
	return func(ev *entity.InteractionEvent) {
		ev.Outcome = outcome
	}
}

// SampleSwipeLog returns a swipe log over SampleCatalog with three users:
// two sci-fi fans with overlapping taste and one romance fan.
func SampleSwipeLog() []*entity.InteractionEvent {
	return []*entity.InteractionEvent{
		NewTestSwipe(WithUser(1), WithSwipedMovie(1), WithOutcome(entity.OutcomeLike)),
		NewTestSwipe(WithUser(1), WithSwipedMovie(2), WithOutcome(entity.OutcomeSuperlike)),
		NewTestSwipe(WithUser(1), WithSwipedMovie(5), WithOutcome(entity.OutcomeDislike)),
		NewTestSwipe(WithUser(2), WithSwipedMovie(1), WithOutcome(entity.OutcomeLike)),
		NewTestSwipe(WithUser(2), WithSwipedMovie(3), WithOutcome(entity.OutcomeLike)),
		NewTestSwipe(WithUser(3), WithSwipedMovie(5), WithOutcome(entity.OutcomeSuperlike)),
		NewTestSwipe(WithUser(3), WithSwipedMovie(4), WithOutcome(entity.OutcomeDislike)),
	}
}
