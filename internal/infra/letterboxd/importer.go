// Package letterboxd fetches a user's public Letterboxd ratings feed and
// turns the rated films into swipe events. It uses the gofeed library with
// circuit breaker and retry logic, since Letterboxd throttles scrapers.
package letterboxd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/resilience/circuitbreaker"
	"cineswipe/internal/resilience/retry"
)

const baseURL = "https://letterboxd.com"

// likeThreshold is the star rating at which a film counts as liked.
const likeThreshold = 3.5

// ratingSuffix matches the trailing " - ★★★½" part of a feed entry title.
var ratingSuffix = regexp.MustCompile(`\s*-\s*[★½].*$`)

// RatedFilm is one parsed entry from a ratings feed.
type RatedFilm struct {
	Title string
	Stars float64
	Liked bool
}

// Fetcher retrieves and parses Letterboxd RSS feeds.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFetcher creates a Fetcher with the given HTTP client.
func NewFetcher(client *http.Client) *Fetcher {
	return &Fetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.LetterboxdConfig()),
		retryConfig:    retry.LetterboxdConfig(),
	}
}

// FetchRatings retrieves the user's rated films, newest first. Entries
// without a star rating are skipped; duplicate titles keep the first entry.
func (f *Fetcher) FetchRatings(ctx context.Context, username string) ([]RatedFilm, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < 2 {
		return nil, fmt.Errorf("FetchRatings: %w: username too short", entity.ErrInvalidInput)
	}
	feedURL := fmt.Sprintf("%s/%s/films/ratings/rss/", baseURL, username)

	var films []RatedFilm
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("letterboxd circuit breaker open, request rejected",
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}
		films = cbResult.([]RatedFilm)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("FetchRatings: %w", retryErr)
	}

	return films, nil
}

func (f *Fetcher) doFetch(ctx context.Context, feedURL string) ([]RatedFilm, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "CineSwipeBot"
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	films := make([]RatedFilm, 0, len(feed.Items))
	seen := make(map[string]bool, len(feed.Items))
	for _, it := range feed.Items {
		film, ok := ParseRatingTitle(it.Title)
		if !ok || seen[film.Title] {
			continue
		}
		seen[film.Title] = true
		films = append(films, film)
	}

	return films, nil
}

// ParseRatingTitle parses a ratings-feed entry title of the form
// "Movie Title - ★★★½". Titles with no stars report ok false.
func ParseRatingTitle(title string) (RatedFilm, bool) {
	stars := float64(strings.Count(title, "★"))
	if strings.Contains(title, "½") {
		stars += 0.5
	}
	if stars == 0 {
		return RatedFilm{}, false
	}

	clean := strings.TrimSpace(ratingSuffix.ReplaceAllString(title, ""))
	if clean == "" {
		return RatedFilm{}, false
	}

	return RatedFilm{
		Title: clean,
		Stars: stars,
		Liked: stars >= likeThreshold,
	}, true
}

// Outcome maps a star rating onto a swipe outcome. Films at or above the
// like threshold become likes, five-star films superlikes, the rest dislikes.
func (f RatedFilm) Outcome() entity.Outcome {
	switch {
	case f.Stars >= 5:
		return entity.OutcomeSuperlike
	case f.Liked:
		return entity.OutcomeLike
	default:
		return entity.OutcomeDislike
	}
}
