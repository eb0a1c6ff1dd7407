// Command diagnose_letterboxd probes the public Letterboxd ratings feeds of
// the given usernames and reports whether each one is reachable and parseable.
// Useful when imports start failing and the question is "us or them".
//
// Usage:
//
//	go run scripts/diagnose_letterboxd.go alice bob carol
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedDiagnostic represents the diagnostic result for a single user's feed.
type FeedDiagnostic struct {
	Username     string `json:"username"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT"
	HTTPCode     int    `json:"http_code"`
	ItemCount    int    `json:"item_count"`
	RatedCount   int    `json:"rated_count"`
	LatestDate   string `json:"latest_date"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	usernames := os.Args[1:]
	if len(usernames) == 0 {
		log.Fatal("usage: diagnose_letterboxd <username> [username...]")
	}

	log.Printf("Diagnosing %d Letterboxd feeds...\n", len(usernames))

	diagnostics := make([]FeedDiagnostic, 0, len(usernames))
	for i, username := range usernames {
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(usernames), username)
		diagnostics = append(diagnostics, diagnoseFeed(username, 30*time.Second))

		// Rate limiting to be nice to Letterboxd
		time.Sleep(500 * time.Millisecond)
	}

	generateReport(diagnostics)
	generateJSONReport(diagnostics)
}

func diagnoseFeed(username string, timeout time.Duration) FeedDiagnostic {
	url := fmt.Sprintf("https://letterboxd.com/%s/rss/", strings.ToLower(strings.TrimSpace(username)))
	diag := FeedDiagnostic{Username: username, URL: url}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	resp, err := http.DefaultClient.Do(req)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
		} else {
			diag.Status = "HTTP_ERROR"
		}
		diag.ErrorMessage = err.Error()
		return diag
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	diag.HTTPCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return diag
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.ItemCount = len(feed.Items)
	for _, item := range feed.Items {
		// Rated entries carry a trailing star rating in the title.
		if strings.ContainsAny(item.Title, "★½") {
			diag.RatedCount++
		}
	}
	if len(feed.Items) > 0 && feed.Items[0].PublishedParsed != nil {
		diag.LatestDate = feed.Items[0].PublishedParsed.Format(time.RFC3339)
	}

	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
	} else {
		diag.Status = "OK"
	}
	return diag
}

func generateReport(diagnostics []FeedDiagnostic) {
	fmt.Println("\n=== Letterboxd Feed Diagnostics ===")
	for _, d := range diagnostics {
		fmt.Printf("%-20s %-12s items=%-4d rated=%-4d %4dms", d.Username, d.Status, d.ItemCount, d.RatedCount, d.ResponseTime)
		if d.ErrorMessage != "" {
			fmt.Printf("  (%s)", d.ErrorMessage)
		}
		fmt.Println()
	}
}

func generateJSONReport(diagnostics []FeedDiagnostic) {
	data, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal JSON report: %v", err)
		return
	}
	if err := os.WriteFile("letterboxd_diagnostics.json", data, 0o644); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}
	log.Println("JSON report written to letterboxd_diagnostics.json")
}
