// Package resilience provides fault tolerance patterns for calls that leave
// the process: circuit breakers and retry with exponential backoff.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.LetterboxdConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchFeed()
//	})
//
//	err := retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
//	    return performOperation()
//	})
package resilience
