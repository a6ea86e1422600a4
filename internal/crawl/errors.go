package crawl

import "fmt"

// ListingError represents a failure fetching or parsing one source's
// listing page.
type ListingError struct {
	Source string
	Cause  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing error for source %s: %v", e.Source, e.Cause)
}

func (e *ListingError) Unwrap() error {
	return e.Cause
}
