package ncaa

import "errors"

var (
	// ErrRetriesExhausted means a page could not be fetched within the retry
	// budget. It is the only fetch error that should stop a season crawl.
	ErrRetriesExhausted = errors.New("fetch retries exhausted")
	// ErrNoTables means the page carried no tables at all.
	ErrNoTables = errors.New("page has no tables")
	// ErrUnexpectedLayout means tables were found but not the expected ones.
	ErrUnexpectedLayout = errors.New("unexpected page layout")
)
