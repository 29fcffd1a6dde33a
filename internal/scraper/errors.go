package scraper

import "errors"

// The fatal error set. Everything else in the extraction layer is a soft
// failure: logged, swallowed at the smallest enclosing scope and replaced by
// an empty or placeholder value.
var (
	// ErrNotInitialized is returned when an extraction call is made against
	// a session that was never started (or already closed).
	ErrNotInitialized = errors.New("scraper: session not initialized")

	// ErrMissingCredentials is returned before any navigation when the
	// login email or password is empty.
	ErrMissingCredentials = errors.New("scraper: login credentials are not set")
)
