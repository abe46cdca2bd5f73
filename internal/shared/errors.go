package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")
	ErrFeedUnavailable    = fmt.Errorf("feed unavailable")
	ErrRateLimited        = fmt.Errorf("rate limited")

	// Checkpoint errors
	ErrNoCheckpoint = fmt.Errorf("no checkpoint recorded")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
