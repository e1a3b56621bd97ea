package match

import "errors"

var (
	// ErrIndexRequired is returned when a Matcher is built without an index.
	ErrIndexRequired = errors.New("search index is required")
)
