package qanswer

import "errors"

// ErrNoRepository is returned when a persistence operation is requested
// on a service built without backing storage.
var ErrNoRepository = errors.New("service has no entry repository")
