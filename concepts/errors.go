package concepts

import "errors"

var (
	// ErrCounterpartyRequired is returned when an Interceptor is built
	// without a counterparty name.
	ErrCounterpartyRequired = errors.New("counterparty name is required")
)
