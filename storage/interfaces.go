package storage

import (
	"context"

	"github.com/candorlabs/qanswer/core"
)

// EntryRepository provides persistence for knowledge entries.
// Implementations must be thread-safe and support concurrent access.
type EntryRepository interface {
	// AddEntries adds one or more knowledge entries to storage.
	// Entries are validated; IDs are always generated from the sequence.
	// Entries whose content fingerprint is already stored are silently
	// skipped. Returns the entries actually added, with IDs populated.
	AddEntries(ctx context.Context, entries ...*core.KnowledgeEntry) ([]*core.KnowledgeEntry, error)

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.KnowledgeEntry, error)

	// ListEntries retrieves all stored entries, ordered by ID ascending.
	ListEntries(ctx context.Context) ([]*core.KnowledgeEntry, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}
