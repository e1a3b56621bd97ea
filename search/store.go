package search

import (
	"fmt"

	"github.com/candorlabs/qanswer/core"
)

// Store holds the immutable pool of knowledge entries. It owns the entries
// exclusively: IDs are assigned monotonically at construction and never
// reused, and the pool cannot be modified afterwards.
type Store struct {
	entries []*core.KnowledgeEntry
	byID    map[core.ID]*core.KnowledgeEntry
}

// NewStore builds an entry store from a flat entry list. Every entry is
// validated; entries with ID 0 are assigned the next monotonic ID. Entry
// order is preserved, which also fixes the tie-break order of index search
// results.
func NewStore(entries []*core.KnowledgeEntry) (*Store, error) {
	byID := make(map[core.ID]*core.KnowledgeEntry, len(entries))

	var nextID core.ID = 1
	for _, entry := range entries {
		if entry.Id >= nextID {
			nextID = entry.Id + 1
		}
	}

	for i, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if entry.Id == 0 {
			entry.Id = nextID
			nextID++
		}
		if _, exists := byID[entry.Id]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, entry.Id)
		}
		byID[entry.Id] = entry
	}

	return &Store{entries: entries, byID: byID}, nil
}

// Entries returns the entry pool in insertion order. The returned slice is
// shared and must be treated as read-only.
func (s *Store) Entries() []*core.KnowledgeEntry {
	return s.entries
}

// Get returns the entry with the given ID.
func (s *Store) Get(id core.ID) (*core.KnowledgeEntry, bool) {
	entry, ok := s.byID[id]
	return entry, ok
}

// Len returns the number of entries in the pool.
func (s *Store) Len() int {
	return len(s.entries)
}

// DocumentCounts returns the number of entries per source document.
func (s *Store) DocumentCounts() map[string]int {
	counts := make(map[string]int)
	for _, entry := range s.entries {
		counts[entry.DocumentName]++
	}
	return counts
}

// SectionCount returns the number of distinct (document, section) pairs.
func (s *Store) SectionCount() int {
	sections := make(map[string]struct{})
	for _, entry := range s.entries {
		sections[entry.DocumentName+":"+entry.Section] = struct{}{}
	}
	return len(sections)
}
