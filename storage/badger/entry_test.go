package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/storage"
)

func testEntry(question, answer string) *core.KnowledgeEntry {
	return &core.KnowledgeEntry{
		DocumentName: "KB",
		Section:      "Hosting",
		RowNumber:    5,
		Question:     question,
		Answer:       answer,
	}
}

func TestEntryBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	entry := testEntry("Where is the platform hosted?", "The platform is hosted on AWS in me-central-1.")
	added, err := repo.AddEntries(ctx, entry)
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := repo.GetEntry(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get entry: %v", err)
	}
	if retrieved.Answer != entry.Answer {
		t.Fatalf("Expected %q, got %q", entry.Answer, retrieved.Answer)
	}
	if retrieved.Citation() != "[KB > Hosting > Row 5]" {
		t.Fatalf("Unexpected citation %q", retrieved.Citation())
	}
}

func TestEntryValidation(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	// Answer below the minimum length must be rejected before anything
	// is written.
	_, err = repo.AddEntries(ctx, testEntry("Is SSO supported?", "Yes"))
	if !errors.Is(err, core.ErrInvalidEntry) {
		t.Fatalf("Expected ErrInvalidEntry, got %v", err)
	}

	count, err := repo.CountEntries(ctx)
	if err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected empty store after rejected batch, got %d entries", count)
	}
}

func TestEntryDuplicateFingerprint(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	first := testEntry("Is data encrypted at rest?", "Yes, all data is encrypted with AES-256.")
	added, err := repo.AddEntries(ctx, first)
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(added))
	}

	// Same question/answer content from a different document is still a
	// duplicate; provenance is not part of the fingerprint.
	dup := testEntry("Is data encrypted at rest?", "Yes, all data is encrypted with AES-256.")
	dup.DocumentName = "Vendor"
	dup.RowNumber = 40

	fresh := testEntry("Do you support MFA?", "Multi-factor authentication is available for all users.")

	added, err = repo.AddEntries(ctx, dup, fresh)
	if err != nil {
		t.Fatalf("Failed to add batch: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 new entry, got %d", len(added))
	}
	if added[0].Question != fresh.Question {
		t.Fatalf("Expected the non-duplicate entry, got %q", added[0].Question)
	}

	count, err := repo.CountEntries(ctx)
	if err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 entries, got %d", count)
	}
}

func TestEntryListOrder(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	questions := []string{
		"Where is the platform hosted?",
		"Is data encrypted at rest?",
		"Do you provide an SDK?",
	}
	for _, q := range questions {
		_, err := repo.AddEntries(ctx, testEntry(q, "A sufficiently long answer for "+q))
		if err != nil {
			t.Fatalf("Failed to add entry: %v", err)
		}
	}

	entries, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != len(questions) {
		t.Fatalf("Expected %d entries, got %d", len(questions), len(entries))
	}

	for i, entry := range entries {
		if entry.Question != questions[i] {
			t.Errorf("Position %d: expected %q, got %q", i, questions[i], entry.Question)
		}
		if i > 0 && entries[i-1].Id >= entry.Id {
			t.Errorf("IDs out of order: %d then %d", entries[i-1].Id, entry.Id)
		}
	}
}

func TestEntryNotFound(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	_, err = repo.GetEntry(context.Background(), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
