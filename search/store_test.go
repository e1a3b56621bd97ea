package search

import (
	"testing"

	"github.com/candorlabs/qanswer/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("assigns monotonic ids", func(t *testing.T) {
		entries := []*core.KnowledgeEntry{
			{DocumentName: "KB", Section: "A", RowNumber: 2, Question: "First question?", Answer: "First stored answer."},
			{DocumentName: "KB", Section: "A", RowNumber: 3, Question: "Second question?", Answer: "Second stored answer."},
		}
		store, err := NewStore(entries)
		require.NoError(t, err)

		assert.Equal(t, core.ID(1), entries[0].Id)
		assert.Equal(t, core.ID(2), entries[1].Id)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("keeps preassigned ids", func(t *testing.T) {
		entries := []*core.KnowledgeEntry{
			{Id: 10, DocumentName: "KB", Section: "A", RowNumber: 2, Question: "First question?", Answer: "First stored answer."},
			{DocumentName: "KB", Section: "A", RowNumber: 3, Question: "Second question?", Answer: "Second stored answer."},
		}
		_, err := NewStore(entries)
		require.NoError(t, err)

		assert.Equal(t, core.ID(10), entries[0].Id)
		assert.Equal(t, core.ID(11), entries[1].Id)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		entries := []*core.KnowledgeEntry{
			{Id: 3, DocumentName: "KB", Section: "A", RowNumber: 2, Question: "First question?", Answer: "First stored answer."},
			{Id: 3, DocumentName: "KB", Section: "A", RowNumber: 3, Question: "Second question?", Answer: "Second stored answer."},
		}
		_, err := NewStore(entries)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("rejects invalid entries", func(t *testing.T) {
		entries := []*core.KnowledgeEntry{
			{DocumentName: "KB", Section: "A", RowNumber: 2, Question: "A question?", Answer: "n/a"},
		}
		_, err := NewStore(entries)
		assert.ErrorIs(t, err, core.ErrAnswerTooShort)
	})

	t.Run("empty pool is valid", func(t *testing.T) {
		store, err := NewStore(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, store.Len())
	})
}

func TestStoreLookup(t *testing.T) {
	entries := []*core.KnowledgeEntry{
		{DocumentName: "KB", Section: "Hosting", RowNumber: 5, Question: "Where is the platform hosted?", Answer: "Hosted on a public cloud in the UAE region."},
		{DocumentName: "Vendor", Section: "Security", RowNumber: 7, Question: "Is data encrypted?", Answer: "All data is encrypted at rest and in transit."},
	}
	store, err := NewStore(entries)
	require.NoError(t, err)

	got, ok := store.Get(entries[1].Id)
	require.True(t, ok)
	assert.Equal(t, entries[1], got)

	_, ok = store.Get(999)
	assert.False(t, ok)
}

func TestStoreStats(t *testing.T) {
	entries := []*core.KnowledgeEntry{
		{DocumentName: "KB", Section: "Hosting", RowNumber: 2, Question: "Question one here?", Answer: "Answer number one."},
		{DocumentName: "KB", Section: "Hosting", RowNumber: 3, Question: "Question two here?", Answer: "Answer number two."},
		{DocumentName: "KB", Section: "Security", RowNumber: 4, Question: "Question three here?", Answer: "Answer number three."},
		{DocumentName: "Vendor", Section: "Hosting", RowNumber: 2, Question: "Question four here?", Answer: "Answer number four."},
	}
	store, err := NewStore(entries)
	require.NoError(t, err)

	counts := store.DocumentCounts()
	assert.Equal(t, 3, counts["KB"])
	assert.Equal(t, 1, counts["Vendor"])
	assert.Equal(t, 3, store.SectionCount())
}
