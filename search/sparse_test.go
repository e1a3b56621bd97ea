package search

import (
	"testing"

	"github.com/candorlabs/qanswer/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []*core.KnowledgeEntry {
	return []*core.KnowledgeEntry{
		{DocumentName: "KB", Section: "Hosting", RowNumber: 5,
			Question: "Where is the platform hosted?",
			Answer:   "Hosted on a public cloud in the UAE region."},
		{DocumentName: "KB", Section: "Security", RowNumber: 9,
			Question: "Is customer data encrypted at rest?",
			Answer:   "All customer data is encrypted at rest using AES-256."},
		{DocumentName: "Vendor", Section: "Integration", RowNumber: 12,
			Question: "Do you provide an SDK for integration?",
			Answer:   "We do not recommend SDK usage; the platform is API-first with REST and websocket interfaces."},
	}
}

func newTestIndex(t *testing.T, entries []*core.KnowledgeEntry, opts ...Option) *Index {
	t.Helper()
	store, err := NewStore(entries)
	require.NoError(t, err)
	ix, err := NewIndex(store, opts...)
	require.NoError(t, err)
	return ix
}

func TestNewIndex(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewIndex(nil)
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("invalid weights", func(t *testing.T) {
		store, err := NewStore(nil)
		require.NoError(t, err)
		_, err = NewIndex(store, WithWeights(Weights{Question: 0.5, Combined: 0, Answer: 0.5}))
		assert.Equal(t, ErrInvalidWeights, err)
	})

	t.Run("empty store builds an empty index", func(t *testing.T) {
		ix := newTestIndex(t, nil)
		assert.Equal(t, 0, ix.EntryCount())
		assert.Equal(t, 0, ix.VocabularySize())
		assert.Nil(t, ix.Search("anything at all", 5))
	})
}

func TestSearch(t *testing.T) {
	ix := newTestIndex(t, testEntries())

	t.Run("finds the relevant entry", func(t *testing.T) {
		results := ix.Search("Is the platform hosted on AWS in UAE?", 5)
		require.NotEmpty(t, results)
		assert.Equal(t, "Hosting", results[0].Entry.Section)
	})

	t.Run("scores are positive and bounded", func(t *testing.T) {
		results := ix.Search("where is the platform hosted", 10)
		require.NotEmpty(t, results)
		for _, r := range results {
			assert.Greater(t, r.Score, 0.0)
			assert.LessOrEqual(t, r.Score, 1.0)
		}
	})

	t.Run("results are ordered by score", func(t *testing.T) {
		results := ix.Search("encrypted customer data platform", 10)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	})

	t.Run("unknown terms vanish silently", func(t *testing.T) {
		results := ix.Search("zzyzx quuxium frobnicate", 5)
		assert.Empty(t, results)
	})

	t.Run("malformed query does not fail", func(t *testing.T) {
		assert.NotPanics(t, func() {
			ix.Search("???!!! @@ ##", 5)
			ix.Search("", 5)
		})
	})

	t.Run("topK caps the result set", func(t *testing.T) {
		results := ix.Search("platform data integration", 1)
		assert.LessOrEqual(t, len(results), 1)
	})

	t.Run("zero topK returns nothing", func(t *testing.T) {
		assert.Nil(t, ix.Search("platform", 0))
	})
}

func TestSearchSingleEntryPool(t *testing.T) {
	// A pool with one entry must still build a usable vocabulary despite
	// every term exceeding the document-share cutoff.
	ix := newTestIndex(t, []*core.KnowledgeEntry{
		{DocumentName: "KB", Section: "Hosting", RowNumber: 5,
			Question: "Where is the platform hosted?",
			Answer:   "Hosted on a public cloud in the UAE region."},
	})

	require.Greater(t, ix.VocabularySize(), 0)

	results := ix.Search("Is the platform hosted on AWS in UAE?", 5)
	require.Len(t, results, 1)
	assert.Equal(t, "[KB > Hosting > Row 5]", results[0].Entry.Citation())
}

func TestSearchTieOrderIsStable(t *testing.T) {
	// Two entries with identical text score identically; the original
	// insertion order decides.
	entries := []*core.KnowledgeEntry{
		{DocumentName: "KB", Section: "A", RowNumber: 2,
			Question: "Do you support single sign on?",
			Answer:   "Single sign on is supported via OAuth."},
		{DocumentName: "KB", Section: "B", RowNumber: 3,
			Question: "Do you support single sign on?",
			Answer:   "Single sign on is supported via OAuth."},
	}
	ix := newTestIndex(t, entries)

	results := ix.Search("single sign on support", 5)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Entry.Section)
	assert.Equal(t, "B", results[1].Entry.Section)
}

func TestSearchWeightsFavorQuestions(t *testing.T) {
	entries := []*core.KnowledgeEntry{
		{DocumentName: "KB", Section: "QSide", RowNumber: 2,
			Question: "backup retention policy",
			Answer:   "Thirty days of storage are kept."},
		{DocumentName: "KB", Section: "ASide", RowNumber: 3,
			Question: "What about stored copies?",
			Answer:   "backup retention policy"},
	}
	ix := newTestIndex(t, entries)

	results := ix.Search("backup retention policy", 5)
	require.Len(t, results, 2)
	assert.Equal(t, "QSide", results[0].Entry.Section)
}

func TestKeywordSearch(t *testing.T) {
	ix := newTestIndex(t, testEntries())

	t.Run("answer hits outrank question hits", func(t *testing.T) {
		results := ix.KeywordSearch([]string{"aes-256"}, 5)
		require.Len(t, results, 1)
		assert.Equal(t, "Security", results[0].Entry.Section)
		assert.Equal(t, 1.0, results[0].Score)
	})

	t.Run("no hits", func(t *testing.T) {
		assert.Nil(t, ix.KeywordSearch([]string{"nonexistent"}, 5))
	})
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Where IS the platform hosted, on-premises or SaaS?")
	assert.Equal(t, []string{"platform", "hosted", "premises", "saas"}, tokens)
}

func TestTerms(t *testing.T) {
	got := terms([]string{"platform", "hosted", "uae"})
	assert.Equal(t, []string{"platform", "hosted", "uae", "platform hosted", "hosted uae"}, got)

	assert.Nil(t, terms(nil))
}
