package qanswer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/match"
)

func serviceEntries() []*core.KnowledgeEntry {
	return []*core.KnowledgeEntry{
		{
			Id:           1,
			DocumentName: "KB",
			Section:      "Hosting",
			RowNumber:    5,
			Question:     "Where is the platform hosted?",
			Answer:       "The platform is hosted on AWS in the me-central-1 (UAE) region.",
		},
		{
			Id:           2,
			DocumentName: "KB",
			Section:      "Security",
			RowNumber:    9,
			Question:     "Is data encrypted at rest?",
			Answer:       "Yes, all customer data is encrypted at rest using AES-256.",
		},
		{
			Id:           3,
			DocumentName: "Vendor",
			Section:      "Integration",
			RowNumber:    12,
			Question:     "Do you provide a mobile SDK?",
			Answer:       "We do not recommend SDK usage; the platform is API-first.",
		},
	}
}

func TestServiceFromEntries(t *testing.T) {
	svc, err := NewServiceFromEntries(serviceEntries())
	require.NoError(t, err)
	defer svc.Close()

	result := svc.Match(context.Background(), "Is the platform hosted on AWS in UAE?", "")
	require.NotNil(t, result.Answer)
	assert.Equal(t, core.AnswerStored, result.Answer.Kind)
	assert.Equal(t, "[KB > Hosting > Row 5]", result.Evidence)
	assert.Contains(t, []core.Level{core.LevelMedium, core.LevelHigh}, result.ConfidenceLevel)
	assert.Contains(t, result.Answer.Text(), "AWS")
}

func TestServiceStats(t *testing.T) {
	svc, err := NewServiceFromEntries(serviceEntries())
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 3, svc.EntryCount())
	assert.Greater(t, svc.VocabularySize(), 0)
	assert.Equal(t, map[string]int{"KB": 2, "Vendor": 1}, svc.DocumentStats())
	assert.Equal(t, 3, svc.SectionCount())
}

func TestServiceBatchMatch(t *testing.T) {
	svc, err := NewServiceFromEntries(serviceEntries())
	require.NoError(t, err)
	defer svc.Close()

	questions := []match.BatchQuestion{
		{Question: "Is the platform hosted on AWS in UAE?"},
		{Question: "Is customer data encrypted at rest?"},
		{Question: ""},
	}

	results, err := svc.BatchMatch(context.Background(), questions, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "[KB > Hosting > Row 5]", results[0].Evidence)
	assert.Equal(t, "[KB > Security > Row 9]", results[1].Evidence)
	assert.Equal(t, core.LevelReview, results[2].ConfidenceLevel)
}

func TestServiceInMemoryHasNoRepository(t *testing.T) {
	svc, err := NewServiceFromEntries(serviceEntries())
	require.NoError(t, err)
	defer svc.Close()

	assert.Nil(t, svc.Repository())
	assert.ErrorIs(t, svc.Reindex(context.Background()), ErrNoRepository)
	_, err = svc.NewLoader()
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestServicePersistence(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "kb")

	doc := "Section,Question,Answer\n" +
		"Hosting,Where is the platform hosted?,The platform is hosted on AWS in the me-central-1 (UAE) region.\n"
	csvPath := filepath.Join(dir, "KB.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(doc), 0o644))

	svc, err := NewService(dbPath)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.EntryCount())

	loader, err := svc.NewLoader()
	require.NoError(t, err)

	ctx := context.Background()
	loaded, err := loader.LoadFile(ctx, csvPath)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Added)

	require.NoError(t, svc.Reindex(ctx))
	assert.Equal(t, 1, svc.EntryCount())
	require.NoError(t, svc.Close())

	// Entries survive a reopen.
	svc, err = NewService(dbPath)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 1, svc.EntryCount())
	result := svc.Match(ctx, "Is the platform hosted on AWS in UAE?", "")
	assert.Equal(t, "[KB > Hosting > Row 2]", result.Evidence)
}
