package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candorlabs/qanswer/core"
)

func TestParseQuestionnaire(t *testing.T) {
	doc := strings.Join([]string{
		"Section,Vendor Queries",
		"Hosting,Is the platform hosted on AWS in UAE?",
		",Is customer data encrypted at rest?",
		"Security,what?",
		"Security,Do you support single sign on?",
	}, "\n")

	rows, err := ParseQuestionnaire(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, "Hosting", rows[0].Category)
	assert.Equal(t, "Is the platform hosted on AWS in UAE?", rows[0].Question)

	// Blank section cell carries the category forward; "what?" is too
	// short to be a question.
	assert.Equal(t, "Hosting", rows[1].Category)
	assert.Equal(t, 5, rows[2].RowNumber)
	assert.Equal(t, "Security", rows[2].Category)
}

func TestParseQuestionnaireEmpty(t *testing.T) {
	_, err := ParseQuestionnaire(strings.NewReader("Question\n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestWriteResults(t *testing.T) {
	rows := []QuestionnaireRow{
		{RowNumber: 2, Question: "Is data encrypted at rest?"},
		{RowNumber: 3, Question: "Do you hold patents?"},
	}
	results := []*core.MatchResult{
		{
			Answer:          core.StoredAnswer(&core.KnowledgeEntry{Answer: "Yes, AES-256 at rest."}),
			ConfidenceScore: 85,
			ConfidenceLevel: core.LevelMedium,
			Evidence:        "[KB > Security > Row 9]",
		},
		{
			ConfidenceScore: 0,
			ConfidenceLevel: core.LevelReview,
			Notes:           "No relevant evidence found in knowledge base.",
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteResults(&buf, rows, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Question,Answer,Confidence Score,Confidence Level,Evidence,Notes", lines[0])
	assert.Contains(t, lines[1], "Yes, AES-256 at rest.")
	assert.Contains(t, lines[1], "[KB > Security > Row 9]")
	assert.Contains(t, lines[2], "Requires Human Attention")
}
