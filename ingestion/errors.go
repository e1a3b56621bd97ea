package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when an entry repository is not provided.
	ErrRepositoryRequired = errors.New("entry repository required")

	// ErrNoQuestionColumn is returned when no column in a document can be
	// identified as holding questions.
	ErrNoQuestionColumn = errors.New("could not detect question column")

	// ErrNoAnswerColumn is returned when no column in a document can be
	// identified as holding answers.
	ErrNoAnswerColumn = errors.New("could not detect answer column")

	// ErrEmptyDocument is returned when a document has no data rows.
	ErrEmptyDocument = errors.New("document has no data rows")
)
