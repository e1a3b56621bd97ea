// Copyright 2025 Candor Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// MinAnswerLength is the minimum answer length accepted at entry creation.
// Very short answers are rejected when the entry is created, not filtered
// later during retrieval.
const MinAnswerLength = 5

// ValidateEntry validates a KnowledgeEntry according to domain rules.
//
// Validation rules:
//   - DocumentName must not be empty
//   - Question must not be empty
//   - Answer must be at least MinAnswerLength characters
//   - RowNumber must be positive
//
// NOT validated:
//   - ID (0 is valid until the store assigns one)
//   - Section (an empty section is recorded as-is)
func ValidateEntry(entry *KnowledgeEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.DocumentName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyDocumentName)
	}

	if entry.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyQuestion)
	}

	if len(entry.Answer) < MinAnswerLength {
		return fmt.Errorf("%w: %w (%d < %d)", ErrInvalidEntry, ErrAnswerTooShort, len(entry.Answer), MinAnswerLength)
	}

	if entry.RowNumber <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrInvalidRowNumber)
	}

	return nil
}

// ValidateLevel checks that a confidence level is one of the known labels.
func ValidateLevel(level Level) error {
	switch level {
	case LevelHigh, LevelMedium, LevelLow, LevelReview:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}
