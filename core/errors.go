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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates a KnowledgeEntry failed validation.
	ErrInvalidEntry = errors.New("invalid knowledge entry")

	// ErrEmptyQuestion indicates the Question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrAnswerTooShort indicates the Answer field is below the minimum length.
	ErrAnswerTooShort = errors.New("answer is too short")

	// ErrEmptyDocumentName indicates the DocumentName field is empty.
	ErrEmptyDocumentName = errors.New("document name cannot be empty")

	// ErrInvalidRowNumber indicates a non-positive row number.
	ErrInvalidRowNumber = errors.New("row number must be positive")

	// ErrInvalidLevel indicates a confidence level outside the known set.
	ErrInvalidLevel = errors.New("invalid confidence level")
)
