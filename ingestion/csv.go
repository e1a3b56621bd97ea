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

package ingestion

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/candorlabs/qanswer/core"
)

// MinQuestionLength is the minimum length of a question text for a row to
// be ingested. Shorter cells are headers, numbering or noise, not questions.
const MinQuestionLength = 10

// Column header names tried in order when detecting columns. Exact matches
// win over substring matches.
var (
	questionHeaders = []string{"question", "questions", "query", "queries", "vendor queries"}
	answerHeaders   = []string{"answer", "answers", "response", "responses"}
	sectionHeaders  = []string{"section", "category", "domain", "area"}
)

// ParseCSV reads a questionnaire-style CSV document and returns the
// knowledge entries it contains. The first record is treated as the header
// row; question, answer and section columns are detected from it. Row
// numbers are 1-based file rows, so the first data row is row 2.
//
// Rows with a question shorter than MinQuestionLength, an answer shorter
// than core.MinAnswerLength, or a placeholder answer are skipped.
func ParseCSV(r io.Reader, documentName string) ([]*core.KnowledgeEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrEmptyDocument
	}

	header := records[0]
	rows := records[1:]

	questionCol := detectColumn(header, questionHeaders)
	if questionCol < 0 {
		questionCol = widestColumn(rows)
	}
	if questionCol < 0 {
		return nil, ErrNoQuestionColumn
	}

	answerCol := detectColumn(header, answerHeaders)
	if answerCol < 0 {
		// Answers conventionally sit to the right of questions.
		answerCol = questionCol + 1
	}
	if answerCol >= len(header) {
		return nil, ErrNoAnswerColumn
	}

	sectionCol := detectColumn(header, sectionHeaders)

	var entries []*core.KnowledgeEntry
	section := "General"
	for i, row := range rows {
		if sectionCol >= 0 && sectionCol < len(row) {
			if s := strings.TrimSpace(row[sectionCol]); s != "" {
				section = s
			}
		}

		question := cell(row, questionCol)
		answer := cell(row, answerCol)
		if !keepRow(question, answer) {
			continue
		}

		entries = append(entries, &core.KnowledgeEntry{
			DocumentName: documentName,
			Section:      section,
			RowNumber:    i + 2,
			Question:     question,
			Answer:       answer,
		})
	}

	return entries, nil
}

// detectColumn finds the index of the first header matching one of the
// given names, preferring exact matches over substring matches.
func detectColumn(header []string, names []string) int {
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if normalized == name {
				return i
			}
		}
	}
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if strings.Contains(normalized, name) {
				return i
			}
		}
	}
	return -1
}

// widestColumn returns the column with the longest average cell text.
// Questions tend to be the longest free-text column in a questionnaire.
func widestColumn(rows [][]string) int {
	best, bestAvg := -1, 0.0
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for col := 0; col < width; col++ {
		total, n := 0, 0
		for _, row := range rows {
			if col < len(row) {
				if text := strings.TrimSpace(row[col]); text != "" {
					total += len(text)
					n++
				}
			}
		}
		if n == 0 {
			continue
		}
		avg := float64(total) / float64(n)
		if avg > 20 && avg > bestAvg {
			best, bestAvg = col, avg
		}
	}
	return best
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func keepRow(question, answer string) bool {
	if len(question) < MinQuestionLength {
		return false
	}
	if len(answer) < core.MinAnswerLength {
		return false
	}
	// Header rows repeated mid-file and unfilled template answers.
	lq := strings.ToLower(question)
	if lq == "question" || lq == "questions" || lq == "parameters" {
		return false
	}
	if strings.Contains(strings.ToLower(answer), "<please provide") {
		return false
	}
	return true
}
