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
	"strconv"
	"strings"

	"github.com/candorlabs/qanswer/core"
)

// minQuestionnaireQuestion is the minimum text length for a questionnaire
// row to count as a question. Looser than MinQuestionLength: inbound
// questionnaires are answered, not stored, so marginal rows still get a
// review-level result instead of being dropped silently.
const minQuestionnaireQuestion = 6

// QuestionnaireRow is one question extracted from an inbound questionnaire.
type QuestionnaireRow struct {
	RowNumber int // 1-based file row
	Question  string
	Category  string
}

// ParseQuestionnaire reads an inbound questionnaire CSV and returns its
// questions. The question column is detected from the header; a section
// column, when present, is carried as the question's category.
func ParseQuestionnaire(r io.Reader) ([]QuestionnaireRow, error) {
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

	sectionCol := detectColumn(header, sectionHeaders)

	var questions []QuestionnaireRow
	category := ""
	for i, row := range rows {
		if sectionCol >= 0 && sectionCol < len(row) {
			if s := strings.TrimSpace(row[sectionCol]); s != "" {
				category = s
			}
		}

		question := cell(row, questionCol)
		if len(question) < minQuestionnaireQuestion {
			continue
		}

		questions = append(questions, QuestionnaireRow{
			RowNumber: i + 2,
			Question:  question,
			Category:  category,
		})
	}

	return questions, nil
}

// WriteResults writes an answered questionnaire as CSV: one row per
// question with the answer, confidence and evidence columns filled in.
// Rows and results must be parallel slices.
func WriteResults(w io.Writer, rows []QuestionnaireRow, results []*core.MatchResult) error {
	writer := csv.NewWriter(w)

	header := []string{"Question", "Answer", "Confidence Score", "Confidence Level", "Evidence", "Notes"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, row := range rows {
		result := results[i]
		answer := ""
		if result.Answer != nil {
			answer = result.Answer.Text()
		}
		record := []string{
			row.Question,
			answer,
			strconv.Itoa(result.ConfidenceScore),
			string(result.ConfidenceLevel),
			result.Evidence,
			result.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
