// Package ingestion loads questionnaire-style CSV documents into the
// knowledge base.
//
// The Loader type parses each document, detecting the question, answer and
// section columns from the header row, and persists the resulting entries:
//   - Rows with short questions, short answers or placeholder answers are
//     skipped.
//   - Row numbers refer to 1-based file rows, matching what a reader sees
//     in a spreadsheet.
//   - Duplicate question/answer content is suppressed by the repository,
//     so re-loading a document is idempotent.
package ingestion
