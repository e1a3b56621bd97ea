package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for knowledge entries.
// IDs are assigned monotonically by the entry store and never reused.
type ID uint64

// Fingerprint is a content-based hash of an entry's question/answer pair.
// It is used to suppress duplicate entries during ingestion; it is not an ID.
type Fingerprint uint64

// FingerprintContent computes a deterministic fingerprint from text content
// using BLAKE2b hashing. Identical content produces identical fingerprints.
func FingerprintContent(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// KnowledgeEntry is a single question/answer pair from the knowledge base,
// with provenance back to the source document, section and row.
// Entries are created once during ingestion and immutable thereafter.
type KnowledgeEntry struct {
	Id           ID
	DocumentName string
	Section      string
	RowNumber    int
	Question     string
	Answer       string
}

// Fingerprint returns the content fingerprint of the entry's question/answer
// pair, independent of its ID and provenance.
func (e *KnowledgeEntry) Fingerprint() Fingerprint {
	return FingerprintContent(e.Question + "\x1f" + e.Answer)
}

// Citation returns the entry's citation string in the canonical
// "[document > section > Row N]" format.
func (e *KnowledgeEntry) Citation() string {
	return Citation(e.DocumentName, e.Section, e.RowNumber)
}

// Citation formats a citation string. The format is fixed for compatibility
// with downstream consumers and must not change.
func Citation(documentName, section string, rowNumber int) string {
	return fmt.Sprintf("[%s > %s > Row %d]", documentName, section, rowNumber)
}

// EvidenceSnippet is a scored, read-only view of an entry surfaced during
// retrieval for a specific query. Snippets are produced per query and never
// persisted. EntryId always carries the source entry's ID so a snippet can be
// traced back without relying on text equality.
type EvidenceSnippet struct {
	EntryId         ID
	DocumentName    string
	Section         string
	RowNumber       int
	Text            string
	SimilarityScore float64
}

// Locator returns the human-readable row pointer, e.g. "Row 12".
func (s *EvidenceSnippet) Locator() string {
	return fmt.Sprintf("Row %d", s.RowNumber)
}

// Citation returns the snippet's citation string.
func (s *EvidenceSnippet) Citation() string {
	return Citation(s.DocumentName, s.Section, s.RowNumber)
}

// Level is a discrete confidence level for a match result.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
	// LevelReview marks results that need a human to look at them. The
	// literal is fixed for compatibility with questionnaire templates.
	LevelReview Level = "Requires Human Attention"
)

// Confidence score thresholds for the level ladder.
const (
	HighThreshold   = 90
	MediumThreshold = 70
	LowThreshold    = 40
)

// LevelForScore maps a 0-100 confidence score to its level. The mapping is a
// pure function of the score; deriving the level twice yields the same label.
func LevelForScore(score int) Level {
	switch {
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	case score >= LowThreshold:
		return LevelLow
	default:
		return LevelReview
	}
}

// AnswerKind discriminates the two variants of a matched answer.
type AnswerKind int

const (
	// AnswerStored means the answer is a knowledge entry returned verbatim.
	AnswerStored AnswerKind = iota + 1
	// AnswerSynthesized means the answer text was generated from evidence
	// and does not correspond to any stored entry.
	AnswerSynthesized
)

// SynthesizedAnswer is a transient answer produced by the generative path.
// It is attributed to the top evidence snippet's source location but its
// text is not a stored answer.
type SynthesizedAnswer struct {
	Text          string
	DocumentName  string
	Section       string
	RowNumber     int
	SourceEntryId ID
}

// MatchedAnswer is a tagged variant: either a stored knowledge entry or a
// synthesized answer. Exactly one of Stored/Synthesized is set, according to
// Kind. Callers must not assume a stored entry's identity survives synthesis.
type MatchedAnswer struct {
	Kind        AnswerKind
	Stored      *KnowledgeEntry
	Synthesized *SynthesizedAnswer
}

// StoredAnswer wraps a knowledge entry as a matched answer.
func StoredAnswer(entry *KnowledgeEntry) *MatchedAnswer {
	return &MatchedAnswer{Kind: AnswerStored, Stored: entry}
}

// SynthesizedFrom wraps generated answer text as a matched answer attributed
// to the given evidence snippet's source.
func SynthesizedFrom(text string, top *EvidenceSnippet) *MatchedAnswer {
	return &MatchedAnswer{
		Kind: AnswerSynthesized,
		Synthesized: &SynthesizedAnswer{
			Text:          text,
			DocumentName:  top.DocumentName,
			Section:       top.Section,
			RowNumber:     top.RowNumber,
			SourceEntryId: top.EntryId,
		},
	}
}

// Text returns the answer text regardless of variant.
func (m *MatchedAnswer) Text() string {
	switch m.Kind {
	case AnswerStored:
		return m.Stored.Answer
	case AnswerSynthesized:
		return m.Synthesized.Text
	}
	return ""
}

// MatchResult is the outcome of matching one question against the knowledge
// base. Results are produced fresh per question and never mutated after
// return. Answer is nil when no match was found.
type MatchResult struct {
	Answer          *MatchedAnswer
	SimilarityScore float64
	ConfidenceScore int
	ConfidenceLevel Level
	Evidence        string
	Citations       []string
	Notes           string
}
