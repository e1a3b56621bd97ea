package ai

import (
	"context"

	"github.com/candorlabs/qanswer/core"
)

// Synthesizer composes an answer to a questionnaire question from retrieved
// evidence snippets. Implementations must be thread-safe for concurrent use.
type Synthesizer interface {
	// Synthesize produces an answer grounded exclusively in the given
	// evidence. The category, when non-empty, names the questionnaire
	// section the question came from and is passed through as context.
	// Implementations must not invent content absent from the evidence:
	// when the evidence does not contain the answer, the result carries
	// InsufficientAnswer with a review-level confidence.
	// Returns an error only when no result could be produced at all;
	// degraded results (low confidence, notes) are not errors.
	Synthesize(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*SynthesisResult, error)
}

// SynthesisResult is a synthesized answer with its confidence grading and
// the citations backing it.
type SynthesisResult struct {
	// Answer is the composed answer text.
	Answer string

	// ConfidenceScore is the 0-100 self-assessed confidence.
	ConfidenceScore int

	// ConfidenceLevel is the review level corresponding to the score.
	ConfidenceLevel core.Level

	// Citations lists the evidence references used, in
	// "[Doc > Section > Row N]" form.
	Citations []string

	// Notes carries conflicts, assumptions or follow-ups; empty when the
	// answer is clean.
	Notes string
}

// InsufficientAnswer is the canonical answer text when the evidence does
// not contain the information asked for.
const InsufficientAnswer = "Insufficient information in provided documents."
