package mock

import (
	"context"

	"github.com/candorlabs/qanswer/ai"
	"github.com/candorlabs/qanswer/core"
)

// MockSynthesizer is a test double for ai.Synthesizer.
// It allows custom behavior injection via a function field.
type MockSynthesizer struct {
	// SynthesizeFunc is called by Synthesize if set.
	// If nil, uses default evidence-echo behavior.
	SynthesizeFunc func(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error)

	callCount int
}

// NewMockSynthesizer creates a mock synthesizer with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize returns a deterministic answer built from the evidence.
// Default behavior: echo the top snippet's text with its citation and a
// confidence proportional to its similarity score.
func (m *MockSynthesizer) Synthesize(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
	m.callCount++

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, question, evidence, category)
	}

	if len(evidence) == 0 {
		return &ai.SynthesisResult{
			Answer:          ai.InsufficientAnswer,
			ConfidenceScore: 0,
			ConfidenceLevel: core.LevelReview,
			Notes:           "No relevant evidence found in knowledge base.",
		}, nil
	}

	top := evidence[0]
	score := int(top.SimilarityScore * 100)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return &ai.SynthesisResult{
		Answer:          top.Text,
		ConfidenceScore: score,
		ConfidenceLevel: core.LevelForScore(score),
		Citations:       []string{top.Citation()},
	}, nil
}

// CallCount returns the number of times Synthesize was called.
func (m *MockSynthesizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockSynthesizer) Reset() {
	m.callCount = 0
	m.SynthesizeFunc = nil
}
