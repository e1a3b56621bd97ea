package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candorlabs/qanswer/ai"
	"github.com/candorlabs/qanswer/ai/mock"
	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/search"
)

func testIndex(t *testing.T) *search.Index {
	t.Helper()
	entries := []*core.KnowledgeEntry{
		{DocumentName: "KB", Section: "Hosting", RowNumber: 5,
			Question: "Where is the platform hosted?",
			Answer:   "The platform is hosted on AWS in the me-central-1 region in the UAE."},
		{DocumentName: "KB", Section: "Security", RowNumber: 9,
			Question: "Is customer data encrypted at rest?",
			Answer:   "All customer data is encrypted at rest using AES-256 and in transit using TLS 1.3."},
		{DocumentName: "Vendor", Section: "Integration", RowNumber: 12,
			Question: "Do you provide an SDK for integration?",
			Answer:   "We do not recommend SDK usage; the platform is API-first with REST and websocket interfaces."},
	}
	store, err := search.NewStore(entries)
	require.NoError(t, err)
	ix, err := search.NewIndex(store)
	require.NoError(t, err)
	return ix
}

func testMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	m, err := NewMatcher(testIndex(t), opts...)
	require.NoError(t, err)
	return m
}

func interceptingConfig() Config {
	cfg := DefaultConfig()
	cfg.OrgName = "Finlink"
	cfg.CounterpartyName = "Novabank"
	return cfg
}

func TestNewMatcher(t *testing.T) {
	t.Run("nil index", func(t *testing.T) {
		_, err := NewMatcher(nil)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TopK = 0
		_, err := NewMatcher(testIndex(t), WithConfig(cfg))
		assert.Error(t, err)
	})
}

func TestMatchGuards(t *testing.T) {
	m := testMatcher(t)

	t.Run("empty question", func(t *testing.T) {
		result := m.Match(context.Background(), "", "")
		assert.Nil(t, result.Answer)
		assert.Zero(t, result.ConfidenceScore)
		assert.Equal(t, core.LevelReview, result.ConfidenceLevel)
		assert.Equal(t, "Question too short or empty.", result.Notes)
	})

	t.Run("whitespace question", func(t *testing.T) {
		result := m.Match(context.Background(), "   \t ", "")
		assert.Equal(t, core.LevelReview, result.ConfidenceLevel)
	})

	t.Run("too short question", func(t *testing.T) {
		result := m.Match(context.Background(), "Hm?", "")
		assert.Equal(t, core.LevelReview, result.ConfidenceLevel)
		assert.Equal(t, "Question too short or empty.", result.Notes)
	})

	t.Run("no evidence", func(t *testing.T) {
		result := m.Match(context.Background(), "zzyzx quuxium frobnicate widgets", "")
		assert.Nil(t, result.Answer)
		assert.Equal(t, core.LevelReview, result.ConfidenceLevel)
		assert.Equal(t, "No relevant evidence found in knowledge base.", result.Notes)
		assert.Empty(t, result.Citations)
	})
}

func TestMatchIntercept(t *testing.T) {
	synth := mock.NewMockSynthesizer()
	m := testMatcher(t, WithConfig(interceptingConfig()), WithSynthesizer(synth))

	t.Run("counterparty question is redirected without retrieval", func(t *testing.T) {
		result := m.Match(context.Background(), "What CI/CD tooling does Novabank use?", "")
		assert.Nil(t, result.Answer)
		assert.Zero(t, result.ConfidenceScore)
		assert.Equal(t, core.LevelReview, result.ConfidenceLevel)
		assert.Equal(t, "This is a question for Novabank to confirm internally.", result.Notes)
		assert.Zero(t, synth.CallCount())
	})

	t.Run("product question naming the counterparty is answered", func(t *testing.T) {
		result := m.Match(context.Background(), "Does Novabank want an SDK?", "")
		require.NotNil(t, result.Answer)
		assert.NotEqual(t, core.LevelReview, result.ConfidenceLevel)
	})
}

func TestMatchSimple(t *testing.T) {
	m := testMatcher(t)

	t.Run("answers from stored entries", func(t *testing.T) {
		result := m.Match(context.Background(), "Is the platform hosted on AWS in UAE?", "")
		require.NotNil(t, result.Answer)
		assert.Equal(t, core.AnswerStored, result.Answer.Kind)
		assert.Equal(t, "Hosting", result.Answer.Stored.Section)
		assert.Equal(t, "[KB > Hosting > Row 5]", result.Evidence)
		assert.Equal(t, []string{"[KB > Hosting > Row 5]"}, result.Citations)
		assert.Greater(t, result.ConfidenceScore, 0)
	})

	t.Run("confidence level matches score", func(t *testing.T) {
		result := m.Match(context.Background(), "Is customer data encrypted at rest?", "")
		require.NotNil(t, result.Answer)
		assert.Equal(t, core.LevelForScore(result.ConfidenceScore), result.ConfidenceLevel)
	})
}

func TestMatchSynthesized(t *testing.T) {
	t.Run("passes evidence and category through", func(t *testing.T) {
		synth := mock.NewMockSynthesizer()
		var gotCategory string
		var gotEvidence []core.EvidenceSnippet
		synth.SynthesizeFunc = func(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
			gotCategory = category
			gotEvidence = evidence
			return &ai.SynthesisResult{
				Answer:          "Yes, hosted on AWS in the UAE.",
				ConfidenceScore: 92,
				ConfidenceLevel: core.LevelHigh,
				Citations:       []string{"[KB > Hosting > Row 5]"},
			}, nil
		}
		m := testMatcher(t, WithSynthesizer(synth))

		result := m.Match(context.Background(), "Is the platform hosted on AWS in UAE?", "Infrastructure")
		require.NotNil(t, result.Answer)
		assert.Equal(t, core.AnswerSynthesized, result.Answer.Kind)
		assert.Equal(t, "Yes, hosted on AWS in the UAE.", result.Answer.Text())
		assert.Equal(t, 92, result.ConfidenceScore)
		assert.Equal(t, core.LevelHigh, result.ConfidenceLevel)
		assert.Equal(t, "[KB > Hosting > Row 5]", result.Evidence)
		assert.Equal(t, "Infrastructure", gotCategory)
		require.NotEmpty(t, gotEvidence)
		assert.NotZero(t, gotEvidence[0].EntryId)
	})

	t.Run("invalid label remapped from score", func(t *testing.T) {
		synth := mock.NewMockSynthesizer()
		synth.SynthesizeFunc = func(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
			return &ai.SynthesisResult{
				Answer:          "Yes.",
				ConfidenceScore: 95,
				ConfidenceLevel: core.Level("Very High"),
			}, nil
		}
		m := testMatcher(t, WithSynthesizer(synth))

		result := m.Match(context.Background(), "Is the platform hosted on AWS in UAE?", "")
		assert.Equal(t, core.LevelHigh, result.ConfidenceLevel)
	})

	t.Run("missing citations default to top snippet", func(t *testing.T) {
		synth := mock.NewMockSynthesizer()
		synth.SynthesizeFunc = func(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
			return &ai.SynthesisResult{Answer: "Yes.", ConfidenceScore: 80, ConfidenceLevel: core.LevelMedium}, nil
		}
		m := testMatcher(t, WithSynthesizer(synth))

		result := m.Match(context.Background(), "Is the platform hosted on AWS in UAE?", "")
		assert.Equal(t, []string{"[KB > Hosting > Row 5]"}, result.Citations)
	})

	t.Run("synthesis timeout is applied", func(t *testing.T) {
		synth := mock.NewMockSynthesizer()
		var hadDeadline bool
		synth.SynthesizeFunc = func(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
			_, hadDeadline = ctx.Deadline()
			return &ai.SynthesisResult{Answer: "Yes.", ConfidenceScore: 80, ConfidenceLevel: core.LevelMedium}, nil
		}
		m := testMatcher(t, WithSynthesizer(synth))

		m.Match(context.Background(), "Is the platform hosted on AWS in UAE?", "")
		assert.True(t, hadDeadline)
	})
}

func TestMatchFallback(t *testing.T) {
	synth := mock.NewMockSynthesizer()
	synth.SynthesizeFunc = func(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
		return nil, errors.New("service unavailable")
	}
	m := testMatcher(t, WithSynthesizer(synth))

	result := m.Match(context.Background(), "Is the platform hosted on AWS in UAE?", "")
	require.NotNil(t, result.Answer)
	assert.Equal(t, core.AnswerSynthesized, result.Answer.Kind)
	assert.Equal(t,
		"The platform is hosted on AWS in the me-central-1 region in the UAE.",
		result.Answer.Text())
	assert.LessOrEqual(t, result.ConfidenceScore, 60)
	assert.Equal(t, core.LevelForScore(result.ConfidenceScore), result.ConfidenceLevel)
	assert.Equal(t, []string{"[KB > Hosting > Row 5]"}, result.Citations)
	assert.Equal(t, "Fallback: synthesis unavailable, using top evidence snippet directly.", result.Notes)
}

func TestPreprocess(t *testing.T) {
	rules := compileAbbreviations(DefaultAbbreviations())

	t.Run("expands abbreviations in place", func(t *testing.T) {
		got := preprocess("Do you support SSO?", rules)
		assert.Equal(t, "do you support sso single sign on", got)
	})

	t.Run("whole words only", func(t *testing.T) {
		got := preprocess("The associated risk", rules)
		assert.Equal(t, "the associated risk", got)
	})

	t.Run("strips punctuation and squeezes whitespace", func(t *testing.T) {
		got := preprocess("  Where -- exactly --  is it   hosted?! ", rules)
		assert.Equal(t, "where exactly is it hosted", got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", preprocess("", rules))
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero topk", func(c *Config) { c.TopK = 0 }},
		{"window below topk", func(c *Config) { c.RerankWindow = 2 }},
		{"zero min question length", func(c *Config) { c.MinQuestionLength = 0 }},
		{"fallback cap above 100", func(c *Config) { c.FallbackCap = 101 }},
		{"negative ambiguity margin", func(c *Config) { c.AmbiguityMargin = -0.1 }},
		{"negative timeout", func(c *Config) { c.SynthesisTimeout = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})
}
