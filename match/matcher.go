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

// Package match orchestrates the answer pipeline: question screening,
// lexical retrieval, concept re-ranking, evidence assembly and answer
// synthesis with a deterministic fallback.
//
// Match never returns an error: every failure mode degrades to a
// well-formed MatchResult whose confidence level tells the caller how much
// to trust it.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/candorlabs/qanswer/ai"
	"github.com/candorlabs/qanswer/concepts"
	"github.com/candorlabs/qanswer/confidence"
	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/search"
)

// Matcher runs questions through the full matching pipeline.
type Matcher struct {
	index       *search.Index
	extractor   *concepts.Extractor
	reranker    *concepts.Reranker
	interceptor *concepts.Interceptor
	scorer      *confidence.Scorer
	synthesizer ai.Synthesizer

	config  Config
	abbrevs []abbreviationRule
	monitor MatchMonitor
	logger  *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithConfig replaces the default pipeline configuration.
func WithConfig(config Config) Option {
	return func(m *Matcher) error {
		if err := config.Validate(); err != nil {
			return err
		}
		m.config = config
		return nil
	}
}

// WithSynthesizer enables answer synthesis. Without a synthesizer the
// matcher answers with stored entries only.
func WithSynthesizer(synth ai.Synthesizer) Option {
	return func(m *Matcher) error {
		m.synthesizer = synth
		return nil
	}
}

// WithMonitor sets a pipeline observer.
func WithMonitor(monitor MatchMonitor) Option {
	return func(m *Matcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		m.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher builds a matching pipeline over the given index.
func NewMatcher(index *search.Index, opts ...Option) (*Matcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}

	m := &Matcher{
		index:   index,
		config:  DefaultConfig(),
		monitor: &noopMonitor{},
		logger:  slog.Default().With("component", "matcher"),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.abbrevs = compileAbbreviations(m.config.Abbreviations)
	m.extractor = concepts.NewExtractor(concepts.WithOrgName(m.config.OrgName))
	m.reranker = concepts.NewReranker()

	var scorerOpts []confidence.Option
	if m.config.DomainKeywords != nil {
		scorerOpts = append(scorerOpts, confidence.WithDomainKeywords(m.config.DomainKeywords))
	}
	m.scorer = confidence.NewScorer(scorerOpts...)

	if m.config.CounterpartyName != "" {
		interceptor, err := concepts.NewInterceptor(m.config.CounterpartyName, m.config.OrgName)
		if err != nil {
			return nil, err
		}
		m.interceptor = interceptor
	}

	return m, nil
}

// Match answers one questionnaire question. The category, when non-empty,
// names the questionnaire section the question came from.
//
// The result is always well-formed: questions that are too short,
// intercepted, or without evidence come back with confidence zero and the
// review level rather than an error.
func (m *Matcher) Match(ctx context.Context, question, category string) *core.MatchResult {
	m.monitor.Start(question)

	result := m.match(ctx, question, category)

	m.monitor.Finish(result)
	return result
}

func (m *Matcher) match(ctx context.Context, question, category string) *core.MatchResult {
	if tooShort(question, m.config.MinQuestionLength) {
		return reviewResult("Question too short or empty.")
	}

	if m.interceptor != nil && m.interceptor.Intercept(question) {
		m.monitor.Intercepted(question)
		m.logger.Debug("question intercepted", "question", question)
		return reviewResult(fmt.Sprintf(
			"This is a question for %s to confirm internally.", m.config.CounterpartyName))
	}

	evidence := m.retrieve(question)
	if len(evidence) == 0 {
		return reviewResult("No relevant evidence found in knowledge base.")
	}

	if m.synthesizer != nil {
		return m.synthesize(ctx, question, category, evidence)
	}
	return m.simpleMatch(question, evidence)
}

// retrieve pulls lexical candidates, re-ranks them by concept affinity and
// keeps the top snippets as evidence.
func (m *Matcher) retrieve(question string) []core.EvidenceSnippet {
	processed := preprocess(question, m.abbrevs)

	candidates := m.index.Search(processed, m.config.RerankWindow)
	m.monitor.AfterRetrieval(candidates)
	if len(candidates) == 0 {
		return nil
	}

	conceptList := m.extractor.Extract(question)
	ranked := m.reranker.Rerank(candidates, conceptList)
	m.monitor.AfterRerank(conceptList, ranked)

	if len(ranked) > m.config.TopK {
		ranked = ranked[:m.config.TopK]
	}

	evidence := make([]core.EvidenceSnippet, len(ranked))
	for i, c := range ranked {
		evidence[i] = core.EvidenceSnippet{
			EntryId:         c.Entry.Id,
			DocumentName:    c.Entry.DocumentName,
			Section:         c.Entry.Section,
			RowNumber:       c.Entry.RowNumber,
			Text:            c.Entry.Answer,
			SimilarityScore: c.Score,
		}
	}
	m.monitor.AfterEvidence(evidence)
	return evidence
}

// synthesize composes the answer via the synthesizer, falling back to the
// top evidence snippet verbatim when synthesis fails.
func (m *Matcher) synthesize(ctx context.Context, question, category string, evidence []core.EvidenceSnippet) *core.MatchResult {
	if m.config.SynthesisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.SynthesisTimeout)
		defer cancel()
	}

	synthesized, err := m.synthesizer.Synthesize(ctx, question, evidence, category)
	if err != nil {
		m.monitor.SynthesisFallback(err)
		m.logger.Warn("synthesis failed, using top evidence snippet", "err", err)
		return m.fallback(evidence)
	}

	top := &evidence[0]

	level := synthesized.ConfidenceLevel
	if core.ValidateLevel(level) != nil {
		level = core.LevelForScore(synthesized.ConfidenceScore)
	}

	citations := synthesized.Citations
	if len(citations) == 0 {
		citations = []string{top.Citation()}
	}

	return &core.MatchResult{
		Answer:          core.SynthesizedFrom(synthesized.Answer, top),
		SimilarityScore: top.SimilarityScore,
		ConfidenceScore: synthesized.ConfidenceScore,
		ConfidenceLevel: level,
		Evidence:        citations[0],
		Citations:       citations,
		Notes:           synthesized.Notes,
	}
}

// fallback answers with the top evidence snippet verbatim. Confidence is
// derived from the snippet's similarity and capped so a fallback never
// reads as a strong answer.
func (m *Matcher) fallback(evidence []core.EvidenceSnippet) *core.MatchResult {
	top := &evidence[0]

	score := int(math.Round(top.SimilarityScore * 100))
	if score < 0 {
		score = 0
	}
	if score > m.config.FallbackCap {
		score = m.config.FallbackCap
	}

	citation := top.Citation()
	return &core.MatchResult{
		Answer:          core.SynthesizedFrom(top.Text, top),
		SimilarityScore: top.SimilarityScore,
		ConfidenceScore: score,
		ConfidenceLevel: core.LevelForScore(score),
		Evidence:        citation,
		Citations:       []string{citation},
		Notes:           "Fallback: synthesis unavailable, using top evidence snippet directly.",
	}
}

// simpleMatch answers with the best stored entry, graded by the confidence
// scorer with the ambiguity check over the evidence scores.
func (m *Matcher) simpleMatch(question string, evidence []core.EvidenceSnippet) *core.MatchResult {
	top := evidence[0]

	entry, ok := m.index.Store().Get(top.EntryId)
	if !ok {
		// Evidence always originates from the store; a miss means the
		// snippet was fabricated by a buggy monitor or test.
		m.logger.Error("evidence entry missing from store", "entry_id", top.EntryId)
		return reviewResult("No relevant evidence found in knowledge base.")
	}

	scores := make([]float64, len(evidence))
	for i, s := range evidence {
		scores[i] = s.SimilarityScore
	}
	ambiguous := confidence.IsAmbiguousWithin(scores, m.config.AmbiguityMargin)

	score, level := m.scorer.Score(question, entry, top.SimilarityScore, ambiguous)

	citation := entry.Citation()
	return &core.MatchResult{
		Answer:          core.StoredAnswer(entry),
		SimilarityScore: top.SimilarityScore,
		ConfidenceScore: score,
		ConfidenceLevel: level,
		Evidence:        citation,
		Citations:       []string{citation},
	}
}

func reviewResult(notes string) *core.MatchResult {
	return &core.MatchResult{
		ConfidenceLevel: core.LevelReview,
		Notes:           notes,
	}
}

func tooShort(question string, min int) bool {
	return len(strings.TrimSpace(question)) < min
}
