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

package concepts

import (
	"sort"
	"strings"

	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/search"
)

// Default blend weights for combining lexical similarity with concept
// affinity.
const (
	DefaultSimilarityWeight = 0.4
	DefaultConceptWeight    = 0.6
)

// Per-phrase increments for the concept affinity score.
const (
	triggerWeight = 0.1
	boostWeight   = 0.3
)

// Reranker re-orders retrieval candidates by blending their lexical score
// with a concept affinity score computed from the extracted concepts.
type Reranker struct {
	mappings  map[string][]string
	boosts    map[string][]string
	simWeight float64
	conWeight float64
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker)

// WithRerankMappings replaces the default concept mappings.
func WithRerankMappings(mappings map[string][]string) RerankerOption {
	return func(r *Reranker) {
		r.mappings = mappings
	}
}

// WithBoosts replaces the default boost phrases.
func WithBoosts(boosts map[string][]string) RerankerOption {
	return func(r *Reranker) {
		r.boosts = boosts
	}
}

// WithBlend replaces the default 0.4/0.6 similarity/concept blend weights.
func WithBlend(similarity, concept float64) RerankerOption {
	return func(r *Reranker) {
		r.simWeight = similarity
		r.conWeight = concept
	}
}

// NewReranker returns a Reranker over the default tables unless overridden.
func NewReranker(opts ...RerankerOption) *Reranker {
	r := &Reranker{
		mappings:  DefaultMappings(),
		boosts:    DefaultBoosts(),
		simWeight: DefaultSimilarityWeight,
		conWeight: DefaultConceptWeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ScoreEntry computes the concept affinity of an entry's answer for the
// given concepts: 0.1 per trigger phrase found, 0.3 per boost phrase found,
// plus fixed bonuses for answers known to resolve specific question
// families. The score is unbounded above.
func (r *Reranker) ScoreEntry(entry *core.KnowledgeEntry, conceptList []string) float64 {
	answer := strings.ToLower(entry.Answer)

	score := 0.0
	for _, concept := range conceptList {
		for _, phrase := range r.boosts[concept] {
			if strings.Contains(answer, phrase) {
				score += boostWeight
			}
		}
		for _, phrase := range r.mappings[concept] {
			if strings.Contains(answer, phrase) {
				score += triggerWeight
			}
		}
	}

	has := func(concept string) bool {
		for _, c := range conceptList {
			if c == concept {
				return true
			}
		}
		return false
	}

	if has(ConceptFrontend) || has(ConceptAPIPlatform) {
		if strings.Contains(answer, "bank owns") || strings.Contains(answer, "bank retains") {
			score += 0.5
		}
		if strings.Contains(answer, "api-first") {
			score += 0.4
		}
		if strings.Contains(answer, "control over") && strings.Contains(answer, "ui") {
			score += 0.4
		}
	}

	if has(ConceptHosting) {
		if strings.Contains(answer, "aws") &&
			(strings.Contains(answer, "me-central") || strings.Contains(answer, "uae")) {
			score += 0.5
		}
		if strings.Contains(answer, "cloud") && strings.Contains(answer, "host") {
			score += 0.3
		}
	}

	if has(ConceptSDK) {
		if strings.Contains(answer, "not recommend") && strings.Contains(answer, "sdk") {
			score += 0.8
		}
		if strings.Contains(answer, "single point of failure") {
			score += 0.6
		}
		if strings.Contains(answer, "do not recommend") {
			score += 0.5
		}
		if strings.Contains(answer, "api-first") {
			score += 0.3
		}
	}

	// On-prem questions should surface the cloud-hosting answers that
	// explain why there is no on-prem deployment.
	if has(ConceptOnPrem) || has(ConceptProviderHost) {
		if strings.Contains(answer, "hosted on") && strings.Contains(answer, "aws") {
			score += 0.8
		}
		if strings.Contains(answer, "public cloud") {
			score += 0.6
		}
		if strings.Contains(answer, "me-central") {
			score += 0.5
		}
		if strings.Contains(answer, "saas") &&
			(strings.Contains(answer, "deployed") || strings.Contains(answer, "solution")) {
			score += 0.5
		}
	}

	if has(ConceptCommunity) {
		if strings.Contains(answer, "wio") || strings.Contains(answer, "adcb") {
			score += 0.5
		}
	}

	return score
}

// Rerank blends each candidate's lexical score with its concept affinity
// (40% lexical, 60% concept by default) and returns the candidates re-sorted by the
// blended score, descending. Ties keep the incoming order. The input slice
// is not modified.
func (r *Reranker) Rerank(candidates []search.Scored, conceptList []string) []search.Scored {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]search.Scored, len(candidates))
	for i, c := range candidates {
		affinity := r.ScoreEntry(c.Entry, conceptList)
		ranked[i] = search.Scored{
			Entry: c.Entry,
			Score: r.simWeight*c.Score + r.conWeight*affinity,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
