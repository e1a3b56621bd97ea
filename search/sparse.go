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


package search

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/candorlabs/qanswer/core"
)

// Document frequency bounds for the index vocabulary. Terms in fewer than
// MinDocFreq documents, or in more than MaxDocShare of all documents, are
// excluded from a space's vocabulary.
const (
	MinDocFreq  = 1
	MaxDocShare = 0.95
)

// Weights blends the per-space similarity scores of a query. The defaults
// are hand-tuned calibration inherited from production use: question overlap
// matters most, then the combined space, then answer overlap.
type Weights struct {
	Question float64
	Combined float64
	Answer   float64
}

// DefaultWeights returns the calibrated blend weights.
func DefaultWeights() Weights {
	return Weights{Question: 0.5, Combined: 0.3, Answer: 0.2}
}

func (w Weights) valid() bool {
	return w.Question > 0 && w.Combined > 0 && w.Answer > 0
}

// Scored pairs an entry with its blended similarity score for one query.
type Scored struct {
	Entry *core.KnowledgeEntry
	Score float64
}

// Index is the multi-field sparse index over the entry pool. It maintains
// three independent term-weighted vector spaces: over entry questions, over
// entry answers, and over the concatenation of both. Each space has its own
// vocabulary; nothing is shared across spaces.
//
// Construction is a one-time, single-threaded, blocking operation. After
// NewIndex returns, the index is immutable and safe for concurrent searches.
type Index struct {
	store    *Store
	question *vectorSpace
	answer   *vectorSpace
	combined *vectorSpace
	weights  Weights
	logger   *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithWeights overrides the per-space blend weights.
func WithWeights(w Weights) Option {
	return func(ix *Index) error {
		if !w.valid() {
			return ErrInvalidWeights
		}
		ix.weights = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndex builds the three vector spaces from the store's entry pool.
// An empty store is not an error: the resulting index answers every search
// with an empty result.
func NewIndex(store *Store, opts ...Option) (*Index, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	ix := &Index{
		store:   store,
		weights: DefaultWeights(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	entries := store.Entries()
	if len(entries) == 0 {
		return ix, nil
	}

	questions := make([]string, len(entries))
	answers := make([]string, len(entries))
	combined := make([]string, len(entries))
	for i, entry := range entries {
		questions[i] = entry.Question
		answers[i] = entry.Answer
		combined[i] = entry.Question + " " + entry.Answer
	}

	ix.question = fitSpace(questions)
	ix.answer = fitSpace(answers)
	ix.combined = fitSpace(combined)

	ix.logger.Info("built sparse index",
		"entries", len(entries),
		"questionVocab", ix.question.vocabSize(),
		"answerVocab", ix.answer.vocabSize(),
		"combinedVocab", ix.combined.vocabSize())

	return ix, nil
}

// EntryCount returns the number of indexed entries.
func (ix *Index) EntryCount() int {
	return ix.store.Len()
}

// VocabularySize returns the size of the combined space's vocabulary.
func (ix *Index) VocabularySize() int {
	if ix.combined == nil {
		return 0
	}
	return ix.combined.vocabSize()
}

// Store returns the underlying entry store.
func (ix *Index) Store() *Store {
	return ix.store
}

// Search transforms the query into each vector space and blends the per-space
// cosine similarities per entry. It returns up to topK entries with a
// positive blended score, ordered by score descending. Ties keep the entries'
// original insertion order (stable sort); no other tie-break is applied.
//
// Query terms absent from a space's vocabulary contribute zero weight; a
// query with no known terms simply returns an empty result.
func (ix *Index) Search(query string, topK int) []Scored {
	entries := ix.store.Entries()
	if len(entries) == 0 || topK <= 0 || ix.combined == nil {
		return nil
	}

	queryTerms := terms(tokenize(query))

	scores := make([]float64, len(entries))
	ix.question.accumulate(queryTerms, ix.weights.Question, scores)
	ix.combined.accumulate(queryTerms, ix.weights.Combined, scores)
	ix.answer.accumulate(queryTerms, ix.weights.Answer, scores)

	ranked := make([]Scored, 0, len(entries))
	for i, score := range scores {
		if score > 0 {
			ranked = append(ranked, Scored{Entry: entries[i], Score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// KeywordSearch scores entries by literal keyword containment: each keyword
// found in an answer counts 1.0, in a question 0.5. Scores are normalized by
// the best hit. Used for diagnostic lookups, not for the main match path.
func (ix *Index) KeywordSearch(keywords []string, topK int) []Scored {
	entries := ix.store.Entries()
	if len(entries) == 0 || topK <= 0 {
		return nil
	}

	scores := make([]float64, len(entries))
	for i, entry := range entries {
		answer := strings.ToLower(entry.Answer)
		question := strings.ToLower(entry.Question)
		for _, kw := range keywords {
			k := strings.ToLower(kw)
			if k == "" {
				continue
			}
			if strings.Contains(answer, k) {
				scores[i] += 1.0
			}
			if strings.Contains(question, k) {
				scores[i] += 0.5
			}
		}
	}

	max := 0.0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max == 0 {
		return nil
	}

	ranked := make([]Scored, 0, len(entries))
	for i, score := range scores {
		if score > 0 {
			ranked = append(ranked, Scored{Entry: entries[i], Score: score / max})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// vectorSpace is one fitted term-weighted space: a vocabulary, per-term
// inverse document frequencies, and L2-normalized document vectors stored as
// per-term posting lists.
type vectorSpace struct {
	vocab    map[string]int
	idf      []float64
	postings [][]posting
}

type posting struct {
	doc    int32
	weight float64
}

// fitSpace builds a vector space over the given documents using smoothed
// inverse document frequency weighting: idf = ln((1+n)/(1+df)) + 1. Document
// vectors are length-normalized so dot products are cosine similarities in
// [0,1].
func fitSpace(docs []string) *vectorSpace {
	n := len(docs)

	docTerms := make([][]string, n)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		docTerms[i] = terms(tokenize(doc))
		seen := make(map[string]struct{}, len(docTerms[i]))
		for _, term := range docTerms[i] {
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	// Prune the vocabulary by document frequency. The upper cutoff is
	// clamped so tiny pools (where every term exceeds the share) keep
	// their vocabulary instead of ending up empty.
	maxCount := int(math.Floor(MaxDocShare * float64(n)))
	if maxCount < MinDocFreq {
		maxCount = MinDocFreq
	}

	space := &vectorSpace{vocab: make(map[string]int)}
	for i := range docTerms {
		for _, term := range docTerms[i] {
			if _, ok := space.vocab[term]; ok {
				continue
			}
			df := docFreq[term]
			if df >= MinDocFreq && df <= maxCount {
				space.vocab[term] = len(space.vocab)
			}
		}
	}

	space.idf = make([]float64, len(space.vocab))
	for term, idx := range space.vocab {
		space.idf[idx] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	space.postings = make([][]posting, len(space.vocab))
	for docIdx := range docTerms {
		counts := make(map[int]int)
		for _, term := range docTerms[docIdx] {
			if termIdx, ok := space.vocab[term]; ok {
				counts[termIdx]++
			}
		}
		if len(counts) == 0 {
			continue
		}

		var norm float64
		for termIdx, count := range counts {
			w := float64(count) * space.idf[termIdx]
			norm += w * w
		}
		norm = math.Sqrt(norm)

		for termIdx, count := range counts {
			w := float64(count) * space.idf[termIdx] / norm
			space.postings[termIdx] = append(space.postings[termIdx], posting{doc: int32(docIdx), weight: w})
		}
	}

	return space
}

func (v *vectorSpace) vocabSize() int {
	return len(v.vocab)
}

// accumulate adds blend*cosine(query, doc) to scores[doc] for every document
// with at least one query term in common. The query vector is transformed
// with the space's fitted vocabulary; unknown terms silently vanish.
func (v *vectorSpace) accumulate(queryTerms []string, blend float64, scores []float64) {
	if v == nil || len(v.vocab) == 0 {
		return
	}

	counts := make(map[int]int)
	for _, term := range queryTerms {
		if termIdx, ok := v.vocab[term]; ok {
			counts[termIdx]++
		}
	}
	if len(counts) == 0 {
		return
	}

	var norm float64
	for termIdx, count := range counts {
		w := float64(count) * v.idf[termIdx]
		norm += w * w
	}
	norm = math.Sqrt(norm)

	for termIdx, count := range counts {
		qw := float64(count) * v.idf[termIdx] / norm
		for _, p := range v.postings[termIdx] {
			scores[p.doc] += blend * qw * p.weight
		}
	}
}
