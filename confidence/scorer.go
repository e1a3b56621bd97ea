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

// Package confidence turns retrieval similarity into a 0-100 confidence
// score and a review level. Two graders exist: FromBlended maps a combined
// retrieval score straight onto the scale, while Scorer inspects the matched
// entry itself and applies keyword, length and ambiguity adjustments.
package confidence

import (
	"math"
	"strings"

	"github.com/candorlabs/qanswer/core"
)

// Answer length cutoffs for the short-answer penalties.
const (
	shortAnswerLength = 50
	briefAnswerLength = 100
)

// DefaultAmbiguityMargin is the relative gap below which the two best
// candidates are considered indistinguishable.
const DefaultAmbiguityMargin = 0.1

// DefaultDomainKeywords lists the compliance and platform vocabulary whose
// presence in a question earns a small confidence bump.
var DefaultDomainKeywords = []string{
	"kyc", "aml", "compliance", "regulatory", "security", "api",
	"encryption", "authentication", "authorization", "custody", "wallet",
	"blockchain", "crypto", "trading", "settlement", "audit", "risk",
	"gdpr", "pii", "integration", "sso", "mfa", "rbac", "backup",
	"disaster recovery",
}

// Scorer grades a matched entry. The zero value is not usable; construct
// with NewScorer.
type Scorer struct {
	keywords []string
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithDomainKeywords replaces the default domain keyword list.
func WithDomainKeywords(keywords []string) Option {
	return func(s *Scorer) {
		s.keywords = keywords
	}
}

// NewScorer returns a Scorer with the default domain keywords unless
// overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{keywords: DefaultDomainKeywords}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score grades how well entry answers question given the retrieval
// similarity and whether the candidate set was ambiguous. The similarity
// sets the base; the adjustments are:
//
//   - +5 when the question contains a domain keyword (applied once)
//   - -10 when the answer is under 50 characters, -5 when under 100
//   - -5 when the candidate set was ambiguous
//   - +5 when at least three substantial question terms recur verbatim
//     in the answer
//
// The result is clamped to [0, 100].
func (s *Scorer) Score(question string, entry *core.KnowledgeEntry, similarity float64, ambiguous bool) (int, core.Level) {
	score := roundScore(similarity * 100)

	lowerQuestion := strings.ToLower(question)
	for _, kw := range s.keywords {
		if strings.Contains(lowerQuestion, kw) {
			score += 5
			break
		}
	}

	switch {
	case len(entry.Answer) < shortAnswerLength:
		score -= 10
	case len(entry.Answer) < briefAnswerLength:
		score -= 5
	}

	if ambiguous {
		score -= 5
	}

	if overlapCount(lowerQuestion, entry.Answer) >= 3 {
		score += 5
	}

	score = clamp(score, 0, 100)
	return score, core.LevelForScore(score)
}

// overlapCount counts distinct question terms longer than four characters
// that appear verbatim in the answer, case-insensitively.
func overlapCount(lowerQuestion, answer string) int {
	lowerAnswer := strings.ToLower(answer)

	seen := make(map[string]bool)
	count := 0
	for _, term := range strings.Fields(lowerQuestion) {
		term = strings.Trim(term, "?!.,;:'\"()")
		if len(term) <= 4 || seen[term] {
			continue
		}
		seen[term] = true
		if strings.Contains(lowerAnswer, term) {
			count++
		}
	}
	return count
}

// FromBlended maps a blended retrieval score onto the confidence scale
// using a coarse three-band ladder. Strong matches land at High or Medium,
// moderate ones at Medium or Low, and weak ones are floored at 20 and may
// require human review.
func FromBlended(blended float64) (int, core.Level) {
	scaled := roundScore(blended * 100)

	switch {
	case blended >= 0.7:
		score := scaled
		if score > 100 {
			score = 100
		}
		if score >= core.HighThreshold {
			return score, core.LevelHigh
		}
		return score, core.LevelMedium
	case blended >= 0.4:
		if scaled >= core.MediumThreshold {
			return scaled, core.LevelMedium
		}
		return scaled, core.LevelLow
	default:
		score := scaled
		if score < 20 {
			score = 20
		}
		if score >= core.LowThreshold {
			return score, core.LevelLow
		}
		return score, core.LevelReview
	}
}

// IsAmbiguous reports whether the two best candidate scores are too close
// to call under the default margin.
func IsAmbiguous(scores []float64) bool {
	return IsAmbiguousWithin(scores, DefaultAmbiguityMargin)
}

// IsAmbiguousWithin reports whether the relative gap between the two best
// candidate scores is under margin. Fewer than two candidates, or a
// non-positive best score, is never ambiguous.
func IsAmbiguousWithin(scores []float64, margin float64) bool {
	if len(scores) < 2 {
		return false
	}
	top, second := scores[0], scores[1]
	if top <= 0 {
		return false
	}
	return (top-second)/top < margin
}

func roundScore(v float64) int {
	return int(math.Round(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
