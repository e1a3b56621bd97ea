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

package match

import (
	"errors"
	"time"
)

// Config holds the tuning knobs of the matching pipeline. All values have
// working defaults; construct via DefaultConfig and adjust.
type Config struct {
	// TopK is the number of evidence snippets kept after re-ranking.
	// Default: 5
	TopK int

	// RerankWindow is how many lexical candidates are pulled from the
	// index for concept re-ranking. Default: 20
	RerankWindow int

	// MinQuestionLength is the minimum trimmed question length; shorter
	// questions are rejected without retrieval. Default: 5
	MinQuestionLength int

	// FallbackCap bounds the confidence score of fallback answers
	// produced without synthesis. Default: 60
	FallbackCap int

	// AmbiguityMargin is the relative gap under which the two best
	// candidates count as indistinguishable. Default: 0.1
	AmbiguityMargin float64

	// SynthesisTimeout bounds each synthesis call. Zero disables the
	// per-call timeout. Default: 30s
	SynthesisTimeout time.Duration

	// Abbreviations maps questionnaire shorthand to its expansion. During
	// preprocessing each whole-word occurrence is kept and the expansion
	// appended after it, so both forms participate in retrieval.
	Abbreviations map[string]string

	// OrgName is the answering organization's name. Used by the
	// classification intercept to recognize comparison questions.
	OrgName string

	// CounterpartyName is the organization issuing the questionnaire.
	// When set, questions about the counterparty's own tooling are
	// intercepted and redirected instead of matched. Empty disables
	// interception.
	CounterpartyName string

	// DomainKeywords replaces the default domain keyword list of the
	// confidence scorer when non-nil.
	DomainKeywords []string
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		TopK:              5,
		RerankWindow:      20,
		MinQuestionLength: 5,
		FallbackCap:       60,
		AmbiguityMargin:   0.1,
		SynthesisTimeout:  30 * time.Second,
		Abbreviations:     DefaultAbbreviations(),
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return errors.New("match config: TopK must be positive")
	}
	if c.RerankWindow < c.TopK {
		return errors.New("match config: RerankWindow must be at least TopK")
	}
	if c.MinQuestionLength < 1 {
		return errors.New("match config: MinQuestionLength must be at least 1")
	}
	if c.FallbackCap < 0 || c.FallbackCap > 100 {
		return errors.New("match config: FallbackCap must be between 0 and 100")
	}
	if c.AmbiguityMargin < 0 || c.AmbiguityMargin > 1 {
		return errors.New("match config: AmbiguityMargin must be between 0 and 1")
	}
	if c.SynthesisTimeout < 0 {
		return errors.New("match config: SynthesisTimeout must not be negative")
	}
	return nil
}

// DefaultAbbreviations returns the built-in shorthand expansion table.
// Callers may mutate the returned map; each call builds a fresh copy.
func DefaultAbbreviations() map[string]string {
	return map[string]string{
		"kyc":   "know your customer",
		"aml":   "anti money laundering",
		"cft":   "counter financing of terrorism",
		"pii":   "personally identifiable information",
		"gdpr":  "general data protection regulation",
		"sso":   "single sign on",
		"mfa":   "multi factor authentication",
		"rbac":  "role based access control",
		"api":   "application programming interface",
		"sdk":   "software development kit",
		"saas":  "software as a service",
		"vapt":  "vulnerability assessment penetration testing",
		"siem":  "security information event management",
		"ids":   "intrusion detection system",
		"ips":   "intrusion prevention system",
		"tls":   "transport layer security",
		"jwt":   "json web token",
		"oauth": "open authorization",
		"rest":  "representational state transfer",
		"bcp":   "business continuity planning",
		"dr":    "disaster recovery",
		"rpo":   "recovery point objective",
		"rto":   "recovery time objective",
		"hsm":   "hardware security module",
		"mpc":   "multi party computation",
	}
}
