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

// Package concepts extracts domain concepts from questionnaire questions and
// re-ranks retrieval candidates by how directly their answers address those
// concepts. It also recognizes questions that are out of scope for the
// knowledge pool entirely and must be redirected to the counterparty.
package concepts

import (
	"sort"
	"strings"
)

// Extractor maps a question onto the concept vocabulary.
type Extractor struct {
	mappings map[string][]string
	orgName  string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMappings replaces the default concept mappings.
func WithMappings(mappings map[string][]string) ExtractorOption {
	return func(e *Extractor) {
		e.mappings = mappings
	}
}

// WithOrgName sets the answering organization's name; "<org> host" becomes
// an additional trigger for the provider-hosting concept.
func WithOrgName(name string) ExtractorOption {
	return func(e *Extractor) {
		e.orgName = strings.ToLower(name)
	}
}

// NewExtractor returns an Extractor over the default vocabulary unless
// overridden.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{mappings: DefaultMappings()}
	for _, opt := range opts {
		opt(e)
	}
	if e.orgName != "" {
		e.mappings[ConceptProviderHost] = append(
			[]string{e.orgName + " host"}, e.mappings[ConceptProviderHost]...)
	}
	return e
}

// Extract returns the concepts the question touches, deduplicated, in
// first-detection order. Trigger phrases match as case-insensitive
// substrings; a handful of compound rules catch phrasings the flat
// vocabulary misses.
func (e *Extractor) Extract(question string) []string {
	lower := strings.ToLower(question)

	var found []string
	seen := make(map[string]bool)
	add := func(concept string) {
		if !seen[concept] {
			seen[concept] = true
			found = append(found, concept)
		}
	}

	for _, concept := range e.conceptScanOrder() {
		for _, trigger := range e.mappings[concept] {
			if strings.Contains(lower, trigger) {
				add(concept)
				break
			}
		}
	}

	if containsAny(lower, "front end", "frontend", "fe ", "f/e", "ui build") {
		add(ConceptFrontend)
	}
	if containsAny(lower, "back end", "backend", "be ", "b/e") {
		add(ConceptBackend)
	}
	if containsAny(lower, "api platform", "api only") {
		add(ConceptAPIPlatform)
		add(ConceptFrontend)
	}
	if strings.Contains(lower, "host") {
		add(ConceptHosting)
	}
	if strings.Contains(lower, "who") && containsAny(lower, "develop", "build") {
		add(ConceptBuildDevelop)
		add(ConceptFrontend)
	}
	// Deployment-model questions pull in the hosting concepts so that
	// cloud-hosting answers surface for on-prem questions.
	if containsAny(lower, "on prem", "on-prem", "premise") {
		add(ConceptOnPrem)
		add(ConceptHosting)
		add(ConceptProviderHost)
	}
	if strings.Contains(lower, "sdk") {
		add(ConceptSDK)
		add(ConceptAPIPlatform)
	}

	return found
}

// conceptScanOrder lists the concepts to scan: the canonical order first,
// then any custom concepts sorted by name.
func (e *Extractor) conceptScanOrder() []string {
	order := make([]string, 0, len(e.mappings))
	known := make(map[string]bool, len(conceptOrder))
	for _, concept := range conceptOrder {
		known[concept] = true
		if _, ok := e.mappings[concept]; ok {
			order = append(order, concept)
		}
	}

	var extra []string
	for concept := range e.mappings {
		if !known[concept] {
			extra = append(extra, concept)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
