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
	"fmt"
	"regexp"
	"strings"
)

// Pattern templates recognizing questions about the counterparty's own
// tooling and staffing. %s is the lowercased counterparty name.
var interceptPatternTemplates = []string{
	`what.*%s.*use`,
	`does %s.*have.*team`,
	`%s.*dedicated.*team`,
	`%s.*pipeline`,
	`what.*sso.*%s`,
	`%s.*ci/cd`,
	`what is %s'?s`,
	`%s'?s\s+(ci|cd|sso|team|pipeline)`,
}

// Indicator templates matched as literal substrings.
var interceptIndicatorTemplates = []string{
	"%s's ci/cd",
	"%s's sso",
	"%s's team",
	"%s's pipeline",
	"what sso does %s",
	"what is %s's ci/cd",
	"what is %s's pipeline",
	"%s have a dedicated",
	"%s have a fe team",
	"%s have a frontend team",
}

// Product capability terms. A question naming the counterparty alongside
// one of these is still asking about the product, not about the
// counterparty's internals.
var productTerms = []string{
	"on prem", "on-prem", "sdk", "api", "host", "deploy", "integration", "prem",
}

// Interceptor recognizes questions only the counterparty can answer, so
// they are redirected instead of matched against the knowledge pool.
type Interceptor struct {
	counterparty string
	orgName      string
	patterns     []*regexp.Regexp
	indicators   []string
}

// NewInterceptor compiles the intercept patterns for the given counterparty
// and answering organization names. Both names are matched
// case-insensitively.
func NewInterceptor(counterparty, orgName string) (*Interceptor, error) {
	counterparty = strings.ToLower(strings.TrimSpace(counterparty))
	orgName = strings.ToLower(strings.TrimSpace(orgName))
	if counterparty == "" {
		return nil, ErrCounterpartyRequired
	}

	quoted := regexp.QuoteMeta(counterparty)
	patterns := make([]*regexp.Regexp, 0, len(interceptPatternTemplates))
	for _, tmpl := range interceptPatternTemplates {
		re, err := regexp.Compile(fmt.Sprintf(tmpl, quoted))
		if err != nil {
			return nil, fmt.Errorf("intercept pattern %q: %w", tmpl, err)
		}
		patterns = append(patterns, re)
	}

	indicators := make([]string, 0, len(interceptIndicatorTemplates))
	for _, tmpl := range interceptIndicatorTemplates {
		indicators = append(indicators, fmt.Sprintf(tmpl, counterparty))
	}

	return &Interceptor{
		counterparty: counterparty,
		orgName:      orgName,
		patterns:     patterns,
		indicators:   indicators,
	}, nil
}

// Intercept reports whether the question asks about the counterparty's own
// tooling or staffing rather than the product.
//
// Two escapes run before any pattern: a question that offers alternatives
// (" or ") while naming the answering organization is treated as a product
// comparison, and a question containing any product capability term is
// treated as a product question regardless of how the counterparty is
// mentioned.
func (ic *Interceptor) Intercept(question string) bool {
	lower := strings.ToLower(question)

	if ic.orgName != "" && strings.Contains(lower, " or ") && strings.Contains(lower, ic.orgName) {
		return false
	}

	for _, term := range productTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}

	for _, re := range ic.patterns {
		if re.MatchString(lower) {
			return true
		}
	}

	for _, indicator := range ic.indicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	// "What SSO does <counterparty> use?" style questions that never
	// mention the answering organization.
	if strings.Contains(lower, "what") && strings.Contains(lower, ic.counterparty) {
		if containsAny(lower, "sso", "ci/cd", "pipeline") {
			if ic.orgName == "" || !strings.Contains(lower, ic.orgName) {
				return true
			}
		}
	}

	return false
}

// Counterparty returns the lowercased counterparty name the interceptor
// was built for.
func (ic *Interceptor) Counterparty() string {
	return ic.counterparty
}
