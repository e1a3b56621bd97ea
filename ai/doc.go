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

// Package ai provides abstractions for the AI services used in answer
// synthesis.
//
// The package defines one interface, Synthesizer, which composes an answer
// from retrieved evidence snippets. The matching pipeline depends only on
// this abstraction; concrete implementations live in sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible chat APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in ai/openai return the ai.Synthesizer interface to
// enforce abstraction. The mock constructor returns the concrete
// *mock.MockSynthesizer so tests can inject behavior through its function
// field and assert on its call count.
//
// Usage:
//
//	cfg := ai.NewConfig(ai.WithModel("gpt-4o-mini"))
//	synth, err := openai.NewSynthesizer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := synth.Synthesize(ctx, question, evidence, category)
package ai
