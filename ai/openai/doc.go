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

// Package openai implements answer synthesis against OpenAI-compatible
// chat APIs (OpenAI, Ollama, LocalAI, vLLM and similar).
//
// The synthesizer holds the model to a strict JSON response contract with
// temperature 0 and JSON mode enabled. Responses wrapped in markdown
// fences or with slightly malformed keys are recovered where possible;
// persistently malformed responses are retried and ultimately surfaced as
// errors so the caller can fall back to evidence-only answering.
package openai
