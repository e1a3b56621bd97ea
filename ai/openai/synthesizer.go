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

package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/candorlabs/qanswer/ai"
	"github.com/candorlabs/qanswer/core"
)

// Synthesizer implements ai.Synthesizer using OpenAI-compatible chat APIs.
type Synthesizer struct {
	client      llms.Model
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// synthesisResponse matches the JSON schema the model is instructed to
// return.
type synthesisResponse struct {
	Answer          string   `json:"answer"`
	ConfidenceScore int      `json:"confidence_score"`
	ConfidenceLabel string   `json:"confidence_label"`
	Citations       []string `json:"citations"`
	Notes           string   `json:"notes"`
}

var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// newSynthesizer is an internal constructor that returns the concrete type.
func newSynthesizer(config *ai.Config) (*Synthesizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		client:      client,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-synthesizer"),
	}, nil
}

// NewSynthesizer creates an answer synthesizer using the provided
// configuration.
//
// Returns ai.Synthesizer interface to enforce abstraction.
func NewSynthesizer(config *ai.Config) (ai.Synthesizer, error) {
	return newSynthesizer(config)
}

// Synthesize composes an answer from the evidence snippets via the chat
// model. The model is held to a strict JSON contract; malformed responses
// are retried up to three times before giving up with an error.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, evidence []core.EvidenceSnippet, category string) (*ai.SynthesisResult, error) {
	if len(evidence) == 0 {
		return &ai.SynthesisResult{
			Answer:          ai.InsufficientAnswer,
			ConfidenceScore: 0,
			ConfidenceLevel: core.LevelReview,
			Notes:           "No relevant evidence found in knowledge base.",
		}, nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(synthesisSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildUserPrompt(question, category, evidence))},
		},
	}

	// Try up to 3 times in case of malformed JSON.
	var parsed synthesisResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, content,
			llms.WithTemperature(s.temperature),
			llms.WithMaxTokens(s.maxTokens),
			llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			return nil, fmt.Errorf("synthesis: no choices returned from model")
		}

		responseText := extractJSON(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
			lastErr = err
			s.logger.Warn("error parsing synthesis response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to parse synthesis response after retries", "err", lastErr)
		return nil, fmt.Errorf("synthesis: parsing model response: %w", lastErr)
	}

	return s.toResult(parsed), nil
}

// toResult converts the raw model response into a SynthesisResult, clamping
// the score and remapping any label the model invented onto the score's
// canonical level.
func (s *Synthesizer) toResult(parsed synthesisResponse) *ai.SynthesisResult {
	score := parsed.ConfidenceScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := core.Level(parsed.ConfidenceLabel)
	if core.ValidateLevel(level) != nil {
		s.logger.Debug("remapping confidence label", "label", parsed.ConfidenceLabel, "score", score)
		level = core.LevelForScore(score)
	}

	return &ai.SynthesisResult{
		Answer:          parsed.Answer,
		ConfidenceScore: score,
		ConfidenceLevel: level,
		Citations:       parsed.Citations,
		Notes:           parsed.Notes,
	}
}

// extractJSON strips markdown code fences, isolates the outermost JSON
// object and repairs common formatting slips.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if match := jsonObjectPattern.FindString(text); match != "" {
		text = match
	}
	return repairJSON(text)
}
