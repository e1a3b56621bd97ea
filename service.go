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

package qanswer

import (
	"context"
	"log/slog"

	"github.com/candorlabs/qanswer/ai"
	"github.com/candorlabs/qanswer/ai/openai"
	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/ingestion"
	"github.com/candorlabs/qanswer/match"
	"github.com/candorlabs/qanswer/search"
	"github.com/candorlabs/qanswer/storage"
	"github.com/candorlabs/qanswer/storage/badger"
)

// Service wires storage, the sparse index and the matcher into one
// questionnaire-answering facade. The index is built from the stored
// entries when the service is created; call Reindex after loading new
// documents.
type Service struct {
	backend    *badger.Backend
	repository storage.EntryRepository
	index      *search.Index
	matcher    *match.Matcher
	logger     *slog.Logger

	options *serviceOptions
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	matchConfig match.Config
	synthesizer ai.Synthesizer
	aiConfig    *ai.Config
	logger      *slog.Logger
}

// WithMatchConfig sets the matching configuration.
// Default is match.DefaultConfig().
func WithMatchConfig(config match.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.matchConfig = config
	}
}

// WithSynthesizer sets the answer synthesizer. Without one, matches
// return stored answers verbatim.
func WithSynthesizer(synth ai.Synthesizer) ServiceOption {
	return func(o *serviceOptions) {
		o.synthesizer = synth
	}
}

// WithSynthesis enables answer synthesis against an OpenAI-compatible
// endpoint described by the given configuration.
func WithSynthesis(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewService opens (or creates) a badger-backed knowledge base at
// filePath and builds the index and matcher from its entries.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := defaultServiceOptions(opts)

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	repository, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	s := &Service{
		backend:    backend,
		repository: repository,
		logger:     options.logger,
		options:    options,
	}

	if err := s.Reindex(context.Background()); err != nil {
		repository.Close()
		backend.Close()
		return nil, err
	}

	return s, nil
}

// NewServiceFromEntries builds an index and matcher directly over the
// given entries, without persistence. Intended for tests and embedding.
func NewServiceFromEntries(entries []*core.KnowledgeEntry, opts ...ServiceOption) (*Service, error) {
	options := defaultServiceOptions(opts)

	s := &Service{
		logger:  options.logger,
		options: options,
	}

	if err := s.rebuild(entries); err != nil {
		return nil, err
	}

	return s, nil
}

func defaultServiceOptions(opts []ServiceOption) *serviceOptions {
	options := &serviceOptions{
		matchConfig: match.DefaultConfig(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Reindex rebuilds the index and matcher from the stored entries.
func (s *Service) Reindex(ctx context.Context) error {
	if s.repository == nil {
		return ErrNoRepository
	}

	entries, err := s.repository.ListEntries(ctx)
	if err != nil {
		return err
	}

	return s.rebuild(entries)
}

func (s *Service) rebuild(entries []*core.KnowledgeEntry) error {
	store, err := search.NewStore(entries)
	if err != nil {
		return err
	}

	index, err := search.NewIndex(store)
	if err != nil {
		return err
	}

	synth := s.options.synthesizer
	if synth == nil && s.options.aiConfig != nil {
		synth, err = openai.NewSynthesizer(s.options.aiConfig)
		if err != nil {
			return err
		}
	}

	matcherOpts := []match.Option{
		match.WithConfig(s.options.matchConfig),
		match.WithLogger(s.logger),
	}
	if synth != nil {
		matcherOpts = append(matcherOpts, match.WithSynthesizer(synth))
	}

	matcher, err := match.NewMatcher(index, matcherOpts...)
	if err != nil {
		return err
	}

	s.index = index
	s.matcher = matcher
	return nil
}

// Match answers a single question against the knowledge base.
func (s *Service) Match(ctx context.Context, question, category string) *core.MatchResult {
	return s.matcher.Match(ctx, question, category)
}

// BatchMatch answers a batch of questions concurrently. Results are in
// question order. poolSize <= 0 selects a default based on CPU count.
func (s *Service) BatchMatch(ctx context.Context, questions []match.BatchQuestion, poolSize int) ([]*core.MatchResult, error) {
	runner, err := match.NewBatchRunner(s.matcher, poolSize)
	if err != nil {
		return nil, err
	}
	defer runner.Release()

	return runner.Run(ctx, questions), nil
}

// NewLoader creates a knowledge-base loader over the service's
// repository. Call Reindex after loading to pick up the new entries.
func (s *Service) NewLoader(opts ...ingestion.Option) (*ingestion.Loader, error) {
	if s.repository == nil {
		return nil, ErrNoRepository
	}
	return ingestion.NewLoader(s.repository, opts...)
}

// Repository returns the underlying entry repository, or nil for an
// in-memory service.
func (s *Service) Repository() storage.EntryRepository {
	return s.repository
}

// EntryCount returns the number of indexed entries.
func (s *Service) EntryCount() int {
	return s.index.EntryCount()
}

// VocabularySize returns the number of distinct terms in the index.
func (s *Service) VocabularySize() int {
	return s.index.VocabularySize()
}

// DocumentStats returns the number of indexed entries per document.
func (s *Service) DocumentStats() map[string]int {
	return s.index.Store().DocumentCounts()
}

// SectionCount returns the number of distinct sections across documents.
func (s *Service) SectionCount() int {
	return s.index.Store().SectionCount()
}

// Close releases storage resources. In-memory services have none.
func (s *Service) Close() error {
	if s.repository != nil {
		if err := s.repository.Close(); err != nil {
			s.logger.Error("error closing entry repository", "err", err)
			return err
		}
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}
