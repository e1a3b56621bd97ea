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

package ingestion

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/candorlabs/qanswer/storage"
)

// Loader reads knowledge-base documents and persists their entries.
// Duplicate suppression happens in the repository, so loading the same
// document twice is harmless.
type Loader struct {
	repository storage.EntryRepository
	logger     *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new knowledge-base loader.
func NewLoader(repository storage.EntryRepository, opts ...Option) (*Loader, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	l := &Loader{
		repository: repository,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Result reports the outcome of loading one document.
type Result struct {
	DocumentName string
	Parsed       int // rows that yielded a valid entry
	Added        int // entries actually stored (parsed minus duplicates)
}

// LoadFile parses a single CSV document and stores its entries. The
// document name is the file's base name without extension.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	entries, err := ParseCSV(f, name)
	if err != nil {
		return nil, err
	}

	added, err := l.repository.AddEntries(ctx, entries...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		DocumentName: name,
		Parsed:       len(entries),
		Added:        len(added),
	}
	l.logger.Info("loaded document",
		"document", result.DocumentName,
		"parsed", result.Parsed,
		"added", result.Added)

	return result, nil
}

// LoadDir loads every .csv file in a directory, in name order.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]*Result, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(de.Name()), ".csv") {
			paths = append(paths, filepath.Join(dir, de.Name()))
		}
	}
	sort.Strings(paths)

	var results []*Result
	for _, path := range paths {
		result, err := l.LoadFile(ctx, path)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}
