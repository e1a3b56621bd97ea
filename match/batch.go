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
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/candorlabs/qanswer/core"
)

// BatchQuestion is one question of a batch run.
type BatchQuestion struct {
	Question string
	Category string
}

// BatchRunner answers batches of questions concurrently on a worker pool.
type BatchRunner struct {
	matcher *Matcher
	pool    *ants.Pool
}

// NewBatchRunner creates a runner over the given matcher. A non-positive
// poolSize defaults to half the CPUs, minimum one worker.
func NewBatchRunner(matcher *Matcher, poolSize int) (*BatchRunner, error) {
	if poolSize <= 0 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &BatchRunner{matcher: matcher, pool: pool}, nil
}

// Run matches every question and returns the results in input order.
func (b *BatchRunner) Run(ctx context.Context, questions []BatchQuestion) []*core.MatchResult {
	results := make([]*core.MatchResult, len(questions))

	var wg sync.WaitGroup
	for i, q := range questions {
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			results[i] = b.matcher.Match(ctx, q.Question, q.Category)
		})
		if err != nil {
			// Pool closed or overloaded: answer inline so the slot is
			// never left empty.
			results[i] = b.matcher.Match(ctx, q.Question, q.Category)
			wg.Done()
		}
	}
	wg.Wait()

	return results
}

// Release releases the worker pool. The runner should not be used after
// calling Release.
func (b *BatchRunner) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// Summary aggregates a batch run by confidence level.
type Summary struct {
	Total          int
	ByLevel        map[core.Level]int
	MeanConfidence float64
}

// Summarize tallies results by confidence level and computes the mean
// confidence score.
func Summarize(results []*core.MatchResult) Summary {
	s := Summary{
		Total:   len(results),
		ByLevel: make(map[core.Level]int, 4),
	}
	if len(results) == 0 {
		return s
	}

	total := 0
	for _, r := range results {
		s.ByLevel[r.ConfidenceLevel]++
		total += r.ConfidenceScore
	}
	s.MeanConfidence = float64(total) / float64(len(results))
	return s
}
