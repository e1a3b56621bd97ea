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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/candorlabs/qanswer"
	"github.com/candorlabs/qanswer/ai"
	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/ingestion"
	"github.com/candorlabs/qanswer/match"
	"github.com/candorlabs/qanswer/storage/badger"
)

func main() {
	// Optional .env file for local development; missing files are fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "qanswer",
		Usage: "Questionnaire auto-answering over a question/answer knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "Load knowledge-base CSV documents into the store",
				ArgsUsage: "FILE [FILE...]",
				Action:    loadCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Load every .csv file in a directory instead of named files",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question against the knowledge base",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "category",
						Usage: "Questionnaire section the question belongs to",
					},
				}, matchFlags()...),
			},
			{
				Name:   "batch",
				Usage:  "Answer an inbound questionnaire CSV",
				Action: batchCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Questionnaire CSV to answer",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output CSV path (stdout if omitted)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent matching workers (0 selects a CPU-based default)",
					},
				}, matchFlags()...),
			},
			{
				Name:   "stats",
				Usage:  "Print knowledge-base statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB knowledge-base directory",
		EnvVars:  []string{"QANSWER_DB"},
		Required: true,
	}
}

// matchFlags are shared by the commands that answer questions.
func matchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "synthesize",
			Usage:   "Compose answers with an LLM instead of returning stored answers verbatim",
			EnvVars: []string{"QANSWER_SYNTHESIZE"},
		},
		&cli.StringFlag{
			Name:    "llm-host",
			Usage:   "OpenAI-compatible endpoint for answer synthesis",
			EnvVars: []string{"QANSWER_LLM_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Usage:   "Model name for answer synthesis",
			EnvVars: []string{"QANSWER_LLM_MODEL"},
			Value:   "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "llm-token",
			Usage:   "API token for the synthesis endpoint",
			EnvVars: []string{"QANSWER_LLM_TOKEN"},
			Value:   "none",
		},
		&cli.StringFlag{
			Name:    "org",
			Usage:   "Name of the organization whose knowledge base this is",
			EnvVars: []string{"QANSWER_ORG"},
		},
		&cli.StringFlag{
			Name:    "counterparty",
			Usage:   "Name of the organization sending the questionnaire",
			EnvVars: []string{"QANSWER_COUNTERPARTY"},
		},
	}
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEntryRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	loader, err := ingestion.NewLoader(repo)
	if err != nil {
		return err
	}

	var results []*ingestion.Result
	if dir := c.String("dir"); dir != "" {
		results, err = loader.LoadDir(ctx, dir)
	} else {
		if c.NArg() == 0 {
			return fmt.Errorf("no input files; pass CSV paths or --dir")
		}
		for _, path := range c.Args().Slice() {
			result, loadErr := loader.LoadFile(ctx, path)
			if loadErr != nil {
				err = loadErr
				break
			}
			results = append(results, result)
		}
	}
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	total := 0
	for _, result := range results {
		fmt.Fprintf(os.Stderr, "%s: %d parsed, %d added\n",
			result.DocumentName, result.Parsed, result.Added)
		total += result.Added
	}
	fmt.Fprintf(os.Stderr, "Total entries added: %d\n", total)

	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("no question given")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result := svc.Match(context.Background(), question, c.String("category"))

	if result.Answer != nil {
		fmt.Println(result.Answer.Text())
	}
	fmt.Printf("Confidence: %d (%s)\n", result.ConfidenceScore, result.ConfidenceLevel)
	if result.Evidence != "" {
		fmt.Printf("Evidence: %s\n", result.Evidence)
	}
	if result.Notes != "" {
		fmt.Printf("Notes: %s\n", result.Notes)
	}

	return nil
}

func batchCommand(c *cli.Context) error {
	input, err := os.Open(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to open questionnaire: %w", err)
	}
	defer input.Close()

	rows, err := ingestion.ParseQuestionnaire(input)
	if err != nil {
		return fmt.Errorf("failed to parse questionnaire: %w", err)
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	questions := make([]match.BatchQuestion, len(rows))
	for i, row := range rows {
		questions[i] = match.BatchQuestion{Question: row.Question, Category: row.Category}
	}

	results, err := svc.BatchMatch(context.Background(), questions, c.Int("pool-size"))
	if err != nil {
		return fmt.Errorf("batch match failed: %w", err)
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed to create output: %w", createErr)
		}
		defer f.Close()
		out = f
	}

	if err := ingestion.WriteResults(out, rows, results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	summary := match.Summarize(results)
	fmt.Fprintf(os.Stderr, "Answered %d questions, mean confidence %.1f\n",
		summary.Total, summary.MeanConfidence)
	for _, level := range levelOrder() {
		if n := summary.ByLevel[level]; n > 0 {
			fmt.Fprintf(os.Stderr, "  %s: %d\n", level, n)
		}
	}

	return nil
}

func statsCommand(c *cli.Context) error {
	svc, err := qanswer.NewService(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer svc.Close()

	fmt.Printf("Entries: %d\n", svc.EntryCount())
	fmt.Printf("Sections: %d\n", svc.SectionCount())
	fmt.Printf("Vocabulary: %d terms\n", svc.VocabularySize())

	stats := svc.DocumentStats()
	docs := make([]string, 0, len(stats))
	for doc := range stats {
		docs = append(docs, doc)
	}
	sort.Strings(docs)
	for _, doc := range docs {
		fmt.Printf("  %s: %d entries\n", doc, stats[doc])
	}

	return nil
}

func openService(c *cli.Context) (*qanswer.Service, error) {
	config := match.DefaultConfig()
	config.OrgName = c.String("org")
	config.CounterpartyName = c.String("counterparty")

	opts := []qanswer.ServiceOption{qanswer.WithMatchConfig(config)}
	if c.Bool("synthesize") {
		aiConfig := ai.NewConfig(
			ai.WithHost(c.String("llm-host")),
			ai.WithModel(c.String("llm-model")),
			ai.WithToken(c.String("llm-token")),
		)
		opts = append(opts, qanswer.WithSynthesis(aiConfig))
	}

	svc, err := qanswer.NewService(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	return svc, nil
}

func levelOrder() []core.Level {
	return []core.Level{core.LevelHigh, core.LevelMedium, core.LevelLow, core.LevelReview}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
