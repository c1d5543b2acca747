package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-match/internal/config"
	"github.com/jonathan/cv-match/internal/explain"
	"github.com/jonathan/cv-match/internal/llm"
	"github.com/jonathan/cv-match/internal/observability"
	"github.com/jonathan/cv-match/internal/pipeline"
	"github.com/jonathan/cv-match/internal/schemas"
	"github.com/jonathan/cv-match/internal/transfer"
	"github.com/jonathan/cv-match/internal/types"
)

var matchCommand = &cobra.Command{
	Use:   "match",
	Short: "Score one CV against one job posting",
	Long: `Computes the match between a CV facts file and a job requirements file: normalization -> comparison -> scoring -> explanation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runMatchCmd,
}

var (
	matchConfigPath string
	matchCV         string
	matchJob        string
	matchStrategy   string
	matchAPIKey     string
	matchVerbose    bool
)

func init() {
	// Config file flag (processed first)
	matchCommand.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	matchCommand.Flags().StringVar(&matchCV, "cv", "", "Path to CV facts JSON file")
	matchCommand.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job requirements JSON file")
	matchCommand.Flags().StringVar(&matchStrategy, "strategy", "", "Scoring strategy: hybrid (default), rules, ai")
	matchCommand.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	matchCommand.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(matchCommand)
}

func runMatchCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(matchConfigPath, config.Config{
		CV:       matchCV,
		Job:      matchJob,
		Strategy: matchStrategy,
		APIKey:   matchAPIKey,
		Verbose:  matchVerbose,
	})
	if err != nil {
		return err
	}

	if cfg.CV == "" {
		return fmt.Errorf("--cv is required (or set 'cv' in the config file)")
	}
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (or set 'job' in the config file)")
	}

	cvFacts, err := readCVFacts(cfg.CV)
	if err != nil {
		return err
	}
	job, err := readJobRequirements(cfg.Job)
	if err != nil {
		return err
	}

	client, err := buildLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	printer := observability.NewPrinter(os.Stdout)
	matcher, err := buildMatcher(cfg, client, printer)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	result, err := matcher.Match(runCtx, &types.MatchRequest{CVFacts: cvFacts, Job: job})
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if cfg.Verbose {
		printer.PrintTransferability(result.Transferability)
		printer.PrintMatchResult(result)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// loadMergedConfig loads the optional config file and applies CLI
// overrides on top of it
func loadMergedConfig(path string, overrides config.Config) (config.Config, error) {
	cfg := overrides
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = overrides.MergeWithDefaults(*loaded)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildLLMClient creates the Gemini client when an API key is available.
// Returns nil when not configured; the rules strategy works without one.
func buildLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		if cfg.StrategyOrDefault() == "rules" {
			return nil, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the %s strategy (use --strategy rules to run without an LLM)", cfg.StrategyOrDefault())
	}
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// buildMatcher assembles the pipeline for the configured strategy
func buildMatcher(cfg config.Config, client llm.Client, printer *observability.Printer) (*pipeline.Matcher, error) {
	var strategy pipeline.Strategy
	switch cfg.StrategyOrDefault() {
	case "rules":
		strategy = pipeline.NewRulesStrategy()
	case "hybrid":
		strategy = pipeline.NewHybridStrategy(transfer.NewAssessor(transfer.NewGeminiRater(client)))
	case "ai":
		strategy = pipeline.NewAIStrategy(client)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}

	var explainer *explain.Generator
	if client != nil {
		explainer = explain.NewGenerator(client)
	}

	opts := []pipeline.Option{}
	if cfg.Verbose && printer != nil {
		opts = append(opts, pipeline.WithProgress(printer.PrintStage))
	}

	return pipeline.NewMatcher(strategy, explainer, opts...), nil
}

func readCVFacts(path string) (*types.CVFacts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cv file %s: %w", path, err)
	}
	if err := schemas.ValidateCVFacts(data); err != nil {
		return nil, fmt.Errorf("cv file %s: %w", path, err)
	}
	var facts types.CVFacts
	if err := json.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse cv file %s: %w", path, err)
	}
	return &facts, nil
}

func readJobRequirements(path string) (*types.JobRequirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	if err := schemas.ValidateJobRequirements(data); err != nil {
		return nil, fmt.Errorf("job file %s: %w", path, err)
	}
	var job types.JobRequirements
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}
	return &job, nil
}
