package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-match/internal/config"
	"github.com/jonathan/cv-match/internal/extraction"
	"github.com/jonathan/cv-match/internal/llm"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured CV facts from plain text",
	Long:  `Reads a plain-text CV and extracts the structured facts used by the match pipeline. Only claims present in the text are extracted; nothing is inferred.`,
	RunE:  runExtract,
}

var (
	extractInput  string
	extractOutput string
	extractAPIKey string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", "Path to plain-text CV file (required)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Path to write CV facts JSON (defaults to stdout)")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	_ = extractCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	cvText, err := os.ReadFile(extractInput)
	if err != nil {
		return fmt.Errorf("failed to read cv file %s: %w", extractInput, err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	cfg := config.Config{}
	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	facts, err := extraction.NewExtractor(client).Extract(runCtx, string(cvText))
	if err != nil {
		if facts == nil {
			return err
		}
		// Degraded record: still emit it so the attempt is not lost
		fmt.Fprintf(os.Stderr, "Warning: extraction degraded: %v\n", err)
	}

	out := os.Stdout
	if extractOutput != "" {
		f, err := os.Create(extractOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", extractOutput, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(facts)
}
