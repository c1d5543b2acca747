// Package main provides the entry point for the CV match scoring agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_agent",
	Short: "CV to job match scoring agent",
	Long:  "match_agent scores how well a candidate's CV matches a job's requirements, combining deterministic rule-based comparison with LLM-assessed skill transferability, and explains the verdict.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
