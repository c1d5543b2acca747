package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-match/internal/db"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired match results from the database",
	Long:  `Remove all cached match results whose TTL has elapsed. Intended to run periodically (e.g. from cron) against the same database the server uses.`,
	RunE:  runPurge,
}

var purgeDatabaseURL string

func init() {
	purgeCmd.Flags().StringVar(&purgeDatabaseURL, "database-url", "", "Postgres connection string (defaults to DATABASE_URL)")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := purgeDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or pass --database-url)")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	purged, err := database.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired matches: %w", err)
	}

	fmt.Printf("Purged %d expired match result(s)\n", purged)
	return nil
}
