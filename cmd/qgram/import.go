package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"citysuggest/internal/db"
)

var (
	importDatabaseURL string
	importReplace     bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a city file into PostgreSQL",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDatabaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "delete existing cities before importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importDatabaseURL == "" {
		return fmt.Errorf("database url is required (--database-url or DATABASE_URL)")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open city file: %w", err)
	}
	defer f.Close()

	ctx := cmd.Context()
	database, err := db.New(ctx, importDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.RunMigrations(importDatabaseURL); err != nil {
		return err
	}

	n, err := database.ImportCities(ctx, f, importReplace)
	if err != nil {
		return fmt.Errorf("failed to import cities: %w", err)
	}

	cmd.Printf("Imported %d cities\n", n)
	return nil
}
