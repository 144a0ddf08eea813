package main

import (
	"github.com/spf13/cobra"

	"citysuggest/internal/qgram"
)

var qgramSize int

var rootCmd = &cobra.Command{
	Use:          "qgram",
	Short:        "Fuzzy prefix search over city lists",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&qgramSize, "q", "q", qgram.DefaultQ, "q-gram size")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
