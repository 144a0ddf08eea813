package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"citysuggest/internal/qgram"
)

var queryLimit int

var queryCmd = &cobra.Command{
	Use:   "query <file>",
	Short: "Interactively query a city file",
	Long: `Builds a q-gram index from a tab-separated city file and reads queries
from stdin. Each query prints the number of prefix edit distances computed
and the best matches with their rating. Type "exit" to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "k", "k", 5, "number of matches to print")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open city file: %w", err)
	}
	defer f.Close()

	cmd.Println("reading...")
	idx := qgram.New(qgramSize)
	if _, err := idx.Load(f); err != nil {
		return fmt.Errorf("failed to read city file: %w", err)
	}
	cmd.Println("done.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("query : ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			return nil
		}

		prefix := qgram.Normalize(line)
		matches, peds := idx.FindMatches(prefix, qgram.Delta(prefix), queryLimit)
		cmd.Printf("[computed %d peds]\n", peds)
		for _, m := range matches {
			cmd.Printf("%s (rating = %f)\n", idx.Original(m.ID), m.Score)
		}
	}
}
