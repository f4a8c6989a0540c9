/*
Package main is the entry point for the quickfind CLI.

quickfind is a typo-tolerant fuzzy search engine for item catalogs. It
ranks items with lexical, abbreviation, synonym, phonetic and n-gram
signals, corrects misspelled queries and learns from picks made during a
session.

Usage:
  quickfind [command]

Available Commands:
  search      Search the catalog
  suggest     Suggest spelling corrections for a query
  session     Search interactively with session learning
  serve       Run the MCP server (stdio transport)
  benchmark   Compare the fuzzy engine with BM25 keyword search
  history     Inspect or delete the interaction history
  config      Create or show the configuration
  version     Show version information

Examples:
  # Create a config pointing at a catalog
  quickfind config init --catalog ~/algorithms.jsonl

  # Search it
  quickfind search dikstra

  # Run as MCP server
  quickfind serve
*/
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/khanglvm/quickfind/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := cli.NewRootCmd()
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
