package cli

import (
	"fmt"

	"github.com/khanglvm/quickfind/internal/benchmark"
	"github.com/spf13/cobra"
)

// NewBenchmarkCmd creates the 'benchmark' command comparing the fuzzy
// engine with a BM25 baseline.
func NewBenchmarkCmd() *cobra.Command {
	var (
		queries    []string
		iterations int
		topK       int
		sample     int
		category   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Compare the fuzzy engine with BM25 keyword search",
		Long: `Measure per-query latency of the fuzzy engine and of a Bleve BM25
index built over the same catalog, and how much their top results agree.

Without --query, queries are taken from the first catalog titles, each
followed by a misspelled variant.`,
		Example: `  # Benchmark with queries derived from the catalog
  quickfind benchmark --catalog algorithms.jsonl

  # Benchmark within one category
  quickfind benchmark --category sorting

  # Benchmark specific queries
  quickfind benchmark -q dfs -q "dikstra shortest path" --iterations 10

  # Output as JSON
  quickfind benchmark --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, false)
			if err != nil {
				return err
			}
			defer ws.Close()

			if len(queries) == 0 {
				source := ws.items
				if category != "" {
					source = benchmark.InCategory(ws.items, category)
				}
				queries = benchmark.DefaultQueries(source, sample)
			}

			indexer, err := benchmark.BuildIndex(ws.items)
			if err != nil {
				return err
			}
			defer indexer.Close()

			report, err := benchmark.Run(commandContext(cmd), ws.engine, indexer, ws.items, benchmark.Config{
				Queries:    queries,
				Iterations: iterations,
				TopK:       topK,
				Options:    ws.cfg.Search,
				Category:   category,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := formatJSON(report)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
				return nil
			}

			fmt.Fprint(out, benchmark.FormatResult(report))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "Query to benchmark (repeatable)")
	cmd.Flags().IntVarP(&iterations, "iterations", "i", 3, "Runs per query")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 5, "Results compared per query")
	cmd.Flags().IntVar(&sample, "sample", 10, "Catalog titles used when no --query is given")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Restrict both searchers to one category")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}
