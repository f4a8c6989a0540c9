package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khanglvm/quickfind/internal/search"
	"github.com/spf13/cobra"
)

// searchFlags holds per-call overrides of the configured search options.
type searchFlags struct {
	jsonOutput bool
	limit      int
	minScore   float64
	noTypos    bool
	fullScan   bool
	explain    bool
}

// apply overrides opts with the flags the user set.
func (f *searchFlags) apply(cmd *cobra.Command, opts search.Options) search.Options {
	if cmd.Flags().Changed("limit") {
		opts.MaxResults = f.limit
	}
	if cmd.Flags().Changed("min-score") {
		opts.MinScore = f.minScore
	}
	if f.noTypos {
		opts.SuggestTypos = false
	}
	if f.fullScan {
		opts.FullScan = true
	}
	return opts
}

// NewSearchCmd creates the 'search' command.
func NewSearchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Long: `Rank catalog items against a free-text query.

Abbreviations, synonyms and misspellings are understood. When nothing
matches, spelling corrections from the catalog are tried automatically.
Items related to your recent picks are boosted when history is enabled.`,
		Example: `  # Search the configured catalog
  quickfind search binary search

  # Search a specific file, show why each result matched
  quickfind search --catalog algorithms.jsonl --explain dikstra

  # Machine-readable output
  quickfind search --json --limit 5 dfs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), &flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "Maximum number of results")
	cmd.Flags().Float64Var(&flags.minScore, "min-score", 0, "Drop results scoring below this value (0-1)")
	cmd.Flags().BoolVar(&flags.noTypos, "no-typos", false, "Disable spelling correction")
	cmd.Flags().BoolVar(&flags.fullScan, "full-scan", false, "Score the whole catalog before truncating")
	cmd.Flags().BoolVarP(&flags.explain, "explain", "e", false, "Explain each result")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, flags *searchFlags) error {
	ws, err := openWorkspace(cmd, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	opts := flags.apply(cmd, ws.cfg.Search)
	results, err := ws.search(cmd, query, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flags.jsonOutput {
		data, err := formatJSON(results)
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Fprintln(out, data)
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintf(out, "No results for '%s'.\n", query)
		if suggestions := ws.engine.DidYouMean(query, ws.items, 0); len(suggestions) > 0 {
			fmt.Fprintf(out, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
		}
		return nil
	}

	fmt.Fprintf(out, "Results for '%s' (%d):\n\n", query, len(results))
	newRenderer(out, flags.explain).results(query, results)
	return nil
}

// formatJSON pretty-prints v.
func formatJSON(v interface{}) (string, error) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
