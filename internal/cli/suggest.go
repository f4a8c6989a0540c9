package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSuggestCmd creates the 'suggest' command.
func NewSuggestCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Suggest spelling corrections for a query",
		Long: `Print "did you mean" corrections drawn from the catalog vocabulary.

Only words within two edits whose similarity reaches --threshold are listed.`,
		Example: `  quickfind suggest bubbel
  quickfind suggest --threshold 0.8 dikstra`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, strings.Join(args, " "), threshold)
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.6, "Minimum similarity of a suggestion (0-1)")

	return cmd
}

func runSuggest(cmd *cobra.Command, query string, threshold float64) error {
	ws, err := openWorkspace(cmd, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	out := cmd.OutOrStdout()
	suggestions := ws.engine.DidYouMean(query, ws.items, threshold)
	if len(suggestions) == 0 {
		fmt.Fprintf(out, "No suggestions for '%s'.\n", query)
		return nil
	}

	for _, s := range suggestions {
		fmt.Fprintln(out, s)
	}
	return nil
}
