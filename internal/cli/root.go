/*
Package cli implements the quickfind commands.

Every command that searches loads the same workspace: the configuration,
the catalog named by --catalog or the config file, the lexicon and, when
history is enabled, the SQLite interaction log that restores the session.
*/
package cli

import (
	"github.com/khanglvm/quickfind/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the quickfind command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quickfind",
		Short: "Typo-tolerant fuzzy search over item catalogs",
		Long: `quickfind ranks the items of a catalog against free-text queries.

It combines lexical matching with abbreviation, synonym, phonetic and
n-gram signals, corrects typos when nothing matches, and boosts items
related to what you picked earlier in the session.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.quickfind.json)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog file (.json or .jsonl)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(NewSearchCmd())
	rootCmd.AddCommand(NewSuggestCmd())
	rootCmd.AddCommand(NewSessionCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewBenchmarkCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// flagString returns the value of a local or inherited string flag, or ""
// when the command tree does not define it.
func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}
