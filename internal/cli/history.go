package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/khanglvm/quickfind/internal/storage"
	"github.com/spf13/cobra"
)

// recentShown is how many recent interactions 'history status' lists.
const recentShown = 5

// NewHistoryCmd creates the history command group.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or delete the interaction history",
		Long: `Picked results are stored locally in ~/.quickfind/history.db so a new
session can pick up the context of the previous one. Searches are logged
as SHA256 hashes only.

Set "history": {"enabled": false} in the config or QUICKFIND_HISTORY=false
to turn history off.`,
	}

	cmd.AddCommand(newHistoryStatusCmd())
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

// newHistoryStatusCmd shows history statistics.
func newHistoryStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show history statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path, err := historyPath(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "History Status")
			fmt.Fprintln(out, "==============")
			fmt.Fprintf(out, "Enabled:   %t\n", cfg.HistoryEnabled())
			fmt.Fprintf(out, "Database:  %s\n", path)
			if h := cfg.History; h != nil && h.RetentionDays > 0 {
				fmt.Fprintf(out, "Retention: %d days\n", h.RetentionDays)
			} else {
				fmt.Fprintln(out, "Retention: forever")
			}

			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(out, "Interactions: 0 (no database yet)")
				return nil
			}

			store := storage.NewStorage(path)
			if err := store.Init(); err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			count, err := store.CountInteractions()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Interactions: %d\n", count)

			recent, err := store.RecentInteractions(recentShown)
			if err != nil {
				return err
			}
			if len(recent) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Recent:")
				for _, in := range recent {
					fmt.Fprintf(out, "  • %s → %s (%s)\n", in.Query, in.ItemID, in.Timestamp.Local().Format("2006-01-02 15:04"))
				}
			}
			return nil
		},
	}
}

// newHistoryClearCmd deletes the history database.
func newHistoryClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path, err := historyPath(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprint(out, "This will delete all history. Continue? (y/N): ")
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.TrimSpace(response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := os.Remove(path); err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintln(out, "No history found")
					return nil
				}
				return fmt.Errorf("failed to delete database: %w", err)
			}
			for _, suffix := range []string{"-wal", "-shm"} {
				os.Remove(path + suffix)
			}

			fmt.Fprintln(out, "History cleared successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
