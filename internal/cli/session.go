package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/khanglvm/quickfind/internal/search"
	"github.com/spf13/cobra"
)

const sessionHelp = `Type a query to search. Commands:
  :pick N    record that result N of the last search was chosen
  :suggest   show recent queries and categories
  :help      show this help
  :quit      leave the session`

// NewSessionCmd creates the interactive 'session' command.
func NewSessionCmd() *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Search interactively with session learning",
		Long: `Start an interactive search loop.

Picking a result with ':pick N' teaches the session what you are after:
later searches boost related items and categories. With history enabled
picks are saved and the next session starts where this one ended.

` + sessionHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, explain)
		},
	}

	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Explain each result")

	return cmd
}

// sessionLoop holds the state of one interactive session.
type sessionLoop struct {
	ws      *workspace
	cmd     *cobra.Command
	out     io.Writer
	render  *renderer
	query   string
	results []search.Result
}

func runSession(cmd *cobra.Command, explain bool) error {
	ws, err := openWorkspace(cmd, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	out := cmd.OutOrStdout()
	loop := &sessionLoop{
		ws:     ws,
		cmd:    cmd,
		out:    out,
		render: newRenderer(out, explain),
	}

	fmt.Fprintf(out, "quickfind session: %d items. Type :help for commands.\n", len(ws.items))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		quit, err := loop.handle(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// handle processes one input line and reports whether the session ends.
func (l *sessionLoop) handle(line string) (bool, error) {
	switch {
	case line == "":
		return false, nil
	case line == ":quit" || line == ":q" || line == ":exit":
		return true, nil
	case line == ":help":
		fmt.Fprintln(l.out, sessionHelp)
	case line == ":suggest":
		l.suggest()
	case strings.HasPrefix(line, ":pick"):
		l.pick(strings.TrimSpace(strings.TrimPrefix(line, ":pick")))
	case strings.HasPrefix(line, ":"):
		fmt.Fprintf(l.out, "Unknown command %s. Type :help for commands.\n", line)
	default:
		return false, l.search(line)
	}
	return false, nil
}

func (l *sessionLoop) search(query string) error {
	results, err := l.ws.search(l.cmd, query, l.ws.cfg.Search)
	if err != nil {
		return err
	}
	l.query, l.results = query, results

	if len(results) == 0 {
		fmt.Fprintf(l.out, "No results for '%s'.\n", query)
		return nil
	}
	l.render.results(query, results)
	return nil
}

func (l *sessionLoop) pick(arg string) {
	if len(l.results) == 0 {
		fmt.Fprintln(l.out, "Nothing to pick. Search first.")
		return
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(l.results) {
		fmt.Fprintf(l.out, "Pick a number between 1 and %d.\n", len(l.results))
		return
	}

	item := l.results[n-1].Item
	l.ws.record(l.query, item)
	fmt.Fprintf(l.out, "Picked %s.\n", item.Title)
}

func (l *sessionLoop) suggest() {
	suggestions := l.ws.session.Suggestions()
	if len(suggestions) == 0 {
		fmt.Fprintln(l.out, "No session activity yet.")
		return
	}
	for _, s := range suggestions {
		fmt.Fprintf(l.out, "  • %s\n", s)
	}
}
