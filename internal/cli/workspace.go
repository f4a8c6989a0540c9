package cli

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/config"
	"github.com/khanglvm/quickfind/internal/learning"
	"github.com/khanglvm/quickfind/internal/lexicon"
	"github.com/khanglvm/quickfind/internal/search"
	"github.com/khanglvm/quickfind/internal/storage"
	"github.com/spf13/cobra"
)

// workspace is everything a searching command needs.
type workspace struct {
	cfg     *config.Config
	items   []catalog.Item
	engine  *search.Engine
	session *learning.Session

	// Nil when history is disabled.
	store   *storage.SQLiteStorage
	tracker *learning.Tracker
}

// loadConfig reads --config, or the default path, falling back to defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(config.ExpandPath(flagString(cmd, "config")))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// configPath returns --config or the default config location.
func configPath(cmd *cobra.Command) (string, error) {
	if p := flagString(cmd, "config"); p != "" {
		return config.ExpandPath(p), nil
	}
	return config.GetDefaultConfigPath()
}

// historyPath returns the configured history database path.
func historyPath(cfg *config.Config) (string, error) {
	if cfg.History != nil && cfg.History.Path != "" {
		return config.ExpandPath(cfg.History.Path), nil
	}
	return storage.DefaultPath()
}

// openWorkspace loads config, catalog and lexicon. With withHistory set and
// history enabled, it also opens the interaction log and restores the
// session from it.
func openWorkspace(cmd *cobra.Command, withHistory bool) (*workspace, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	catalogPath := flagString(cmd, "catalog")
	if catalogPath == "" {
		catalogPath = cfg.Catalog
	}
	if catalogPath == "" {
		return nil, fmt.Errorf("no catalog configured\n\n💡 Pass --catalog <file> or set \"catalog\" in the config file")
	}

	items, err := catalog.LoadFile(config.ExpandPath(catalogPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	lex, err := lexicon.LoadFile(config.ExpandPath(cfg.Lexicon))
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	engine, err := search.NewEngine(lex, search.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}

	ws := &workspace{
		cfg:     cfg,
		items:   items,
		engine:  engine,
		session: learning.NewSession(),
	}

	if withHistory && cfg.HistoryEnabled() {
		if err := ws.openHistory(); err != nil {
			return nil, err
		}
	}

	slog.Debug("workspace loaded", "catalog", catalogPath, "items", len(items), "history", ws.store != nil)
	return ws, nil
}

func (w *workspace) openHistory() error {
	path, err := historyPath(w.cfg)
	if err != nil {
		return err
	}

	w.store = storage.NewStorage(path)
	w.tracker = learning.NewTracker(w.store)
	if !w.tracker.IsEnabled() {
		return nil
	}

	if retention := w.cfg.History.Retention(); retention > 0 {
		if err := w.store.Cleanup(retention); err != nil {
			log.Printf("Warning: history cleanup failed: %v", err)
		}
	}

	n, err := learning.Restore(w.store, w.session)
	if err != nil {
		log.Printf("Warning: failed to restore session: %v", err)
		return nil
	}
	slog.Debug("session restored", "interactions", n)
	return nil
}

// search runs query with the workspace session and logs the search.
func (w *workspace) search(cmd *cobra.Command, query string, opts search.Options) ([]search.Result, error) {
	results, err := w.engine.Search(commandContext(cmd), query, w.items, opts, w.session)
	if err != nil {
		return nil, err
	}

	if w.store != nil {
		if err := w.store.RecordSearch(storage.NewSearchRecord(query, len(results))); err != nil {
			log.Printf("Warning: failed to record search: %v", err)
		}
	}
	return results, nil
}

// record notes that item was picked for query.
func (w *workspace) record(query string, item *catalog.Item) {
	if w.tracker != nil {
		w.tracker.Record(w.session, query, item)
		return
	}
	w.session.RecordInteraction(query, item)
}

// Close flushes pending interactions and closes the history database.
func (w *workspace) Close() {
	if w.tracker != nil {
		w.tracker.Stop()
	}
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
