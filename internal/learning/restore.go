package learning

import (
	"fmt"

	"github.com/khanglvm/quickfind/internal/storage"
)

// Restore replays the latest WindowSize stored interactions into session,
// oldest first, and returns how many were applied.
func Restore(store storage.Storage, session *Session) (int, error) {
	if store == nil || session == nil {
		return 0, nil
	}

	rows, err := store.RecentInteractions(WindowSize)
	if err != nil {
		return 0, fmt.Errorf("failed to load interactions: %w", err)
	}

	for i := len(rows) - 1; i >= 0; i-- {
		e := fromStorage(rows[i])
		session.RecordInteraction(e.Query, e.selected())
	}
	return len(rows), nil
}
