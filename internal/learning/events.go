package learning

import (
	"strings"
	"time"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/storage"
)

// Interaction is a query together with the item picked for it, if any.
type Interaction struct {
	Query     string
	ItemID    string
	Category  string
	Timestamp time.Time
}

// NewInteraction creates an interaction stamped with the current time.
func NewInteraction(query string, selected *catalog.Item) Interaction {
	e := Interaction{
		Query:     strings.ToLower(strings.TrimSpace(query)),
		Timestamp: time.Now(),
	}
	if selected != nil {
		e.ItemID = selected.ID
		e.Category = selected.Category
	}
	return e
}

// ToStorage converts the event to the storage model.
func (e Interaction) ToStorage() storage.Interaction {
	return storage.Interaction{
		Query:     e.Query,
		ItemID:    e.ItemID,
		Category:  e.Category,
		Timestamp: e.Timestamp,
	}
}

// fromStorage converts a stored row back into an event.
func fromStorage(s storage.Interaction) Interaction {
	return Interaction{
		Query:     s.Query,
		ItemID:    s.ItemID,
		Category:  s.Category,
		Timestamp: s.Timestamp,
	}
}

// selected rebuilds enough of the picked item for session replay.
func (e Interaction) selected() *catalog.Item {
	if e.ItemID == "" {
		return nil
	}
	return &catalog.Item{ID: e.ItemID, Category: e.Category}
}
