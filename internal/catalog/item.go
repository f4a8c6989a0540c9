/*
Package catalog defines the searchable item model and loads catalogs from disk.

The search engine only consumes finished Item values; building them from domain
records is the caller's job. LoadFile covers the common case of a JSON array or
a JSONL file with one item per line.
*/
package catalog

import "strings"

// Item is a single searchable catalog entry. The engine never mutates it.
type Item struct {
	// ID uniquely identifies the item within a catalog.
	ID string `json:"id"`

	// Title is the primary matched field.
	Title string `json:"title"`

	// Category is an optional grouping used for category matches and context boosts.
	Category string `json:"category,omitempty"`

	// Tags are ordered keywords attached to the item.
	Tags []string `json:"tags,omitempty"`

	// Summary is a short description.
	Summary string `json:"summary,omitempty"`

	// SearchableText is free-form auxiliary text.
	SearchableText string `json:"searchableText,omitempty"`
}

// Text returns every field of the item joined by spaces and lowercased.
func (it *Item) Text() string {
	var b strings.Builder
	b.WriteString(it.Title)
	b.WriteByte(' ')
	b.WriteString(it.Category)
	b.WriteByte(' ')
	b.WriteString(it.Summary)
	for _, tag := range it.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	b.WriteByte(' ')
	b.WriteString(it.SearchableText)
	return strings.ToLower(b.String())
}

// Pointers returns a slice of pointers into items, in order.
func Pointers(items []Item) []*Item {
	ptrs := make([]*Item, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	return ptrs
}
