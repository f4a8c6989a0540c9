/*
Package learning holds the session state that personalises ranking.

A Session remembers the most recent queries and how often each item and
category was picked. The search engine reads it to compute a contextual
boost. A Tracker optionally persists interactions in the background so a
later process can Restore the window.
*/
package learning

import (
	"sort"
	"strings"
	"sync"

	"github.com/khanglvm/quickfind/internal/catalog"
)

const (
	// WindowSize is the number of recent queries a session keeps.
	WindowSize = 50

	itemBoost      = 0.1
	itemBoostCap   = 0.3
	categoryBoost  = 0.05
	categoryCap    = 0.2
	queryBoost     = 0.02
	queryBoostCap  = 0.1
	maxRecent      = 5
	maxCategories  = 3
	minOverlapWord = 3
)

// Session is the per-user search context. The zero value is not usable; call
// NewSession. A nil *Session is treated as an empty session by the read methods.
type Session struct {
	mu         sync.RWMutex
	queries    []string // oldest first, at most WindowSize
	items      map[string]int
	categories map[string]int
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{
		queries:    make([]string, 0, WindowSize),
		items:      make(map[string]int),
		categories: make(map[string]int),
	}
}

// RecordInteraction notes that query was issued and, when selected is not
// nil, that the user picked selected for it.
func (s *Session) RecordInteraction(query string, selected *catalog.Item) {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	if q != "" {
		if len(s.queries) == WindowSize {
			copy(s.queries, s.queries[1:])
			s.queries = s.queries[:WindowSize-1]
		}
		s.queries = append(s.queries, q)
	}

	if selected == nil || selected.ID == "" {
		return
	}
	s.items[selected.ID]++
	if c := strings.ToLower(strings.TrimSpace(selected.Category)); c != "" {
		s.categories[c]++
	}
}

// ContextualScore returns the boost in [0, 0.6] that prior interactions give
// item for query.
func (s *Session) ContextualScore(query string, item *catalog.Item) float64 {
	if s == nil || item == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	score := capped(float64(s.items[item.ID])*itemBoost, itemBoostCap)

	if c := strings.ToLower(strings.TrimSpace(item.Category)); c != "" {
		score += capped(float64(s.categories[c])*categoryBoost, categoryCap)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(s.queries) == 0 {
		return score
	}

	overlap := 0.0
	for _, recent := range s.queries {
		if overlaps(q, recent) {
			overlap += queryBoost
		}
	}
	return score + capped(overlap, queryBoostCap)
}

// RecentQueries returns up to n distinct queries, newest first. n <= 0 returns
// all of them.
func (s *Session) RecentQueries(n int) []string {
	if s == nil {
		return []string{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.recentLocked(n)
}

func (s *Session) recentLocked(n int) []string {
	out := make([]string, 0, len(s.queries))
	seen := make(map[string]bool, len(s.queries))
	for i := len(s.queries) - 1; i >= 0; i-- {
		q := s.queries[i]
		if seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// TopCategories returns up to n categories by selection count, ties
// alphabetical.
func (s *Session) TopCategories(n int) []string {
	if s == nil {
		return []string{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.topCategoriesLocked(n)
}

func (s *Session) topCategoriesLocked(n int) []string {
	cats := make([]string, 0, len(s.categories))
	for c := range s.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		ci, cj := s.categories[cats[i]], s.categories[cats[j]]
		if ci != cj {
			return ci > cj
		}
		return cats[i] < cats[j]
	})
	if n > 0 && len(cats) > n {
		cats = cats[:n]
	}
	return cats
}

// Suggestions returns recent queries followed by favourite categories, for
// pre-filling a search box.
func (s *Session) Suggestions() []string {
	if s == nil {
		return []string{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.recentLocked(maxRecent)
	seen := make(map[string]bool, len(out))
	for _, q := range out {
		seen[q] = true
	}
	for _, c := range s.topCategoriesLocked(maxCategories) {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// ItemCount returns how many times the item with id was picked.
func (s *Session) ItemCount(id string) int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[id]
}

// Len returns the number of queries in the window, duplicates included.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queries)
}

// Reset clears the session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = s.queries[:0]
	s.items = make(map[string]int)
	s.categories = make(map[string]int)
}

// overlaps reports whether two queries share intent: one contains the other
// or they share a word longer than two characters.
func overlaps(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	words := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		if len(w) >= minOverlapWord {
			words[w] = true
		}
	}
	for _, w := range strings.Fields(b) {
		if words[w] {
			return true
		}
	}
	return false
}

func capped(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
