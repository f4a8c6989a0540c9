package search

import (
	"container/list"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/textsim"
)

const (
	maxSuggestions        = 3
	defaultDidYouMean     = 0.6
	defaultVocabCacheSize = 8
)

type suggestion struct {
	word  string
	score float64
}

// suggest returns up to three vocabulary words within maxDistance edits of query.
func suggest(query string, vocabulary []string, maxDistance int) []suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	qLen := utf8.RuneCountInString(q)
	if qLen == 0 {
		return nil
	}

	var found []suggestion
	for _, word := range vocabulary {
		wLen := utf8.RuneCountInString(word)
		if wLen < qLen-1 || abs(wLen-qLen) > maxDistance {
			continue
		}
		d := textsim.Levenshtein(q, word)
		if d == 0 || d > maxDistance {
			continue
		}
		found = append(found, suggestion{
			word:  word,
			score: 1 - float64(d)/float64(max(qLen, wLen)),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}
		return found[i].word < found[j].word
	})
	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}
	return found
}

// buildVocabulary collects the distinct lowercased words of a catalog, sorted.
func buildVocabulary(items []catalog.Item) []string {
	set := make(map[string]bool)
	addPhrase := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return
		}
		set[s] = true
		for _, w := range strings.Fields(s) {
			set[w] = true
		}
	}

	for i := range items {
		it := &items[i]
		addPhrase(it.Title)
		addPhrase(it.Category)
		for _, tag := range it.Tags {
			addPhrase(tag)
		}
		for _, w := range strings.Fields(strings.ToLower(it.SearchableText)) {
			set[w] = true
		}
	}

	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// fingerprint hashes every field the vocabulary is built from.
func fingerprint(items []catalog.Item) uint64 {
	h := xxhash.New()
	for i := range items {
		it := &items[i]
		h.WriteString(it.ID)
		h.WriteString("\x00")
		h.WriteString(it.Title)
		h.WriteString("\x00")
		h.WriteString(it.Category)
		for _, tag := range it.Tags {
			h.WriteString("\x00")
			h.WriteString(tag)
		}
		h.WriteString("\x00")
		h.WriteString(it.SearchableText)
		h.WriteString("\x1e")
	}
	return h.Sum64()
}

// vocabCache is a small LRU of catalog vocabularies keyed by fingerprint.
type vocabCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[uint64]*list.Element
}

type vocabEntry struct {
	key   uint64
	words []string
}

func newVocabCache(capacity int) *vocabCache {
	if capacity < 1 {
		capacity = defaultVocabCacheSize
	}
	return &vocabCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[uint64]*list.Element),
	}
}

// vocabulary returns the cached vocabulary for items, building it on a miss.
func (c *vocabCache) vocabulary(items []catalog.Item) []string {
	key := fingerprint(items)

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		words := el.Value.(*vocabEntry).words
		c.mu.Unlock()
		return words
	}
	c.mu.Unlock()

	words := buildVocabulary(items)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*vocabEntry).words
	}
	c.entries[key] = c.order.PushFront(&vocabEntry{key: key, words: words})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*vocabEntry).key)
	}
	return words
}

func (c *vocabCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
