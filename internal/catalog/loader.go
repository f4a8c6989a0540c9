package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidItem is returned when an item has no id or no title.
	ErrInvalidItem = errors.New("invalid catalog item")

	// ErrDuplicateID is returned when two items share an id.
	ErrDuplicateID = errors.New("duplicate catalog item id")
)

// LoadFile reads a catalog from a .json (array) or .jsonl (one item per line) file.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var items []Item
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		items, err = decodeLines(data)
	} else {
		err = json.Unmarshal(data, &items)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// decodeLines parses JSONL input, skipping blank lines.
func decodeLines(data []byte) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	return items, scanner.Err()
}

// Validate trims item fields in place and checks ids and titles.
func Validate(items []Item) error {
	seen := make(map[string]bool, len(items))
	for i := range items {
		it := &items[i]
		it.ID = strings.TrimSpace(it.ID)
		it.Title = strings.TrimSpace(it.Title)
		it.Category = strings.TrimSpace(it.Category)

		if it.ID == "" || it.Title == "" {
			return fmt.Errorf("%w at index %d: id and title are required", ErrInvalidItem, i)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
