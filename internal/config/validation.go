package config

import "fmt"

// Validate checks that configured values are in range. Search options are
// clamped again by the engine; this catches obvious mistakes early. Failures
// are *ValidationError values naming the offending section.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Section: SectionRoot, Message: "config is nil"}
	}

	s := cfg.Search
	if s.MaxResults < 0 {
		return searchError("maxResults", "must not be negative, got %d", s.MaxResults)
	}
	if s.MinScore < 0 || s.MinScore > 1 {
		return searchError("minScore", "must be within [0, 1], got %g", s.MinScore)
	}
	if s.FuzzyThreshold < 0 || s.FuzzyThreshold > 1 {
		return searchError("fuzzyThreshold", "must be within [0, 1], got %g", s.FuzzyThreshold)
	}
	if s.MaxSuggestionDistance < 0 {
		return searchError("maxSuggestionDistance", "must not be negative, got %d", s.MaxSuggestionDistance)
	}

	if cfg.History != nil && cfg.History.RetentionDays < 0 {
		return &ValidationError{
			Section: SectionHistory,
			Field:   "retentionDays",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.History.RetentionDays),
		}
	}

	return nil
}

func searchError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Section: SectionSearch, Field: field, Message: fmt.Sprintf(format, args...)}
}
