package config

import (
	"fmt"
	"strings"
)

// initHint is shown whenever the config file is missing.
const initHint = "Run 'quickfind config init' to create configuration"

// Config sections named by validation errors.
const (
	SectionRoot    = "config"
	SectionSearch  = "search"
	SectionHistory = "history"
)

// ValidationError reports one out-of-range setting.
type ValidationError struct {
	Section string // "search", "history" or "config"
	Field   string // JSON key inside Section, empty for the section itself
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Section, e.Message)
	}
	return fmt.Sprintf("%s.%s %s", e.Section, e.Field, e.Message)
}

// PermissionError means the config file or its directory cannot be accessed.
type PermissionError struct {
	Path    string
	Op      string // "read" or "write"
	Fix     string
	Details string
}

func (e *PermissionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot %s quickfind config %s: permission denied\n", e.Op, e.Path)
	if e.Details != "" {
		b.WriteString(e.Details + "\n")
	}
	if e.Fix != "" {
		b.WriteString("💡 Fix: " + e.Fix)
	}
	return b.String()
}

// ConfigNotFoundError means no file exists at Path. LoadOrDefault treats it
// as "use defaults".
type ConfigNotFoundError struct {
	Path string
	Hint string // defaults to the config init hint
}

func (e *ConfigNotFoundError) Error() string {
	hint := e.Hint
	if hint == "" {
		hint = initHint
	}
	return fmt.Sprintf("config file not found: %s\n\n💡 %s", e.Path, hint)
}

// InvalidConfigError wraps a parse or validation failure for the file at Path.
type InvalidConfigError struct {
	Path    string
	Section string // offending section when known
	Message string
	Hint    string
	Err     error
}

func (e *InvalidConfigError) Error() string {
	var b strings.Builder
	b.WriteString("invalid config: " + e.Path)
	if e.Section != "" {
		fmt.Fprintf(&b, " (section %q)", e.Section)
	}
	b.WriteString("\n")
	if e.Message != "" {
		b.WriteString(e.Message + "\n")
	}
	if e.Hint != "" {
		b.WriteString("💡 " + e.Hint)
	}
	return b.String()
}

func (e *InvalidConfigError) Unwrap() error { return e.Err }

// invalidConfig builds an InvalidConfigError from err, picking the section
// out of a ValidationError.
func invalidConfig(path string, err error, hint string) *InvalidConfigError {
	ic := &InvalidConfigError{Path: path, Message: err.Error(), Hint: hint, Err: err}
	if v, ok := err.(*ValidationError); ok {
		ic.Section = v.Section
	}
	return ic
}
