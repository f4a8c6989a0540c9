package search

import "errors"

var (
	// ErrLexiconRequired is returned when an engine is built without a lexicon.
	ErrLexiconRequired = errors.New("lexicon is required")

	// ErrIndexClosed is returned by keyword searches on a closed index.
	ErrIndexClosed = errors.New("keyword index is closed")
)
