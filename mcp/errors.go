package mcp

import (
	"errors"
	"fmt"
)

// maxDocumentBytes caps the size of an incoming change-set document.
// Stdio clients occasionally paste entire repositories; refusing early
// gives a clearer error than a slow parse.
const maxDocumentBytes = 4 << 20

var (
	// ErrEmptyDocument is returned when a tool receives an empty change-set
	ErrEmptyDocument = errors.New("change-set document is empty")

	// ErrDocumentTooLarge is returned when a document exceeds the size cap
	ErrDocumentTooLarge = errors.New("change-set document too large")
)

// IsEmptyDocumentError checks if an error reports an empty document
func IsEmptyDocumentError(err error) bool {
	return errors.Is(err, ErrEmptyDocument)
}

// IsDocumentTooLargeError checks if an error reports an oversized document
func IsDocumentTooLargeError(err error) bool {
	return errors.Is(err, ErrDocumentTooLarge)
}

// checkDocument validates the raw document text before parsing
func checkDocument(doc string) error {
	if len(doc) == 0 {
		return ErrEmptyDocument
	}
	if len(doc) > maxDocumentBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrDocumentTooLarge, len(doc), maxDocumentBytes)
	}
	return nil
}
