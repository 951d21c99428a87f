package huffman

import "errors"

// Sentinel errors for package huffman.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File errors
	ErrSourceNotFound        = errors.New("source file not found or unreadable")
	ErrDestinationUnwritable = errors.New("destination not writable")
	ErrExpectedRegularFile   = errors.New("expected regular file")

	// Stream errors
	ErrCorruptHeader    = errors.New("corrupt or truncated header")
	ErrTruncatedPayload = errors.New("payload ended before all symbols were decoded")
	ErrInvalidCode      = errors.New("invalid code in code table")
	ErrSourceChanged    = errors.New("source changed between frequency and encoding passes")
)
