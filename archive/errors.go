package archive

import "errors"

// Sentinel errors for package archive.
var (
	ErrCorruptArchive = errors.New("corrupt or truncated archive")
	ErrInvalidName    = errors.New("invalid entry name")
	ErrEntryCount     = errors.New("entry count does not match declared count")
)
