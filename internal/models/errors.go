package models

import "errors"

// Error kinds surfaced by the wall. Concrete errors wrap one of these, test with errors.Is.
var (
	// ErrResource means an image could not be read or decoded
	ErrResource = errors.New("image resource error")

	// ErrDirectory means a directory could not be scanned
	ErrDirectory = errors.New("directory error")

	// ErrPersistence means a layout file could not be written or parsed
	ErrPersistence = errors.New("layout persistence error")
)
