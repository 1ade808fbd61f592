package document

import "errors"

var (
	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidContainer is returned when the input cannot be opened as the
	// container its extension promises (OLE2, ZIP or PDF).
	ErrInvalidContainer = errors.New("invalid document container")
)
