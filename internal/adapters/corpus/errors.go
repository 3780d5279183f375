package corpus

import "errors"

// Sentinel kinds for corpus errors.
var (
	// ErrNotFound reports an identifier unknown to the loaded corpus.
	ErrNotFound = errors.New("not found in corpus")
	// ErrDuplicateID reports a corpus file violating identifier uniqueness.
	ErrDuplicateID = errors.New("duplicate identifier in corpus")
)
