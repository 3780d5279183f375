package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	// ErrNoCandidates signals that retrieval produced nothing usable: either
	// no similar history existed or every candidate's venue was unresolvable.
	// Callers must surface this explicitly, never as an empty success.
	ErrNoCandidates = errors.New("no suitable venues found")
)
