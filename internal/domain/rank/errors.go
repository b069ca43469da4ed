package rank

import "errors"

// ErrTooManyPostings is returned when a batch exceeds the configured cap.
var ErrTooManyPostings = errors.New("too many postings")
