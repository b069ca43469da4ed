package extract

import "errors"

// Sentinel error kinds for document extraction.
var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrExtract         = errors.New("extract text failed")
	ErrEmptyDocument   = errors.New("document has no text")
)
