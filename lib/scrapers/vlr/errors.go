package vlr

import "errors"

// fatal error kinds, matched with errors.Is. Per-record extraction
// failures (missing agent, misaligned stat window) are not errors:
// the record is dropped and the batch continues.
var (
	ErrInvalidId          = errors.New("player id must be a positive integer")
	ErrInvalidWindow      = errors.New("history window must be one of 30d, 60d, 90d, all")
	ErrInvalidContentType = errors.New("expected a text/html response")
	ErrRequestFailed      = errors.New("request failed")
	ErrNotFound           = errors.New("page not found")
	ErrMissingName        = errors.New("missing identity field")
)
