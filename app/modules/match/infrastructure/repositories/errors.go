package matchdb

import "errors"

var (
	// ErrDocumentMissing indicates the match document could not be found.
	ErrDocumentMissing = errors.New("match document not found")

	// ErrMalformedDocument indicates the match document is not a {"matches": [...]} object.
	ErrMalformedDocument = errors.New("malformed match document")
)
