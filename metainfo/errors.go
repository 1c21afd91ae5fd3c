package metainfo

import (
	"errors"
	"fmt"

	"github.com/fuchsi/torrentinfo/bencode"
)

// Schema errors: the buffer decoded fine but doesn't look like a torrent.
var (
	ErrNotADict           = errors.New("torrent file is not a dictionary")
	ErrMissingField       = errors.New("missing field")
	ErrAmbiguousFileShape = errors.New("info has both length and files")
	ErrMissingFileShape   = errors.New("info has neither length nor files")
	ErrEmptyPathSegment   = errors.New("empty path segment")
)

// FieldError ties a schema error to the torrent key it concerns.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("torrent field %q: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// TypeError reports a key whose value has the wrong bencode kind.
type TypeError struct {
	Field    string
	Expected bencode.Kind
	Actual   bencode.Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("torrent field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// PiecesLengthError reports a pieces block that isn't a whole number of
// 20-byte hashes.
type PiecesLengthError struct {
	Length int
}

func (e *PiecesLengthError) Error() string {
	return fmt.Sprintf("pieces length %d is not a multiple of %d", e.Length, HashSize)
}
