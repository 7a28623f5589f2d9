package reconcile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInconsistentState means the store disagrees with the owner's loaded
	// links: a row due for removal is gone, or a row due for insertion exists.
	ErrInconsistentState = errors.New("join state changed concurrently")

	// ErrInvalidReference means a target id is not part of the candidate universe.
	ErrInvalidReference = errors.New("target id outside candidate universe")

	// ErrInvalidOwner means the owner has no id or an unknown role.
	ErrInvalidOwner = errors.New("invalid reconcile owner")
)

// ParseError reports a selection value that is not a valid id.
type ParseError struct {
	Index int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid selection %q at position %d: %v", e.Value, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseSelection converts submitted selection strings to ids.
// A nil input stays nil so that "nothing submitted" still clears all links.
// The first malformed value aborts the whole parse.
func ParseSelection(values []string) ([]int, error) {
	if values == nil {
		return nil, nil
	}

	ids := make([]int, 0, len(values))
	for i, raw := range values {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ParseError{Index: i, Value: raw, Err: err}
		}
		if id <= 0 {
			return nil, &ParseError{Index: i, Value: raw, Err: errors.New("id must be positive")}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
