package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("catalog: job not found")

// NotFoundError reports a lookup miss together with every id the catalog does hold.
type NotFoundError struct {
	ID       string
	KnownIDs []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: job %q not found (known ids: %s)", e.ID, strings.Join(e.KnownIDs, ", "))
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Problem is one data-integrity violation found while loading.
type Problem struct {
	// Index is the record's position in the source, or -1 for document-level problems.
	Index   int
	ID      string
	Field   string
	Message string
}

func (p Problem) String() string {
	var b strings.Builder
	if p.Index >= 0 {
		fmt.Fprintf(&b, "record %d", p.Index)
		if p.ID != "" {
			fmt.Fprintf(&b, " (%s)", p.ID)
		}
		b.WriteString(": ")
	}
	if p.Field != "" {
		b.WriteString(p.Field)
		b.WriteString(": ")
	}
	b.WriteString(p.Message)
	return b.String()
}

// ValidationError collects every violation found in a catalog. Loading fails as a whole.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("catalog: %d invalid entries: %s", len(e.Problems), strings.Join(parts, "; "))
}

func (e *ValidationError) add(index int, id, field, message string) {
	e.Problems = append(e.Problems, Problem{Index: index, ID: id, Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
