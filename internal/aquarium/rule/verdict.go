package rule

import (
	"fmt"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
)

// Kind classifies why a value was rejected.
type Kind int

const (
	// KindNone marks a valid verdict.
	KindNone Kind = iota
	// KindEmptyField means the input was missing or blank.
	KindEmptyField
	// KindFormatMismatch means the input did not match the field's shape.
	KindFormatMismatch
	// KindRangeViolation means a numeric input parsed but is out of bounds.
	KindRangeViolation
	// KindParseFailure means a numeric input could not be parsed at all.
	KindParseFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindEmptyField:
		return "EMPTY_FIELD"
	case KindFormatMismatch:
		return "FORMAT_MISMATCH"
	case KindRangeViolation:
		return "RANGE_VIOLATION"
	case KindParseFailure:
		return "PARSE_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Verdict is the outcome of validating a single field value.
type Verdict struct {
	Field   entity.Field
	OK      bool
	Kind    Kind
	Message string // empty when OK
}

func valid(f entity.Field) Verdict {
	return Verdict{Field: f, OK: true, Kind: KindNone}
}

func invalid(f entity.Field, k Kind, msg string) Verdict {
	return Verdict{Field: f, OK: false, Kind: k, Message: msg}
}

// Err returns nil for a valid verdict and an *Error otherwise.
func (v Verdict) Err() error {
	if v.OK {
		return nil
	}
	return &Error{Field: v.Field, Kind: v.Kind, Message: v.Message}
}

// Error is a rejected verdict in error form.
type Error struct {
	Field   entity.Field
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field.Key(), e.Message)
}
