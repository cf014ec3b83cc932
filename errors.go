package pgrange

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCombination is returned when two ranges cannot be combined into a single range: Union of ranges that
	// neither overlap nor touch, and Difference that would split a range in two.
	ErrInvalidCombination = errors.New("invalid range combination")

	// ErrInvalidBounds is returned for unknown bracket pairs and for a lower bound greater than the upper bound.
	ErrInvalidBounds = errors.New("invalid range bounds")

	// ErrStepOverflow is returned when the successor of a bound of a discrete range cannot be represented.
	ErrStepOverflow = errors.New("range bound step out of range")

	// ErrNoDomain is returned when an operation needs a Domain and none is available.
	ErrNoDomain = errors.New("range has no domain")

	// ErrMissingBinaryCodec is returned when the binary format is requested for a domain that does not implement
	// BinaryDomain.
	ErrMissingBinaryCodec = errors.New("domain does not support the binary format")
)

// CombinationError describes a failed Union or Difference. It wraps ErrInvalidCombination.
type CombinationError struct {
	Op     string
	Left   string
	Right  string
	Reason string
}

func (e *CombinationError) Error() string {
	return fmt.Sprintf("%s of %s and %s: %s", e.Op, e.Left, e.Right, e.Reason)
}

func (e *CombinationError) Unwrap() error {
	return ErrInvalidCombination
}

// InvariantViolationError reports a state the range algebra considers impossible. It indicates a bug in this package
// or in a Domain whose Compare is not a total order, never bad input.
type InvariantViolationError struct {
	Op     string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("range %s: invariant violated: %s", e.Op, e.Detail)
}
