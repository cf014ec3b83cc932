package pgrange

// Domain describes the ordered element type of a range. Implementations must be safe for concurrent use.
type Domain[T any] interface {
	// Compare returns -1, 0 or 1 when a is less than, equal to or greater than b.
	Compare(a, b T) int

	// FormatValue returns the text representation of v used by String and the text wire format.
	FormatValue(v T) string

	// ParseValue parses the text representation of a single element.
	ParseValue(s string) (T, error)
}

// DiscreteDomain is a Domain with a well-defined successor. Ranges over a discrete domain normalize their edges so
// that, for example, (0,5] and [1,6) over integers are considered the same interval.
type DiscreteDomain[T any] interface {
	Domain[T]

	// Next returns the successor of v.
	Next(v T) T
}

// BinaryDomain is implemented by domains that support the PostgreSQL binary format for their elements.
type BinaryDomain[T any] interface {
	AppendBinary(buf []byte, v T) []byte
	ParseBinary(src []byte) (T, error)
}

// stepOf returns the discrete step function of dom if it has one.
func stepOf[T any](dom Domain[T]) (func(T) T, bool) {
	if dd, ok := dom.(DiscreteDomain[T]); ok {
		return dd.Next, true
	}
	return nil, false
}

type steppedDomain[T any] struct {
	Domain[T]
	next func(T) T
}

func (d steppedDomain[T]) Next(v T) T {
	return d.next(v)
}

func (d steppedDomain[T]) unwrap() Domain[T] {
	return d.Domain
}

type continuousDomain[T any] struct {
	dom Domain[T]
}

func (d continuousDomain[T]) Compare(a, b T) int             { return d.dom.Compare(a, b) }
func (d continuousDomain[T]) FormatValue(v T) string         { return d.dom.FormatValue(v) }
func (d continuousDomain[T]) ParseValue(s string) (T, error) { return d.dom.ParseValue(s) }
func (d continuousDomain[T]) unwrap() Domain[T]              { return d.dom }

// WithStep returns a DiscreteDomain that uses next as the successor function of dom. It allows any ordered type to
// be treated as a custom discrete domain.
func WithStep[T any](dom Domain[T], next func(T) T) DiscreteDomain[T] {
	if sd, ok := dom.(steppedDomain[T]); ok {
		dom = sd.Domain
	}
	return steppedDomain[T]{Domain: dom, next: next}
}

// Continuous returns a Domain with the same ordering and text format as dom but without a discrete step.
func Continuous[T any](dom Domain[T]) Domain[T] {
	if _, ok := dom.(DiscreteDomain[T]); !ok {
		return dom
	}
	return continuousDomain[T]{dom: dom}
}

// binaryOf finds the BinaryDomain behind dom, looking through WithStep and Continuous wrappers.
func binaryOf[T any](dom Domain[T]) (BinaryDomain[T], bool) {
	for dom != nil {
		if bd, ok := dom.(BinaryDomain[T]); ok {
			return bd, true
		}
		w, ok := dom.(interface{ unwrap() Domain[T] })
		if !ok {
			break
		}
		dom = w.unwrap()
	}
	return nil, false
}
