package pgrange

import (
	"bytes"
	"fmt"
	"strings"
)

// String returns the canonical text form of r: "empty" for the empty range, otherwise the brackets around the bounds
// separated by a comma, with unbounded sides left blank. For example [10,50), [,5) and (1,].
//
// Values are written with the domain's FormatValue and are not quoted. Use AppendText for the PostgreSQL text format.
func (r Range[T]) String() string {
	if r.empty {
		return "empty"
	}

	b := r.Bounds()
	sb := &strings.Builder{}
	sb.WriteByte(b[0])
	if r.lower.Valid {
		sb.WriteString(r.dom.FormatValue(r.lower.Value))
	}
	sb.WriteByte(',')
	if r.upper.Valid {
		sb.WriteString(r.dom.FormatValue(r.upper.Value))
	}
	sb.WriteByte(b[1])
	return sb.String()
}

// AppendText appends the PostgreSQL text format of r to buf. Bound values are quoted when PostgreSQL would quote
// them, and unbounded sides are written with '(' and ')' as PostgreSQL does.
func (r Range[T]) AppendText(buf []byte) []byte {
	if r.empty {
		return append(buf, "empty"...)
	}

	if r.LowerInc() {
		buf = append(buf, '[')
	} else {
		buf = append(buf, '(')
	}
	if r.lower.Valid {
		buf = appendQuotedRangeValue(buf, r.dom.FormatValue(r.lower.Value))
	}

	buf = append(buf, ',')

	if r.upper.Valid {
		buf = appendQuotedRangeValue(buf, r.dom.FormatValue(r.upper.Value))
	}
	if r.UpperInc() {
		buf = append(buf, ']')
	} else {
		buf = append(buf, ')')
	}

	return buf
}

func rangeValueNeedsQuotes(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, "\"\\,()[] \t\n\r\v\f")
}

func appendQuotedRangeValue(buf []byte, s string) []byte {
	if !rangeValueNeedsQuotes(s) {
		return append(buf, s...)
	}

	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			buf = append(buf, s[i])
		}
		buf = append(buf, s[i])
	}
	return append(buf, '"')
}

// Parse parses the PostgreSQL text form of a range over dom, such as "[1,5)", "(,10]", "empty" or
// `["a b","c")`. The brackets of unbounded sides are kept as written.
func Parse[T any](dom Domain[T], src string) (Range[T], error) {
	if dom == nil {
		return Range[T]{}, ErrNoDomain
	}

	utr, err := parseUntypedTextRange(src)
	if err != nil {
		return Range[T]{}, err
	}

	if utr.LowerType == EmptyBound {
		return Empty(dom), nil
	}

	var lower, upper Bound[T]
	if utr.LowerType != Unbounded {
		v, err := dom.ParseValue(utr.Lower)
		if err != nil {
			return Range[T]{}, fmt.Errorf("invalid lower value %q: %w", utr.Lower, err)
		}
		lower = Finite(v)
	}
	if utr.UpperType != Unbounded {
		v, err := dom.ParseValue(utr.Upper)
		if err != nil {
			return Range[T]{}, fmt.Errorf("invalid upper value %q: %w", utr.Upper, err)
		}
		upper = Finite(v)
	}

	return New(dom, lower, upper, utr.Bounds)
}

type untypedTextRange struct {
	Lower     string
	Upper     string
	LowerType BoundType
	UpperType BoundType
	Bounds    Bounds
}

func parseUntypedTextRange(src string) (*untypedTextRange, error) {
	utr := &untypedTextRange{}
	if strings.EqualFold(strings.TrimSpace(src), "empty") {
		utr.LowerType = EmptyBound
		utr.UpperType = EmptyBound
		return utr, nil
	}

	buf := bytes.NewBufferString(src)

	skipWhitespace(buf)

	var lowerMarker, upperMarker byte

	r, _, err := buf.ReadRune()
	if err != nil {
		return nil, fmt.Errorf("invalid lower bound: %w", err)
	}
	switch r {
	case '(':
		utr.LowerType = Exclusive
	case '[':
		utr.LowerType = Inclusive
	default:
		return nil, fmt.Errorf("missing lower bound, instead got: %v", string(r))
	}
	lowerMarker = byte(r)

	r, _, err = buf.ReadRune()
	if err != nil {
		return nil, fmt.Errorf("invalid lower value: %w", err)
	}
	buf.UnreadRune()

	if r == ',' {
		utr.LowerType = Unbounded
	} else {
		utr.Lower, err = rangeParseValue(buf)
		if err != nil {
			return nil, fmt.Errorf("invalid lower value: %w", err)
		}
	}

	r, _, err = buf.ReadRune()
	if err != nil {
		return nil, fmt.Errorf("missing range separator: %w", err)
	}
	if r != ',' {
		return nil, fmt.Errorf("missing range separator: %v", string(r))
	}

	r, _, err = buf.ReadRune()
	if err != nil {
		return nil, fmt.Errorf("invalid upper value: %w", err)
	}

	if r == ')' || r == ']' {
		utr.UpperType = Unbounded
		upperMarker = byte(r)
	} else {
		buf.UnreadRune()
		utr.Upper, err = rangeParseValue(buf)
		if err != nil {
			return nil, fmt.Errorf("invalid upper value: %w", err)
		}

		r, _, err = buf.ReadRune()
		if err != nil {
			return nil, fmt.Errorf("missing upper bound: %w", err)
		}
		switch r {
		case ')':
			utr.UpperType = Exclusive
		case ']':
			utr.UpperType = Inclusive
		default:
			return nil, fmt.Errorf("missing upper bound, instead got: %v", string(r))
		}
		upperMarker = byte(r)
	}

	skipWhitespace(buf)

	if buf.Len() > 0 {
		return nil, fmt.Errorf("unexpected trailing data: %v", buf.String())
	}

	utr.Bounds = Bounds([]byte{lowerMarker, upperMarker})
	return utr, nil
}

func skipWhitespace(buf *bytes.Buffer) {
	for {
		r, _, err := buf.ReadRune()
		if err != nil {
			return
		}
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			buf.UnreadRune()
			return
		}
	}
}

func rangeParseValue(buf *bytes.Buffer) (string, error) {
	r, _, err := buf.ReadRune()
	if err != nil {
		return "", err
	}
	if r == '"' {
		return rangeParseQuotedValue(buf)
	}
	buf.UnreadRune()

	s := &bytes.Buffer{}

	for {
		r, _, err := buf.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case '\\':
			r, _, err = buf.ReadRune()
			if err != nil {
				return "", err
			}
		case ',', '[', ']', '(', ')':
			buf.UnreadRune()
			return s.String(), nil
		}

		s.WriteRune(r)
	}
}

func rangeParseQuotedValue(buf *bytes.Buffer) (string, error) {
	s := &bytes.Buffer{}

	for {
		r, _, err := buf.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case '\\':
			r, _, err = buf.ReadRune()
			if err != nil {
				return "", err
			}
		case '"':
			r, _, err = buf.ReadRune()
			if err != nil {
				return "", err
			}
			if r != '"' {
				buf.UnreadRune()
				return s.String(), nil
			}
		}
		s.WriteRune(r)
	}
}
