package pgrange

import (
	"encoding/binary"
	"fmt"

	"github.com/jackc/pgio"
)

// PostgreSQL format codes.
const (
	TextFormatCode   = 0
	BinaryFormatCode = 1
)

// Flag bits of the first byte of a binary range.
const (
	emptyMask          = 1
	lowerInclusiveMask = 2
	upperInclusiveMask = 4
	lowerUnboundedMask = 8
	upperUnboundedMask = 16
)

// AppendBinary appends the PostgreSQL binary format of r to buf. The domain of r must implement BinaryDomain.
func (r Range[T]) AppendBinary(buf []byte) ([]byte, error) {
	if r.empty {
		return append(buf, emptyMask), nil
	}

	var rangeType byte
	if !r.lower.Valid {
		rangeType |= lowerUnboundedMask
	} else if r.LowerInc() {
		rangeType |= lowerInclusiveMask
	}
	if !r.upper.Valid {
		rangeType |= upperUnboundedMask
	} else if r.UpperInc() {
		rangeType |= upperInclusiveMask
	}

	buf = append(buf, rangeType)
	if !r.lower.Valid && !r.upper.Valid {
		return buf, nil
	}

	bd, ok := binaryOf(r.dom)
	if !ok {
		return nil, ErrMissingBinaryCodec
	}

	for _, b := range []Bound[T]{r.lower, r.upper} {
		if !b.Valid {
			continue
		}
		sp := len(buf)
		buf = pgio.AppendInt32(buf, -1)
		buf = bd.AppendBinary(buf, b.Value)
		pgio.SetInt32(buf[sp:], int32(len(buf[sp:])-4))
	}

	return buf, nil
}

// ParseBinary parses the PostgreSQL binary format of a range over dom. Unbounded sides get the brackets '(' and ')'.
func ParseBinary[T any](dom Domain[T], src []byte) (Range[T], error) {
	if dom == nil {
		return Range[T]{}, ErrNoDomain
	}

	ubr, err := parseUntypedBinaryRange(src)
	if err != nil {
		return Range[T]{}, err
	}

	if ubr.LowerType == EmptyBound {
		return Empty(dom), nil
	}

	bd, ok := binaryOf(dom)
	if !ok && (ubr.LowerType != Unbounded || ubr.UpperType != Unbounded) {
		return Range[T]{}, ErrMissingBinaryCodec
	}

	var lower, upper Bound[T]
	if ubr.LowerType != Unbounded {
		v, err := bd.ParseBinary(ubr.Lower)
		if err != nil {
			return Range[T]{}, fmt.Errorf("invalid lower value: %w", err)
		}
		lower = Finite(v)
	}
	if ubr.UpperType != Unbounded {
		v, err := bd.ParseBinary(ubr.Upper)
		if err != nil {
			return Range[T]{}, fmt.Errorf("invalid upper value: %w", err)
		}
		upper = Finite(v)
	}

	return New(dom, lower, upper, makeBounds(ubr.LowerType == Inclusive, ubr.UpperType == Inclusive))
}

type untypedBinaryRange struct {
	Lower     []byte
	Upper     []byte
	LowerType BoundType
	UpperType BoundType
}

func parseUntypedBinaryRange(src []byte) (*untypedBinaryRange, error) {
	ubr := &untypedBinaryRange{}

	if len(src) == 0 {
		return nil, fmt.Errorf("range too short: %v", len(src))
	}

	rangeType := src[0]
	rp := 1

	if rangeType&emptyMask > 0 {
		if len(src[rp:]) > 0 {
			return nil, fmt.Errorf("unexpected trailing bytes parsing empty range: %v", len(src[rp:]))
		}
		ubr.LowerType = EmptyBound
		ubr.UpperType = EmptyBound
		return ubr, nil
	}

	if rangeType&lowerInclusiveMask > 0 {
		ubr.LowerType = Inclusive
	} else if rangeType&lowerUnboundedMask > 0 {
		ubr.LowerType = Unbounded
	} else {
		ubr.LowerType = Exclusive
	}

	if rangeType&upperInclusiveMask > 0 {
		ubr.UpperType = Inclusive
	} else if rangeType&upperUnboundedMask > 0 {
		ubr.UpperType = Unbounded
	} else {
		ubr.UpperType = Exclusive
	}

	readValue := func() ([]byte, error) {
		if len(src[rp:]) < 4 {
			return nil, fmt.Errorf("too few bytes for size: %v", src[rp:])
		}
		valueLen := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4
		if valueLen < 0 || len(src[rp:]) < valueLen {
			return nil, fmt.Errorf("invalid range value length: %v", valueLen)
		}
		val := src[rp : rp+valueLen]
		rp += valueLen
		return val, nil
	}

	var err error
	if ubr.LowerType != Unbounded {
		ubr.Lower, err = readValue()
		if err != nil {
			return nil, err
		}
	}
	if ubr.UpperType != Unbounded {
		ubr.Upper, err = readValue()
		if err != nil {
			return nil, err
		}
	}

	if len(src[rp:]) > 0 {
		return nil, fmt.Errorf("unexpected trailing bytes parsing range: %v", len(src[rp:]))
	}

	return ubr, nil
}

// Decode parses src in the given PostgreSQL format code.
func Decode[T any](dom Domain[T], format int16, src []byte) (Range[T], error) {
	switch format {
	case TextFormatCode:
		return Parse(dom, string(src))
	case BinaryFormatCode:
		return ParseBinary(dom, src)
	default:
		return Range[T]{}, fmt.Errorf("unknown format code %d", format)
	}
}

// Encode appends r to buf in the given PostgreSQL format code.
func (r Range[T]) Encode(format int16, buf []byte) ([]byte, error) {
	switch format {
	case TextFormatCode:
		return r.AppendText(buf), nil
	case BinaryFormatCode:
		return r.AppendBinary(buf)
	default:
		return nil, fmt.Errorf("unknown format code %d", format)
	}
}
