package pgrange

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgio"
)

// IntegerDomain is the discrete domain of a signed integer type with step 1.
type IntegerDomain[T int16 | int32 | int64] struct {
	bitSize int
}

var (
	// Int2 is the domain of smallint ranges.
	Int2 = IntegerDomain[int16]{bitSize: 16}

	// Int4 is the domain of int4range.
	Int4 = IntegerDomain[int32]{bitSize: 32}

	// Int8 is the domain of int8range.
	Int8 = IntegerDomain[int64]{bitSize: 64}
)

func (IntegerDomain[T]) Compare(a, b T) int {
	return cmp.Compare(a, b)
}

// Next returns v+1. It wraps at the maximum value of T; New reports such ranges with ErrStepOverflow.
func (IntegerDomain[T]) Next(v T) T {
	return v + 1
}

func (IntegerDomain[T]) FormatValue(v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func (d IntegerDomain[T]) ParseValue(s string) (T, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, d.size())
	if err != nil {
		return 0, err
	}
	return T(n), nil
}

func (d IntegerDomain[T]) AppendBinary(buf []byte, v T) []byte {
	switch d.size() {
	case 16:
		return pgio.AppendInt16(buf, int16(v))
	case 32:
		return pgio.AppendInt32(buf, int32(v))
	default:
		return pgio.AppendInt64(buf, int64(v))
	}
}

func (d IntegerDomain[T]) ParseBinary(src []byte) (T, error) {
	size := d.size()
	if len(src) != size/8 {
		return 0, fmt.Errorf("invalid length for int%d: %v", size/8, len(src))
	}

	switch size {
	case 16:
		return T(int16(binary.BigEndian.Uint16(src))), nil
	case 32:
		return T(int32(binary.BigEndian.Uint32(src))), nil
	default:
		return T(int64(binary.BigEndian.Uint64(src))), nil
	}
}

// size tolerates the zero value IntegerDomain by falling back to the width of T.
func (d IntegerDomain[T]) size() int {
	if d.bitSize != 0 {
		return d.bitSize
	}
	var v T
	switch any(v).(type) {
	case int16:
		return 16
	case int32:
		return 32
	default:
		return 64
	}
}

// Float8Domain is the continuous domain of float64. NaN sorts before every other value.
type Float8Domain struct{}

// Float8 is the domain of float8 ranges.
var Float8 Float8Domain

func (Float8Domain) Compare(a, b float64) int {
	return cmp.Compare(a, b)
}

func (Float8Domain) FormatValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (Float8Domain) ParseValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func (Float8Domain) AppendBinary(buf []byte, v float64) []byte {
	return pgio.AppendUint64(buf, math.Float64bits(v))
}

func (Float8Domain) ParseBinary(src []byte) (float64, error) {
	if len(src) != 8 {
		return 0, fmt.Errorf("invalid length for float8: %v", len(src))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(src)), nil
}

// PostgreSQL stores dates and timestamps relative to 2000-01-01.
const (
	microsecFromUnixEpochToY2K = 946684800 * 1000000
	secondsPerDay              = 86400

	dateLayout        = "2006-01-02"
	timestampLayout   = "2006-01-02 15:04:05.999999"
	timestamptzLayout = "2006-01-02 15:04:05.999999Z07:00"
)

var y2k = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// DateDomain is the discrete domain of calendar dates with a step of one day. Values are time.Time at midnight UTC;
// the time of day of other values is ignored by Compare.
type DateDomain struct{}

// Date is the domain of daterange.
var Date DateDomain

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (DateDomain) Compare(a, b time.Time) int {
	return truncateDate(a).Compare(truncateDate(b))
}

func (DateDomain) Next(v time.Time) time.Time {
	return truncateDate(v).AddDate(0, 0, 1)
}

func (DateDomain) FormatValue(v time.Time) string {
	return v.Format(dateLayout)
}

func (DateDomain) ParseValue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "infinity" || s == "-infinity" {
		return time.Time{}, fmt.Errorf("cannot represent %s as time.Time", s)
	}
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func (DateDomain) AppendBinary(buf []byte, v time.Time) []byte {
	days := (truncateDate(v).Unix() - y2k.Unix()) / secondsPerDay
	return pgio.AppendInt32(buf, int32(days))
}

func (DateDomain) ParseBinary(src []byte) (time.Time, error) {
	if len(src) != 4 {
		return time.Time{}, fmt.Errorf("invalid length for date: %v", len(src))
	}

	days := int32(binary.BigEndian.Uint32(src))
	switch days {
	case math.MaxInt32, math.MinInt32:
		return time.Time{}, fmt.Errorf("cannot represent infinite date as time.Time")
	}
	return y2k.AddDate(0, 0, int(days)), nil
}

// TimestampDomain is the continuous domain of timestamps. The zero value is a timestamp without time zone; values
// are compared as instants.
type TimestampDomain struct {
	withZone bool
}

var (
	// Timestamp is the domain of tsrange. Values are treated as UTC wall clock times.
	Timestamp = TimestampDomain{}

	// Timestamptz is the domain of tstzrange.
	Timestamptz = TimestampDomain{withZone: true}
)

func (TimestampDomain) Compare(a, b time.Time) int {
	return a.Compare(b)
}

func (d TimestampDomain) FormatValue(v time.Time) string {
	if d.withZone {
		return v.Format(timestamptzLayout)
	}
	return v.Format(timestampLayout)
}

func (d TimestampDomain) ParseValue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "infinity" || s == "-infinity" {
		return time.Time{}, fmt.Errorf("cannot represent %s as time.Time", s)
	}

	if !d.withZone {
		return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	}

	var err error
	for _, layout := range []string{"2006-01-02 15:04:05Z07:00:00", "2006-01-02 15:04:05Z07:00", "2006-01-02 15:04:05Z07"} {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func (TimestampDomain) AppendBinary(buf []byte, v time.Time) []byte {
	return pgio.AppendInt64(buf, v.UnixMicro()-microsecFromUnixEpochToY2K)
}

func (TimestampDomain) ParseBinary(src []byte) (time.Time, error) {
	if len(src) != 8 {
		return time.Time{}, fmt.Errorf("invalid length for timestamp: %v", len(src))
	}

	microsecSinceY2K := int64(binary.BigEndian.Uint64(src))
	switch microsecSinceY2K {
	case math.MaxInt64, math.MinInt64:
		return time.Time{}, fmt.Errorf("cannot represent infinite timestamp as time.Time")
	}

	return time.UnixMicro(microsecSinceY2K + microsecFromUnixEpochToY2K).UTC(), nil
}

// TextDomain is the continuous domain of strings ordered by bytes, matching the "C" collation.
type TextDomain struct{}

// Text is the domain of text ranges in the "C" collation.
var Text TextDomain

func (TextDomain) Compare(a, b string) int {
	return strings.Compare(a, b)
}

func (TextDomain) FormatValue(v string) string {
	return v
}

func (TextDomain) ParseValue(s string) (string, error) {
	return s, nil
}

func (TextDomain) AppendBinary(buf []byte, v string) []byte {
	return append(buf, v...)
}

func (TextDomain) ParseBinary(src []byte) (string, error) {
	return string(src), nil
}
