// Package pgnumeric converts between the PostgreSQL binary numeric format and a big.Int coefficient with a base 10
// exponent.
package pgnumeric

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgio"
)

// PostgreSQL internal numeric storage uses 16-bit "digits" with base of 10,000
const nbase = 10000

const (
	pgNumericNaNSign    = 0xc000
	pgNumericPosInfSign = 0xd000
	pgNumericNegInfSign = 0xf000
	pgNumericNegSign    = 0x4000
)

// ErrSpecialValue is returned for NaN and infinite numerics, which have no coefficient.
var ErrSpecialValue = errors.New("cannot represent NaN or infinite numeric")

var (
	big0       = big.NewInt(0)
	big1       = big.NewInt(1)
	big10      = big.NewInt(10)
	big100     = big.NewInt(100)
	big1000    = big.NewInt(1000)
	bigNBase   = big.NewInt(nbase)
	bigNBaseX2 = big.NewInt(nbase * nbase)
	bigNBaseX3 = big.NewInt(nbase * nbase * nbase)
	bigNBaseX4 = big.NewInt(nbase * nbase * nbase * nbase)
)

// Parse decodes a binary numeric into coef * 10^exp.
func Parse(src []byte) (coef *big.Int, exp int32, err error) {
	if len(src) < 8 {
		return nil, 0, fmt.Errorf("numeric incomplete %v", src)
	}

	rp := 0
	ndigits := binary.BigEndian.Uint16(src[rp:])
	rp += 2
	weight := int16(binary.BigEndian.Uint16(src[rp:]))
	rp += 2
	sign := binary.BigEndian.Uint16(src[rp:])
	rp += 2
	dscale := int16(binary.BigEndian.Uint16(src[rp:]))
	rp += 2

	switch sign {
	case pgNumericNaNSign, pgNumericPosInfSign, pgNumericNegInfSign:
		return nil, 0, ErrSpecialValue
	}

	if ndigits == 0 {
		return big.NewInt(0), 0, nil
	}

	if len(src[rp:]) != int(ndigits)*2 {
		return nil, 0, fmt.Errorf("numeric has %d digits but %d bytes", ndigits, len(src[rp:]))
	}

	accum := &big.Int{}

	for i := 0; i < int(ndigits+3)/4; i++ {
		int64accum, bytesRead, digitsRead := nbaseDigitsToInt64(src[rp:])
		rp += bytesRead

		if i > 0 {
			var mul *big.Int
			switch digitsRead {
			case 1:
				mul = bigNBase
			case 2:
				mul = bigNBaseX2
			case 3:
				mul = bigNBaseX3
			case 4:
				mul = bigNBaseX4
			default:
				return nil, 0, fmt.Errorf("invalid digitsRead: %d (this can't happen)", digitsRead)
			}
			accum.Mul(accum, mul)
		}

		accum.Add(accum, big.NewInt(int64accum))
	}

	exp = (int32(weight) - int32(ndigits) + 1) * 4

	if dscale > 0 {
		fracNBaseDigits := int16(int32(ndigits) - int32(weight) - 1)
		fracDecimalDigits := fracNBaseDigits * 4

		if dscale > fracDecimalDigits {
			for i := 0; i < int(dscale-fracDecimalDigits); i++ {
				accum.Mul(accum, big10)
				exp--
			}
		} else if dscale < fracDecimalDigits {
			for i := 0; i < int(fracDecimalDigits-dscale); i++ {
				accum.Div(accum, big10)
				exp++
			}
		}
	}

	reduced := &big.Int{}
	remainder := &big.Int{}
	if exp >= 0 {
		for accum.Sign() != 0 {
			reduced.DivMod(accum, big10, remainder)
			if remainder.Cmp(big0) != 0 {
				break
			}
			accum.Set(reduced)
			exp++
		}
	}

	if sign != 0 {
		accum.Neg(accum)
	}

	return accum, exp, nil
}

func nbaseDigitsToInt64(src []byte) (accum int64, bytesRead, digitsRead int) {
	digits := len(src) / 2
	if digits > 4 {
		digits = 4
	}

	rp := 0

	for i := 0; i < digits; i++ {
		if i > 0 {
			accum *= nbase
		}
		accum += int64(binary.BigEndian.Uint16(src[rp:]))
		rp += 2
	}

	return accum, rp, digits
}

// Append encodes coef * 10^exp as a binary numeric.
func Append(buf []byte, coef *big.Int, exp int32) []byte {
	var sign int16
	if coef.Sign() < 0 {
		sign = pgNumericNegSign
	}

	absInt := (&big.Int{}).Abs(coef)
	wholePart := &big.Int{}
	fracPart := &big.Int{}
	remainder := &big.Int{}

	// Normalize absInt and exp to where exp is always a multiple of 4.
	normExp := exp
	switch exp % 4 {
	case 1, -3:
		normExp = exp - 1
		absInt.Mul(absInt, big10)
	case 2, -2:
		normExp = exp - 2
		absInt.Mul(absInt, big100)
	case 3, -1:
		normExp = exp - 3
		absInt.Mul(absInt, big1000)
	}

	if normExp < 0 {
		divisor := &big.Int{}
		divisor.Exp(big10, big.NewInt(int64(-normExp)), nil)
		wholePart.DivMod(absInt, divisor, fracPart)
		fracPart.Add(fracPart, divisor)
	} else {
		wholePart = absInt
	}

	var wholeDigits, fracDigits []int16

	for wholePart.Cmp(big0) != 0 {
		wholePart.DivMod(wholePart, bigNBase, remainder)
		wholeDigits = append(wholeDigits, int16(remainder.Int64()))
	}

	if fracPart.Cmp(big0) != 0 {
		for fracPart.Cmp(big1) != 0 {
			fracPart.DivMod(fracPart, bigNBase, remainder)
			fracDigits = append(fracDigits, int16(remainder.Int64()))
		}
	}

	buf = pgio.AppendInt16(buf, int16(len(wholeDigits)+len(fracDigits)))

	var weight int16
	if len(wholeDigits) > 0 {
		weight = int16(len(wholeDigits) - 1)
		if normExp > 0 {
			weight += int16(normExp / 4)
		}
	} else {
		weight = int16(normExp/4) - 1 + int16(len(fracDigits))
	}
	buf = pgio.AppendInt16(buf, weight)

	buf = pgio.AppendInt16(buf, sign)

	var dscale int16
	if exp < 0 {
		dscale = int16(-exp)
	}
	buf = pgio.AppendInt16(buf, dscale)

	for i := len(wholeDigits) - 1; i >= 0; i-- {
		buf = pgio.AppendInt16(buf, wholeDigits[i])
	}

	for i := len(fracDigits) - 1; i >= 0; i-- {
		buf = pgio.AppendInt16(buf, fracDigits[i])
	}

	return buf
}
