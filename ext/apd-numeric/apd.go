// Package apdnumeric provides a numrange domain over github.com/cockroachdb/apd for arbitrary precision bounds.
package apdnumeric

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd"
	"github.com/rangekit/pgrange/internal/pgnumeric"
	"github.com/rangekit/pgrange/pgtype"
)

// Domain is the continuous domain of finite *apd.Decimal values. Values must not be mutated once they are part of a
// range.
type Domain struct{}

// Numeric is the domain of numrange.
var Numeric Domain

func (Domain) Compare(a, b *apd.Decimal) int {
	return a.Cmp(b)
}

// FormatValue writes v without an exponent, keeping trailing zeros as PostgreSQL does.
func (Domain) FormatValue(v *apd.Decimal) string {
	return v.Text('f')
}

func (Domain) ParseValue(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("cannot use %s as a range bound", d)
	}
	return d, nil
}

func (Domain) AppendBinary(buf []byte, v *apd.Decimal) []byte {
	coef := new(big.Int).Set(&v.Coeff)
	if v.Negative {
		coef.Neg(coef)
	}
	return pgnumeric.Append(buf, coef, v.Exponent)
}

func (Domain) ParseBinary(src []byte) (*apd.Decimal, error) {
	coef, exp, err := pgnumeric.Parse(src)
	if err != nil {
		return nil, err
	}
	return apd.NewWithBigInt(coef, exp), nil
}

// Register registers numrange with m. It replaces any numrange already registered.
func Register(m *pgtype.Map) {
	m.RegisterType(&pgtype.Type{
		Name:  "numrange",
		OID:   pgtype.NumrangeOID,
		Codec: pgtype.NewRangeCodec[*apd.Decimal](Numeric),
	})
}
