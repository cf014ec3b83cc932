// Package numeric provides a numrange domain over github.com/shopspring/decimal.
package numeric

import (
	"strings"

	"github.com/rangekit/pgrange"
	"github.com/rangekit/pgrange/internal/pgnumeric"
	"github.com/rangekit/pgrange/pgtype"
	"github.com/shopspring/decimal"
)

// Domain is the continuous domain of decimal.Decimal.
type Domain struct{}

// Numeric is the domain of numrange.
var Numeric Domain

func (Domain) Compare(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

func (Domain) FormatValue(v decimal.Decimal) string {
	return v.String()
}

func (Domain) ParseValue(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

func (Domain) AppendBinary(buf []byte, v decimal.Decimal) []byte {
	return pgnumeric.Append(buf, v.Coefficient(), v.Exponent())
}

func (Domain) ParseBinary(src []byte) (decimal.Decimal, error) {
	coef, exp, err := pgnumeric.Parse(src)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(coef, exp), nil
}

// Register registers numrange with m.
func Register(m *pgtype.Map) {
	m.RegisterType(&pgtype.Type{
		Name:  "numrange",
		OID:   pgtype.NumrangeOID,
		Codec: pgtype.NewRangeCodec[decimal.Decimal](Numeric),
	})
}

// Parse parses the text form of a numrange.
func Parse(src string) (pgrange.Range[decimal.Decimal], error) {
	return pgrange.Parse[decimal.Decimal](Numeric, src)
}
