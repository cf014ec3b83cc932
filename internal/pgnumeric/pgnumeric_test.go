package pgnumeric_test

import (
	"math/big"
	"testing"

	"github.com/rangekit/pgrange/internal/pgnumeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		coef int64
		exp  int32
		want []byte
	}{
		{15, -1, []byte{0, 2, 0, 0, 0, 0, 0, 1, 0, 1, 0x13, 0x88}},
		{12345678, 0, []byte{0, 2, 0, 1, 0, 0, 0, 0, 0x04, 0xd2, 0x16, 0x2e}},
		{-1, 2, []byte{0, 1, 0, 0, 0x40, 0, 0, 0, 0, 100}},
	}

	for i, tt := range tests {
		got := pgnumeric.Append(nil, big.NewInt(tt.coef), tt.exp)
		assert.Equalf(t, tt.want, got, "%d", i)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		coef string
		exp  int32
	}{
		{"15", -1},
		{"12345678", 0},
		{"-1", 2},
		{"1", -5},
		{"-987654321987654321", -9},
		{"42", 10},
	}

	for i, tt := range tests {
		coef, ok := new(big.Int).SetString(tt.coef, 10)
		require.True(t, ok)

		gotCoef, gotExp, err := pgnumeric.Parse(pgnumeric.Append(nil, coef, tt.exp))
		require.NoErrorf(t, err, "%d", i)

		want := new(big.Rat).SetFrac(coef, big.NewInt(1))
		got := new(big.Rat).SetFrac(gotCoef, big.NewInt(1))
		scale := func(r *big.Rat, exp int32) *big.Rat {
			p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs(exp))), nil)
			if exp < 0 {
				return r.Quo(r, new(big.Rat).SetInt(p))
			}
			return r.Mul(r, new(big.Rat).SetInt(p))
		}
		assert.Equalf(t, scale(want, tt.exp).String(), scale(got, gotExp).String(), "%d", i)
	}
}

func abs(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}

func TestParseErrors(t *testing.T) {
	_, _, err := pgnumeric.Parse([]byte{0, 1})
	assert.Error(t, err)

	_, _, err = pgnumeric.Parse([]byte{0, 0, 0, 0, 0xc0, 0, 0, 0})
	assert.ErrorIs(t, err, pgnumeric.ErrSpecialValue)

	_, _, err = pgnumeric.Parse([]byte{0, 2, 0, 0, 0, 0, 0, 0, 0, 1})
	assert.Error(t, err)

	coef, exp, err := pgnumeric.Parse([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, int64(0), coef.Int64())
	assert.Equal(t, int32(0), exp)
}
