package addr_test

import (
	"net/netip"
	"testing"

	"github.com/rangekit/pgrange"
	addr "github.com/rangekit/pgrange/ext/netipx-addr"
	"github.com/rangekit/pgrange/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go4.org/netipx"
)

func mustParse(t testing.TB, s string) pgrange.Range[netip.Addr] {
	t.Helper()
	r, err := pgrange.Parse[netip.Addr](addr.Addr, s)
	require.NoError(t, err)
	return r
}

func TestDiscrete(t *testing.T) {
	r := mustParse(t, "(10.0.0.0,10.0.0.255]")
	assert.Equal(t, "[10.0.0.1,10.0.1.0)", r.Canonical().String())
	assert.False(t, r.Contains(netip.MustParseAddr("10.0.0.0")))
	assert.True(t, r.Contains(netip.MustParseAddr("10.0.0.255")))

	assert.True(t, mustParse(t, "[10.0.0.0,10.0.0.10)").AdjacentTo(mustParse(t, "[10.0.0.10,10.0.0.20)")))
	assert.True(t, mustParse(t, "[10.0.0.0,10.0.0.9]").AdjacentTo(mustParse(t, "(10.0.0.9,10.0.0.20)")))
}

func TestFamilyOrder(t *testing.T) {
	r := mustParse(t, "[10.0.0.0,::1)")
	assert.True(t, r.Contains(netip.MustParseAddr("255.255.255.255")))
	assert.True(t, r.Contains(netip.MustParseAddr("::")))
}

func TestParseValue(t *testing.T) {
	a, err := addr.Addr.ParseValue("10.0.0.1/32")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), a)

	_, err = addr.Addr.ParseValue("10.0.0.0/24")
	assert.Error(t, err)

	_, err = addr.Addr.ParseValue("10.0.0")
	assert.Error(t, err)
}

func TestStepOverflow(t *testing.T) {
	_, err := pgrange.Parse[netip.Addr](addr.Addr, "[10.0.0.0,255.255.255.255]")
	assert.ErrorIs(t, err, pgrange.ErrStepOverflow)
}

func TestIPRange(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"[10.0.0.0,10.0.1.0)", "10.0.0.0-10.0.0.255"},
		{"(10.0.0.0,10.0.0.10]", "10.0.0.1-10.0.0.10"},
		{"(,10.0.0.10)", "0.0.0.0-10.0.0.9"},
		{"[10.0.0.0,)", "10.0.0.0-255.255.255.255"},
		{"[2001:db8::,2001:db8::100)", "2001:db8::-2001:db8::ff"},
	}

	for _, tt := range tests {
		rng, err := addr.IPRange(mustParse(t, tt.src))
		require.NoErrorf(t, err, "%s", tt.src)
		assert.Equalf(t, tt.want, rng.String(), "%s", tt.src)
	}

	for _, src := range []string{"empty", "(,)", "[10.0.0.1,::1)"} {
		_, err := addr.IPRange(mustParse(t, src))
		assert.ErrorIsf(t, err, addr.ErrNotRepresentable, "%s", src)
	}
}

func TestPrefixes(t *testing.T) {
	prefixes, err := addr.Prefixes(mustParse(t, "[192.168.0.0,192.168.2.0)"))
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("192.168.0.0/23")}, prefixes)

	prefixes, err = addr.Prefixes(mustParse(t, "[10.0.0.1,10.0.0.4)"))
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.1/32"),
		netip.MustParsePrefix("10.0.0.2/31"),
	}, prefixes)
}

func TestFromIPRange(t *testing.T) {
	r, err := addr.FromIPRange(netipx.MustParseIPRange("192.168.0.0-192.168.0.255"))
	require.NoError(t, err)
	assert.Equal(t, "[192.168.0.0,192.168.0.255]", r.String())
	assert.True(t, r.Contains(netip.MustParseAddr("192.168.0.255")))
	assert.False(t, r.Contains(netip.MustParseAddr("192.168.1.0")))

	_, err = addr.FromIPRange(netipx.IPRange{})
	assert.Error(t, err)
}

func TestRegisterBinary(t *testing.T) {
	m := pgtype.NewMap()
	addr.Register(m, "inetrange", 16500)

	typ, ok := m.TypeForName("inetrange")
	require.True(t, ok)

	for _, s := range []string{"[10.0.0.1,10.0.0.9)", "[2001:db8::1,)"} {
		v, err := typ.Codec.DecodeValue(pgrange.TextFormatCode, []byte(s))
		require.NoError(t, err)

		buf, err := v.Encode(pgrange.BinaryFormatCode, nil)
		require.NoError(t, err)
		v2, err := typ.Codec.DecodeValue(pgrange.BinaryFormatCode, buf)
		require.NoError(t, err)
		assert.Equal(t, s, v2.String())
	}
}
