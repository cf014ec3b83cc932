// Package addr provides a discrete range domain over net/netip addresses and converts ranges to go4.org/netipx
// IP ranges and prefixes.
package addr

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/rangekit/pgrange"
	"github.com/rangekit/pgrange/pgtype"
	"go4.org/netipx"
)

// Network address family is dependent on server socket.h value for AF_INET.
const (
	defaultAFInet  = 2
	defaultAFInet6 = 3
)

// Domain is the discrete domain of IP addresses. IPv4 addresses sort before IPv6 addresses.
type Domain struct{}

// Addr is the IP address range domain.
var Addr Domain

func (Domain) Compare(a, b netip.Addr) int {
	return a.Compare(b)
}

// Next returns the next address. The successor of the last address of a family is the invalid zero Addr, which sorts
// first and is reported as a step overflow.
func (Domain) Next(v netip.Addr) netip.Addr {
	return v.Next()
}

func (Domain) FormatValue(v netip.Addr) string {
	return v.String()
}

// ParseValue parses an address. A host prefix such as 10.0.0.1/32 is accepted as the address it contains.
func (Domain) ParseValue(s string) (netip.Addr, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return netip.ParseAddr(s)
	}

	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !p.IsSingleIP() {
		return netip.Addr{}, fmt.Errorf("%s is a network, not an address", s)
	}
	return p.Addr(), nil
}

func (Domain) AppendBinary(buf []byte, v netip.Addr) []byte {
	var family byte = defaultAFInet
	if v.Is6() {
		family = defaultAFInet6
	}

	buf = append(buf, family, byte(v.BitLen()))

	// is_cidr is ignored on server
	buf = append(buf, 0)

	b := v.AsSlice()
	buf = append(buf, byte(len(b)))
	return append(buf, b...)
}

func (Domain) ParseBinary(src []byte) (netip.Addr, error) {
	if len(src) != 8 && len(src) != 20 {
		return netip.Addr{}, fmt.Errorf("Received an invalid size for a inet: %d", len(src))
	}

	bits := src[1]
	addressLength := src[3]
	if int(addressLength) != len(src[4:]) {
		return netip.Addr{}, fmt.Errorf("inet address length %d does not match %d bytes", addressLength, len(src[4:]))
	}

	a, ok := netip.AddrFromSlice(src[4:])
	if !ok {
		return netip.Addr{}, fmt.Errorf("invalid inet address")
	}
	if int(bits) != a.BitLen() {
		return netip.Addr{}, fmt.Errorf("inet %s/%d is a network, not an address", a, bits)
	}
	return a, nil
}

// Register registers a user-defined address range type such as
//
//	create type inetrange as range (subtype = inet);
func Register(m *pgtype.Map, name string, oid uint32) {
	m.RegisterType(&pgtype.Type{
		Name:  name,
		OID:   oid,
		Codec: pgtype.NewRangeCodec[netip.Addr](Addr),
	})
}

// ErrNotRepresentable is returned by IPRange for ranges that have no netipx.IPRange equivalent.
var ErrNotRepresentable = errors.New("range cannot be represented as an IP range")

// IPRange converts r to the inclusive netipx.IPRange holding the same addresses. An unbounded side extends to the
// first or last address of the family of the other side.
func IPRange(r pgrange.Range[netip.Addr]) (netipx.IPRange, error) {
	if r.IsEmpty() {
		return netipx.IPRange{}, fmt.Errorf("%w: empty range", ErrNotRepresentable)
	}

	r = r.Canonical()
	lower, hasLower := r.Lower()
	upper, hasUpper := r.Upper()

	var from, to netip.Addr
	switch {
	case hasLower && hasUpper:
		from, to = lower, upper.Prev()
	case hasLower:
		from, to = lower, lastAddr(lower)
	case hasUpper:
		from, to = firstAddr(upper), upper.Prev()
	default:
		return netipx.IPRange{}, fmt.Errorf("%w: no address family", ErrNotRepresentable)
	}

	rng := netipx.IPRangeFrom(from, to)
	if !rng.IsValid() {
		return netipx.IPRange{}, fmt.Errorf("%w: %v spans address families", ErrNotRepresentable, r)
	}
	return rng, nil
}

// FromIPRange returns the closed range [From,To] of rng.
func FromIPRange(rng netipx.IPRange) (pgrange.Range[netip.Addr], error) {
	if !rng.IsValid() {
		return pgrange.Range[netip.Addr]{}, fmt.Errorf("invalid IP range %v", rng)
	}
	return pgrange.New[netip.Addr](Addr, pgrange.Finite(rng.From()), pgrange.Finite(rng.To()), pgrange.BoundsClosed)
}

// Prefixes returns the smallest set of prefixes that covers exactly the addresses of r.
func Prefixes(r pgrange.Range[netip.Addr]) ([]netip.Prefix, error) {
	rng, err := IPRange(r)
	if err != nil {
		return nil, err
	}
	return rng.Prefixes(), nil
}

func firstAddr(a netip.Addr) netip.Addr {
	if a.Is4() {
		return netip.IPv4Unspecified()
	}
	return netip.IPv6Unspecified()
}

func lastAddr(a netip.Addr) netip.Addr {
	if a.Is4() {
		return netip.AddrFrom4([4]byte{255, 255, 255, 255})
	}
	var b [16]byte
	for i := range b {
		b[i] = 0xff
	}
	return netip.AddrFrom16(b)
}
