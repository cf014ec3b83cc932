// Package uuid provides a discrete range domain over github.com/gofrs/uuid for user-defined uuid range types such
// as
//
//	create type uuidrange as range (subtype = uuid);
package uuid

import (
	"bytes"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rangekit/pgrange/pgtype"
)

// Domain is the discrete domain of UUIDs ordered as unsigned 128-bit integers, the way PostgreSQL orders uuid.
type Domain struct{}

// UUID is the uuid range domain.
var UUID Domain

func (Domain) Compare(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// Next returns v+1. The successor of the largest UUID wraps around to uuid.Nil.
func (Domain) Next(v uuid.UUID) uuid.UUID {
	for i := len(v) - 1; i >= 0; i-- {
		v[i]++
		if v[i] != 0 {
			break
		}
	}
	return v
}

func (Domain) FormatValue(v uuid.UUID) string {
	return v.String()
}

func (Domain) ParseValue(s string) (uuid.UUID, error) {
	return uuid.FromString(strings.TrimSpace(s))
}

func (Domain) AppendBinary(buf []byte, v uuid.UUID) []byte {
	return append(buf, v[:]...)
}

func (Domain) ParseBinary(src []byte) (uuid.UUID, error) {
	return uuid.FromBytes(src)
}

// Register registers a uuid range type with m. PostgreSQL has no built in uuid range, so the name and OID of the
// user-defined type must be supplied.
func Register(m *pgtype.Map, name string, oid uint32) {
	m.RegisterType(&pgtype.Type{
		Name:  name,
		OID:   oid,
		Codec: pgtype.NewRangeCodec[uuid.UUID](UUID),
	})
}
