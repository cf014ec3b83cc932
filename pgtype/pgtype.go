// Package pgtype is a registry of PostgreSQL range types for callers that only know a type by name or OID.
package pgtype

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rangekit/pgrange"
)

// PostgreSQL oids for the built in range types.
const (
	Int4rangeOID = 3904
	NumrangeOID  = 3906
	TsrangeOID   = 3908
	TstzrangeOID = 3910
	DaterangeOID = 3912
	Int8rangeOID = 3926
)

// Type is a registered range type.
type Type struct {
	Codec Codec
	Name  string
	OID   uint32
}

// Map is the mapping between PostgreSQL server types and range codecs. It is safe for concurrent use.
type Map struct {
	mu         sync.RWMutex
	oidToType  map[uint32]*Type
	nameToType map[string]*Type
}

// NewMap returns a Map with the built in range types registered: int4range, int8range, daterange, tsrange and
// tstzrange. numrange needs a decimal domain from the ext directory.
func NewMap() *Map {
	m := &Map{
		oidToType:  make(map[uint32]*Type),
		nameToType: make(map[string]*Type),
	}

	m.RegisterType(&Type{Name: "int4range", OID: Int4rangeOID, Codec: NewRangeCodec[int32](pgrange.Int4)})
	m.RegisterType(&Type{Name: "int8range", OID: Int8rangeOID, Codec: NewRangeCodec[int64](pgrange.Int8)})
	m.RegisterType(&Type{Name: "daterange", OID: DaterangeOID, Codec: NewRangeCodec(pgrange.Domain[time.Time](pgrange.Date))})
	m.RegisterType(&Type{Name: "tsrange", OID: TsrangeOID, Codec: NewRangeCodec(pgrange.Domain[time.Time](pgrange.Timestamp))})
	m.RegisterType(&Type{Name: "tstzrange", OID: TstzrangeOID, Codec: NewRangeCodec(pgrange.Domain[time.Time](pgrange.Timestamptz))})

	return m
}

// RegisterType registers a data type with the Map. t must not be mutated after it is registered. A type with the same
// name or OID as an existing type replaces it.
func (m *Map) RegisterType(t *Type) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.oidToType[t.OID] = t
	m.nameToType[t.Name] = t
}

// TypeForOID returns the Type registered for the given OID. The returned Type must not be mutated.
func (m *Map) TypeForOID(oid uint32) (*Type, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.oidToType[oid]
	return t, ok
}

// TypeForName returns the Type registered for the given name. The returned Type must not be mutated.
func (m *Map) TypeForName(name string) (*Type, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.nameToType[name]
	return t, ok
}

// Types returns the registered types ordered by name.
func (m *Map) Types() []*Type {
	m.mu.RLock()
	defer m.mu.RUnlock()

	types := make([]*Type, 0, len(m.nameToType))
	for _, t := range m.nameToType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types
}

// Parse parses the text format of a range of the named type.
func (m *Map) Parse(typeName, src string) (Value, error) {
	t, ok := m.TypeForName(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown range type %q", typeName)
	}
	return t.Codec.DecodeValue(pgrange.TextFormatCode, []byte(src))
}
