// Package collate provides text range domains ordered by a golang.org/x/text/collate collation, for text ranges
// declared with a collation other than "C".
package collate

import (
	"sync"

	"github.com/rangekit/pgrange/pgtype"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Domain is a continuous text domain ordered by a language collation. It is safe for concurrent use.
type Domain struct {
	tag language.Tag

	mu sync.Mutex
	c  *collate.Collator
}

// New returns a Domain that orders text with the collation rules of tag.
func New(tag language.Tag, opts ...collate.Option) *Domain {
	return &Domain{tag: tag, c: collate.New(tag, opts...)}
}

// Tag returns the language of the collation.
func (d *Domain) Tag() language.Tag {
	return d.tag
}

// Compare compares a and b under the collation. Strings the collation considers equal but that differ in bytes, such
// as under collate.IgnoreCase, are ordered by their bytes so that Compare stays a total order.
func (d *Domain) Compare(a, b string) int {
	d.mu.Lock()
	n := d.c.CompareString(a, b)
	d.mu.Unlock()

	if n != 0 || a == b {
		return n
	}
	if a < b {
		return -1
	}
	return 1
}

func (d *Domain) FormatValue(v string) string {
	return v
}

func (d *Domain) ParseValue(s string) (string, error) {
	return s, nil
}

func (d *Domain) AppendBinary(buf []byte, v string) []byte {
	return append(buf, v...)
}

func (d *Domain) ParseBinary(src []byte) (string, error) {
	return string(src), nil
}

// Register registers a text range type ordered by d with m.
//
//	create type textrange_de as range (subtype = text, collation = "de-DE-x-icu");
func Register(m *pgtype.Map, name string, oid uint32, d *Domain) {
	m.RegisterType(&pgtype.Type{
		Name:  name,
		OID:   oid,
		Codec: pgtype.NewRangeCodec[string](d),
	})
}
