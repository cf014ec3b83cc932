// Package sqltext renders range values as SQL literals and range predicates.
package sqltext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rangekit/pgrange"
	"github.com/rangekit/pgrange/pgtype"
	"github.com/rangekit/pgrange/rangeop"
)

// ErrRangesUnsupported is returned when rendering SQL for a server that predates range types.
var ErrRangesUnsupported = errors.New("range types require PostgreSQL 9.2 or later")

var rangeTypesConstraint = mustConstraint(">= 9.2")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Dialect describes the server SQL is rendered for. A nil ServerVersion means the latest server.
type Dialect struct {
	ServerVersion *semver.Version
}

// ParseDialect parses a server version as reported by server_version, such as "9.6.24", "16.2" or
// "15.4 (Debian 15.4-1.pgdg120+1)". An empty version means the latest server.
func ParseDialect(version string) (*Dialect, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return &Dialect{}, nil
	}
	if i := strings.IndexAny(version, " \t("); i >= 0 {
		version = version[:i]
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid server version %q: %w", version, err)
	}
	return &Dialect{ServerVersion: v}, nil
}

// SupportsRanges reports whether the server has range types.
func (d *Dialect) SupportsRanges() bool {
	if d == nil || d.ServerVersion == nil {
		return true
	}
	return rangeTypesConstraint.Check(d.ServerVersion)
}

// Literal renders v as a typed SQL literal, for example '[1,10)'::int4range.
func (d *Dialect) Literal(v pgtype.Value, typeName string) (string, error) {
	if !d.SupportsRanges() {
		return "", ErrRangesUnsupported
	}
	if v == nil {
		return "NULL::" + QuoteIdentifier(typeName), nil
	}

	buf, err := v.Encode(pgrange.TextFormatCode, nil)
	if err != nil {
		return "", err
	}

	sb := &strings.Builder{}
	sb.WriteString(QuoteString(string(buf)))
	sb.WriteString("::")
	sb.WriteString(QuoteIdentifier(typeName))
	return sb.String(), nil
}

// Predicate renders "column op literal", for example "during" && '[2024-01-01,2024-02-01)'::daterange.
func (d *Dialect) Predicate(column string, op rangeop.Operator, v pgtype.Value, typeName string) (string, error) {
	if !op.IsPredicate() {
		return "", fmt.Errorf("operator %v is not a predicate", op)
	}

	lit, err := d.Literal(v, typeName)
	if err != nil {
		return "", err
	}
	return QuoteIdentifier(column) + " " + op.String() + " " + lit, nil
}

// QuoteString quotes s as a SQL string literal.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteIdentifier quotes an identifier when it is not a plain lower case name. A dotted name is quoted part by part.
func QuoteIdentifier(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if !isPlainIdentifier(p) {
			parts[i] = `"` + strings.ReplaceAll(strings.ReplaceAll(p, string([]byte{0}), ""), `"`, `""`) + `"`
		}
	}
	return strings.Join(parts, ".")
}

func isPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case (c >= '0' && c <= '9') || c == '$':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
