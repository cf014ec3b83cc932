// Package rangeop maps the PostgreSQL range operators onto the methods of pgrange.Range.
package rangeop

import (
	"fmt"
	"strings"
)

// Operator is a PostgreSQL range operator.
type Operator int

const (
	Contains Operator = iota + 1
	ContainedBy
	Overlaps
	StrictlyLeftOf
	StrictlyRightOf
	NotExtendRightOf
	NotExtendLeftOf
	AdjacentTo
	Union
	Difference
	Intersection
)

var operatorInfo = map[Operator]struct {
	symbol    string
	name      string
	predicate bool
}{
	Contains:         {symbol: "@>", name: "contains", predicate: true},
	ContainedBy:      {symbol: "<@", name: "contained_by", predicate: true},
	Overlaps:         {symbol: "&&", name: "overlaps", predicate: true},
	StrictlyLeftOf:   {symbol: "<<", name: "strictly_left_of", predicate: true},
	StrictlyRightOf:  {symbol: ">>", name: "strictly_right_of", predicate: true},
	NotExtendRightOf: {symbol: "&<", name: "not_extend_right_of", predicate: true},
	NotExtendLeftOf:  {symbol: "&>", name: "not_extend_left_of", predicate: true},
	AdjacentTo:       {symbol: "-|-", name: "adjacent_to", predicate: true},
	Union:            {symbol: "+", name: "union"},
	Difference:       {symbol: "-", name: "difference"},
	Intersection:     {symbol: "*", name: "intersection"},
}

// Operators returns every operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, 0, len(operatorInfo))
	for op := Contains; op <= Intersection; op++ {
		ops = append(ops, op)
	}
	return ops
}

// String returns the SQL symbol of op, such as "@>".
func (op Operator) String() string {
	if info, ok := operatorInfo[op]; ok {
		return info.symbol
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Name returns the word form of op, such as "contains".
func (op Operator) Name() string {
	if info, ok := operatorInfo[op]; ok {
		return info.name
	}
	return fmt.Sprintf("operator_%d", int(op))
}

// IsPredicate reports whether op yields a boolean rather than a range.
func (op Operator) IsPredicate() bool {
	return operatorInfo[op].predicate
}

// ParseOperator accepts the SQL symbol or the name of an operator. Names are matched case-insensitively and may use
// '-' in place of '_'.
func ParseOperator(s string) (Operator, error) {
	s = strings.TrimSpace(s)
	name := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	for op, info := range operatorInfo {
		if s == info.symbol || name == info.name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown range operator %q", s)
}
