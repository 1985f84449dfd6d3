package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autriz/taifya/grammar"
)

// ParseTransitions reads a transition-table literal in the format spec.md
// §6 gives for the Construction DSL:
//
//	q,a -> d1, d2; q,b -> d3; ...
//
// Statements are separated by ";"; each statement is "<state>,<input> ->
// <dest1>, <dest2>, ...". Both "->" and "→" are accepted as the arrow.
// Destination lists of length > 1 are sorted on insert, matching Table's own
// Append behavior. Blank statements (extra trailing ";", blank lines) are
// skipped. This mirrors the teacher repo's own hand-rolled
// parseFATransition idiom, adapted to this toolkit's multi-destination
// shape.
func ParseTransitions(src string) (*Table, error) {
	table := NewTable()

	for _, raw := range strings.Split(src, ";") {
		stmt := strings.TrimSpace(raw)
		if stmt == "" {
			continue
		}

		lhs, rhs, err := splitArrow(stmt)
		if err != nil {
			return nil, err
		}

		parts := strings.SplitN(lhs, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("automaton dsl: statement %q: expected \"state,input\" before the arrow", stmt)
		}
		state, err := firstSymbol(parts[0], stmt)
		if err != nil {
			return nil, err
		}
		input, err := firstSymbol(parts[1], stmt)
		if err != nil {
			return nil, err
		}

		var dest []grammar.Symbol
		for _, d := range strings.Split(rhs, ",") {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			sym, err := firstSymbol(d, stmt)
			if err != nil {
				return nil, err
			}
			dest = append(dest, sym)
		}
		if len(dest) == 0 {
			return nil, fmt.Errorf("automaton dsl: statement %q: empty destination list", stmt)
		}
		if len(dest) > 1 {
			sort.Slice(dest, func(i, j int) bool { return dest[i] < dest[j] })
		}

		table.Insert(Key{State: state, Input: input}, dest)
	}

	return table, nil
}

// MustParseTransitions is ParseTransitions, panicking on error. Intended for
// tests and literal transition tables known good at compile time.
func MustParseTransitions(src string) *Table {
	t, err := ParseTransitions(src)
	if err != nil {
		panic(err)
	}
	return t
}

func splitArrow(stmt string) (lhs, rhs string, err error) {
	if i := strings.Index(stmt, "->"); i >= 0 {
		return strings.TrimSpace(stmt[:i]), strings.TrimSpace(stmt[i+2:]), nil
	}
	if i := strings.Index(stmt, "→"); i >= 0 {
		return strings.TrimSpace(stmt[:i]), strings.TrimSpace(stmt[i+len("→"):]), nil
	}
	return "", "", fmt.Errorf("automaton dsl: statement %q: missing arrow", stmt)
}

func firstSymbol(s, stmt string) (grammar.Symbol, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) == 0 {
		return 0, fmt.Errorf("automaton dsl: statement %q: empty symbol", stmt)
	}
	return grammar.Symbol(runes[0]), nil
}
