// Package automaton implements the toolkit's finite-automaton layer: the
// transition table, right-linear-grammar→NFA construction, NFA→DFA subset
// construction, DFA→NFA inversion, unreachable-state pruning, and Moore
// partition-refinement minimization.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autriz/taifya/grammar"
	"github.com/dekarrin/rosed"
)

// Key identifies a transition table entry: a (state, input) pair.
type Key struct {
	State grammar.Symbol
	Input grammar.Symbol
}

// Table maps (state, input) pairs to an ordered list of destination states.
// A list of length > 1 means the automaton it belongs to is
// non-deterministic on that pair. Insert stores a destination list exactly
// as given; Append sorts a list once it holds more than one entry. Keeping
// lists sorted is otherwise the caller's job: the NFA builder writes through
// Append, and subset construction sorts each list before it inserts it.
type Table struct {
	m map[Key][]grammar.Symbol
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{m: make(map[Key][]grammar.Symbol)}
}

// Insert sets the destination list for k, replacing any existing entry, and
// returns the previous value (nil if there was none).
func (t *Table) Insert(k Key, dest []grammar.Symbol) []grammar.Symbol {
	old := t.m[k]
	t.m[k] = dest
	return old
}

// Get returns the destination list for k and whether it exists.
func (t *Table) Get(k Key) ([]grammar.Symbol, bool) {
	v, ok := t.m[k]
	return v, ok
}

// Append adds dest to k's destination list, creating the entry if absent,
// and sorts the list whenever its length grows past 1 — mirroring the
// invariant NFA construction relies on (spec.md §4.8: a destination list
// becomes sorted the moment a second entry is appended to it).
func (t *Table) Append(k Key, dest grammar.Symbol) {
	list := append(t.m[k], dest)
	if len(list) > 1 {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	}
	t.m[k] = list
}

// Remove deletes k's entry, if any, returning its former value.
func (t *Table) Remove(k Key) ([]grammar.Symbol, bool) {
	v, ok := t.m[k]
	if ok {
		delete(t.m, k)
	}
	return v, ok
}

// Len returns the number of (state, input) entries in the table.
func (t *Table) Len() int {
	return len(t.m)
}

// Each calls fn once per entry. Iteration order is unspecified; use
// SortedKeys for a deterministic order.
func (t *Table) Each(fn func(Key, []grammar.Symbol)) {
	for k, v := range t.m {
		fn(k, v)
	}
}

// SortedKeys returns the table's keys ordered by state then input, for
// callers (subset construction, minimization, Display) that need
// deterministic iteration.
func (t *Table) SortedKeys() []Key {
	keys := make([]Key, 0, len(t.m))
	for k := range t.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		return keys[i].Input < keys[j].Input
	})
	return keys
}

// String renders the table one entry per line, as "(q, a) → [d1, d2]".
func (t *Table) String() string {
	keys := t.SortedKeys()
	lines := make([]string, len(keys))
	for i, k := range keys {
		dest, _ := t.Get(k)
		lines[i] = fmt.Sprintf("(%s, %s) → [%s]", string(rune(k.State)), string(rune(k.Input)), symbolsJoined(dest))
	}
	return strings.Join(lines, "\n")
}

// Pretty renders String() word-wrapped at width, for display in narrow
// terminals. It never changes the data String() reports, only the layout.
func (t *Table) Pretty(width int) string {
	return rosed.Edit(t.String()).Wrap(width).String()
}
