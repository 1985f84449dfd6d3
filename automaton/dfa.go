package automaton

import (
	"fmt"

	"github.com/autriz/taifya/grammar"
	"github.com/dekarrin/rosed"
)

// DFA is a deterministic finite automaton over grammar.Symbol. It shares
// NFA's shape, plus the bidirectional combo↔name maps recording which
// composite states stand in for which set of original states — populated by
// subset construction (NFA.ToDFA) and reused, in place, by minimization
// (RemoveRedundantStates) to record the blocks it collapses.
type DFA struct {
	States []grammar.Symbol
	Inputs []grammar.Symbol
	Start  []grammar.Symbol
	Final  []grammar.Symbol
	Trans  *Table

	ComboToName map[string]grammar.Symbol
	NameToCombo map[grammar.Symbol][]grammar.Symbol
}

// ToNFA inverts subset construction: every state with an entry in
// NameToCombo is removed, its outgoing transitions are dropped, and every
// transition whose destination names it is rewritten to point at the
// combo it stood for instead. The DFA itself is left untouched; a new NFA
// is returned.
func (d *DFA) ToNFA() *NFA {
	isComposite := func(s grammar.Symbol) bool {
		_, ok := d.NameToCombo[s]
		return ok
	}

	var states []grammar.Symbol
	for _, s := range d.States {
		if !isComposite(s) {
			states = append(states, s)
		}
	}

	var final []grammar.Symbol
	for _, s := range d.Final {
		if !isComposite(s) {
			final = append(final, s)
		}
	}

	table := NewTable()
	for _, k := range d.Trans.SortedKeys() {
		if isComposite(k.State) {
			continue
		}

		dest, _ := d.Trans.Get(k)
		var expanded []grammar.Symbol
		for _, s := range dest {
			if combo, ok := d.NameToCombo[s]; ok {
				expanded = append(expanded, combo...)
			} else {
				expanded = append(expanded, s)
			}
		}
		table.Insert(k, sortedUniqueCopy(expanded))
	}

	return &NFA{
		States: states,
		Inputs: append([]grammar.Symbol(nil), d.Inputs...),
		Start:  append([]grammar.Symbol(nil), d.Start...),
		Final:  final,
		Trans:  table,
	}
}

// reachableStates returns every state reachable from Start across Inputs.
func (d *DFA) reachableStates() []grammar.Symbol {
	reachable := append([]grammar.Symbol(nil), d.Start...)
	queue := append([]grammar.Symbol(nil), d.Start...)

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		for _, input := range d.Inputs {
			dest, ok := d.Trans.Get(Key{State: s, Input: input})
			if !ok {
				continue
			}
			for _, next := range dest {
				if !containsSymbol(reachable, next) {
					reachable = append(reachable, next)
					queue = append(queue, next)
				}
			}
		}
	}

	return reachable
}

// HasUnreachableStates reports whether any state is unreachable from Start.
func (d *DFA) HasUnreachableStates() bool {
	return len(d.reachableStates()) != len(d.States)
}

// RemoveUnreachableStates drops every state not reachable from Start, along
// with its transitions (both as a source and as a destination).
func (d *DFA) RemoveUnreachableStates() {
	reachable := d.reachableStates()

	var states []grammar.Symbol
	for _, s := range d.States {
		if containsSymbol(reachable, s) {
			states = append(states, s)
		}
	}

	var final []grammar.Symbol
	for _, s := range d.Final {
		if containsSymbol(reachable, s) {
			final = append(final, s)
		}
	}

	table := NewTable()
	for _, k := range d.Trans.SortedKeys() {
		if !containsSymbol(reachable, k.State) {
			continue
		}
		dest, _ := d.Trans.Get(k)
		var kept []grammar.Symbol
		for _, s := range dest {
			if containsSymbol(reachable, s) {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			table.Insert(k, kept)
		}
	}

	d.States = states
	d.Final = final
	d.Trans = table
}

// RemoveRedundantStates minimizes the DFA by Moore-style iterative
// partition refinement: states start split into non-final/final blocks
// (preserving original State order within each), then each block is
// re-split, round by round, by grouping states that agree on every input
// symbol — either leading to the same destination, or to destinations
// currently in the same block — until a round changes nothing. Two states
// where exactly one has a defined transition on some input are never
// equivalent. A no-op if the DFA has unreachable states; call
// RemoveUnreachableStates (or Minify) first.
//
// Surviving blocks of size > 1 are each assigned a fresh name from
// 'A'..'Z', recorded bidirectionally in ComboToName/NameToCombo exactly as
// subset construction records its own combos; singleton blocks keep their
// state's existing name. Returns ErrNameCapacityExceeded if naming runs out
// of letters.
func (d *DFA) RemoveRedundantStates() error {
	if d.HasUnreachableStates() {
		return nil
	}

	var nonFinal, final []grammar.Symbol
	for _, s := range d.States {
		if containsSymbol(d.Final, s) {
			final = append(final, s)
		} else {
			nonFinal = append(nonFinal, s)
		}
	}

	var blocks [][]grammar.Symbol
	if len(nonFinal) > 0 {
		blocks = append(blocks, nonFinal)
	}
	if len(final) > 0 {
		blocks = append(blocks, final)
	}

	trans := make(map[grammar.Symbol]map[grammar.Symbol]grammar.Symbol, len(d.States))
	for _, s := range d.States {
		row := make(map[grammar.Symbol]grammar.Symbol)
		for _, in := range d.Inputs {
			if dest, ok := d.Trans.Get(Key{State: s, Input: in}); ok && len(dest) == 1 {
				row[in] = dest[0]
			}
		}
		trans[s] = row
	}

	for {
		blockOf := make(map[grammar.Symbol]int, len(d.States))
		for i, b := range blocks {
			for _, s := range b {
				blockOf[s] = i
			}
		}

		equivalent := func(s1, s2 grammar.Symbol) bool {
			for _, in := range d.Inputs {
				d1, ok1 := trans[s1][in]
				d2, ok2 := trans[s2][in]
				if !ok1 && !ok2 {
					continue
				}
				if ok1 != ok2 {
					return false
				}
				if d1 == d2 {
					continue
				}
				if blockOf[d1] != blockOf[d2] {
					return false
				}
			}
			return true
		}

		var next [][]grammar.Symbol
		for _, b := range blocks {
			var subBlocks [][]grammar.Symbol
			for _, s := range b {
				placed := false
				for i, sub := range subBlocks {
					if equivalent(s, sub[0]) {
						subBlocks[i] = append(sub, s)
						placed = true
						break
					}
				}
				if !placed {
					subBlocks = append(subBlocks, []grammar.Symbol{s})
				}
			}
			next = append(next, subBlocks...)
		}

		if blockPartitionsEqual(next, blocks) {
			break
		}
		blocks = next
	}

	claimed := append([]grammar.Symbol(nil), d.States...)
	nameOfBlock := make([]grammar.Symbol, len(blocks))
	var newStates []grammar.Symbol

	for i, b := range blocks {
		if len(b) == 1 {
			nameOfBlock[i] = b[0]
			newStates = append(newStates, b[0])
			continue
		}

		name, err := firstUnusedLetter(claimed)
		if err != nil {
			return fmt.Errorf("minimize: name block %v: %w", symbolsJoined(b), err)
		}
		claimed = append(claimed, name)
		nameOfBlock[i] = name
		newStates = append(newStates, name)

		combo := sortedUniqueCopy(b)
		d.ComboToName[comboKey(combo)] = name
		d.NameToCombo[name] = combo
	}

	stateToBlockName := make(map[grammar.Symbol]grammar.Symbol, len(d.States))
	for i, b := range blocks {
		for _, s := range b {
			stateToBlockName[s] = nameOfBlock[i]
		}
	}

	var newFinal []grammar.Symbol
	for i, b := range blocks {
		if intersectsAny(b, d.Final) {
			newFinal = append(newFinal, nameOfBlock[i])
		}
	}

	var newStart []grammar.Symbol
	for _, s := range d.Start {
		newStart = append(newStart, stateToBlockName[s])
	}

	newTable := NewTable()
	for _, oldState := range d.States {
		newSrc := stateToBlockName[oldState]
		for _, in := range d.Inputs {
			dest, ok := trans[oldState][in]
			if !ok {
				continue
			}
			k := Key{State: newSrc, Input: in}
			if _, exists := newTable.Get(k); exists {
				continue
			}
			newTable.Insert(k, []grammar.Symbol{stateToBlockName[dest]})
		}
	}

	d.States = newStates
	d.Final = newFinal
	d.Start = newStart
	d.Trans = newTable

	return nil
}

func blockPartitionsEqual(a, b [][]grammar.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// Minify composes RemoveUnreachableStates (only if needed) then
// RemoveRedundantStates, the order spec.md §4.7 requires: minimization
// assumes no unreachable states remain.
func (d *DFA) Minify() error {
	if d.HasUnreachableStates() {
		d.RemoveUnreachableStates()
	}
	return d.RemoveRedundantStates()
}

// String renders the automaton as "M = { {Q}, {T}, F, {H}, {Z} }".
func (d *DFA) String() string {
	return fmt.Sprintf("M = { {%s}, {%s}, F, {%s}, {%s} }",
		symbolsJoined(d.States), symbolsJoined(d.Inputs), symbolsJoined(d.Start), symbolsJoined(d.Final))
}

// Pretty renders String() word-wrapped at width.
func (d *DFA) Pretty(width int) string {
	return rosed.Edit(d.String()).Wrap(width).String()
}
