package automaton

import (
	"fmt"
	"sort"

	"github.com/autriz/taifya/grammar"
	"github.com/dekarrin/rezi"
)

// dfaWire is the flattened, rezi-friendly shape MarshalBinary/UnmarshalBinary
// encode a DFA through. Table's internal map and the combo maps are
// flattened to slices of entries since a map keyed on a struct (Key) isn't a
// shape rezi's binary format needs to understand directly.
type dfaWire struct {
	States  []grammar.Symbol
	Inputs  []grammar.Symbol
	Start   []grammar.Symbol
	Final   []grammar.Symbol
	Entries []tableEntry
	Combos  []comboEntry
}

type tableEntry struct {
	State grammar.Symbol
	Input grammar.Symbol
	Dest  []grammar.Symbol
}

type comboEntry struct {
	Name  grammar.Symbol
	Combo []grammar.Symbol
}

// MarshalBinary encodes the DFA via github.com/dekarrin/rezi, the same
// binary codec the teacher repo uses to persist game state
// (server/dao/sqlite). Persistence itself is left entirely to the caller;
// this is a convenience, not a requirement — nothing else in this package
// calls it.
func (d *DFA) MarshalBinary() ([]byte, error) {
	w := dfaWire{
		States: d.States,
		Inputs: d.Inputs,
		Start:  d.Start,
		Final:  d.Final,
	}

	for _, k := range d.Trans.SortedKeys() {
		dest, _ := d.Trans.Get(k)
		w.Entries = append(w.Entries, tableEntry{State: k.State, Input: k.Input, Dest: dest})
	}

	for name, combo := range d.NameToCombo {
		w.Combos = append(w.Combos, comboEntry{Name: name, Combo: combo})
	}
	sort.Slice(w.Combos, func(i, j int) bool { return w.Combos[i].Name < w.Combos[j].Name })

	return rezi.EncBinary(w), nil
}

// UnmarshalBinary decodes a DFA previously produced by MarshalBinary. It
// returns an error (rather than leaving the DFA partially populated) if the
// encoded byte count doesn't match exactly, matching the strict consumed-
// byte check the teacher repo's own rezi.DecBinary callers perform.
func (d *DFA) UnmarshalBinary(data []byte) error {
	var w dfaWire
	n, err := rezi.DecBinary(data, &w)
	if err != nil {
		return fmt.Errorf("dfa: decode: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("dfa: decode: consumed %d/%d bytes", n, len(data))
	}

	d.States = w.States
	d.Inputs = w.Inputs
	d.Start = w.Start
	d.Final = w.Final

	d.Trans = NewTable()
	for _, e := range w.Entries {
		d.Trans.Insert(Key{State: e.State, Input: e.Input}, e.Dest)
	}

	d.ComboToName = make(map[string]grammar.Symbol, len(w.Combos))
	d.NameToCombo = make(map[grammar.Symbol][]grammar.Symbol, len(w.Combos))
	for _, c := range w.Combos {
		d.NameToCombo[c.Name] = c.Combo
		d.ComboToName[comboKey(sortedUniqueCopy(c.Combo))] = c.Name
	}

	return nil
}
