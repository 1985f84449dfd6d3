package automaton

import (
	"fmt"

	"github.com/autriz/taifya/grammar"
	"github.com/autriz/taifya/internal/terrors"
	"github.com/dekarrin/rosed"
)

// NFA is a (possibly) non-deterministic finite automaton over
// grammar.Symbol. States and Inputs are kept in the order they were built,
// Start and Final are the starting and accepting state sets.
type NFA struct {
	States []grammar.Symbol
	Inputs []grammar.Symbol
	Start  []grammar.Symbol
	Final  []grammar.Symbol
	Trans  *Table
}

// NewFromGrammar builds the NFA that accepts exactly the language of a
// right-linear grammar aligned to the right (grammar.RegularRight); any
// other grammar.Kind is rejected with ErrInvalidGrammarType, since this
// toolkit implements no left-linear conversion path.
//
// A synthesized final non-terminal N_f is appended to the state set: "N" if
// that letter is not already a non-terminal, otherwise the first unused
// uppercase letter. Each rule A → β is translated variant by variant:
//
//   - β = ε and A is the start symbol: A itself becomes an accepting state
//     (the language contains the empty string); no transition is emitted.
//   - β is a single symbol not shared as the prefix of some longer variant
//     of the same rule: β is extended with N_f, i.e. treated as if the rule
//     read A → β·N_f, so that consuming β arrives at the accepting state.
//   - Every variant of length ≥ 2 (after the extension above) with a
//     non-ε first symbol contributes the transition (A, β₁) → β₂.
//
// A single-symbol, non-ε variant that IS shared as the prefix of a longer
// variant is left alone — the longer variant already supplies the
// transition that consumes its first symbol, and any internal-invariant
// violation where no variant actually extends it cannot arise once a
// grammar has been classified RegularRight, so there is no defensive
// handling for it here.
func NewFromGrammar(g grammar.Grammar) (*NFA, error) {
	if g.Type != grammar.RegularRight {
		return nil, terrors.Wrap(ErrInvalidGrammarType,
			fmt.Sprintf("grammar is %s, not a right-aligned regular grammar", g.Type), "")
	}

	states := append([]grammar.Symbol(nil), g.NonTerminals...)

	closing := grammar.Symbol('N')
	if containsSymbol(states, closing) {
		var err error
		closing, err = firstUnusedLetter(states)
		if err != nil {
			return nil, fmt.Errorf("synthesize final non-terminal: %w", err)
		}
	}
	states = append(states, closing)

	var final []grammar.Symbol
	table := NewTable()

	for _, r := range g.Rules {
		head := r.Input[0]

		extended := make([][]grammar.Symbol, len(r.Variants))
		for i, v := range r.Variants {
			extended[i] = append([]grammar.Symbol(nil), v...)
		}

		for i, v := range r.Variants {
			if len(v) != 1 {
				continue
			}
			if v[0] == grammar.Epsilon && head == g.Start {
				final = append(final, g.Start)
				continue
			}

			sharesPrefix := false
			for _, other := range r.Variants {
				if len(other) > 1 && other[0] == v[0] {
					sharesPrefix = true
					break
				}
			}
			if !sharesPrefix {
				extended[i] = append(extended[i], closing)
			}
		}

		for _, variant := range extended {
			if len(variant) != 1 && variant[0] != grammar.Epsilon {
				table.Append(Key{State: head, Input: variant[0]}, variant[1])
			}
		}
	}

	if !containsSymbol(final, closing) {
		final = append(final, closing)
	}

	return &NFA{
		States: states,
		Inputs: append([]grammar.Symbol(nil), g.Terminals...),
		Start:  []grammar.Symbol{g.Start},
		Final:  final,
		Trans:  table,
	}, nil
}

// ToDFA performs subset construction (spec.md §4.4). Every transition whose
// destination list has more than one element is replaced by a single
// synthesized (or reused) composite state name drawn from 'A'..'Z'; the
// combo a name stands for is recorded bidirectionally in the returned DFA's
// ComboToName/NameToCombo maps. Processing then continues breadth-first over
// newly discovered combos: for each input symbol, the destinations reachable
// from every sub-state of a combo (expanding composite sub-states through
// NameToCombo) are unioned, sorted, and deduplicated; a result of size > 1
// is itself named (reusing an existing name if the exact same combo was
// already seen). A composite state is accepting iff its combo intersects
// the NFA's Final set — decided once, at the moment the combo is named, and
// never recomputed.
//
// Returns ErrNameCapacityExceeded if the 'A'..'Z' name universe is
// exhausted before construction completes.
func (n *NFA) ToDFA() (*DFA, error) {
	states := append([]grammar.Symbol(nil), n.States...)
	final := append([]grammar.Symbol(nil), n.Final...)
	table := NewTable()
	comboToName := make(map[string]grammar.Symbol)
	nameToCombo := make(map[grammar.Symbol][]grammar.Symbol)

	nameFor := func(rawCombo []grammar.Symbol) (name grammar.Symbol, fresh bool, err error) {
		combo := sortedUniqueCopy(rawCombo)
		key := comboKey(combo)
		if existing, ok := comboToName[key]; ok {
			return existing, false, nil
		}

		name, err = firstUnusedLetter(states)
		if err != nil {
			return 0, false, err
		}
		states = append(states, name)
		comboToName[key] = name
		nameToCombo[name] = combo
		if intersectsAny(combo, n.Final) {
			final = append(final, name)
		}
		return name, true, nil
	}

	var queue [][]grammar.Symbol

	for _, k := range n.Trans.SortedKeys() {
		dest, _ := n.Trans.Get(k)
		if len(dest) <= 1 {
			table.Insert(k, append([]grammar.Symbol(nil), dest...))
			continue
		}

		name, fresh, err := nameFor(dest)
		if err != nil {
			return nil, fmt.Errorf("subset construction: %w", err)
		}
		table.Insert(k, []grammar.Symbol{name})
		if fresh {
			queue = append(queue, sortedUniqueCopy(dest))
		}
	}

	for len(queue) > 0 {
		combo := queue[0]
		queue = queue[1:]

		name, ok := comboToName[comboKey(combo)]
		if !ok {
			// Every combo that reaches the queue was enqueued by nameFor,
			// which always records it first.
			continue
		}

		for _, input := range n.Inputs {
			var dest []grammar.Symbol
			for _, sub := range combo {
				subStates := []grammar.Symbol{sub}
				if expanded, ok := nameToCombo[sub]; ok {
					subStates = expanded
				}
				for _, s := range subStates {
					if d, ok := n.Trans.Get(Key{State: s, Input: input}); ok {
						dest = append(dest, d...)
					}
				}
			}

			dest = sortedUniqueCopy(dest)
			if len(dest) == 0 {
				continue
			}
			if len(dest) == 1 {
				table.Insert(Key{State: name, Input: input}, dest)
				continue
			}

			destName, fresh, err := nameFor(dest)
			if err != nil {
				return nil, fmt.Errorf("subset construction: %w", err)
			}
			table.Insert(Key{State: name, Input: input}, []grammar.Symbol{destName})
			if fresh {
				queue = append(queue, dest)
			}
		}
	}

	return &DFA{
		States:      states,
		Inputs:      append([]grammar.Symbol(nil), n.Inputs...),
		Start:       append([]grammar.Symbol(nil), n.Start...),
		Final:       sortedUniqueCopy(final),
		Trans:       table,
		ComboToName: comboToName,
		NameToCombo: nameToCombo,
	}, nil
}

// String renders the automaton as "M = { {Q}, {T}, F, {H}, {Z} }"; the
// transition function is displayed separately via Trans.String(), not
// inlined here.
func (n *NFA) String() string {
	return fmt.Sprintf("M = { {%s}, {%s}, F, {%s}, {%s} }",
		symbolsJoined(n.States), symbolsJoined(n.Inputs), symbolsJoined(n.Start), symbolsJoined(n.Final))
}

// Pretty renders String() word-wrapped at width.
func (n *NFA) Pretty(width int) string {
	return rosed.Edit(n.String()).Wrap(width).String()
}
