// Package taifya ties the grammar and automaton packages into the small
// end-to-end pipeline the toolkit exists to run: classify a grammar, build
// its automaton, and minimize it.
//
// It is named for the system this toolkit reimplements a piece of —
// formal-language and automata theory, "теория формальных языков и
// автоматов" in the source material this package's worked examples are
// drawn from.
package taifya

import (
	"fmt"

	"github.com/autriz/taifya/automaton"
	"github.com/autriz/taifya/grammar"
)

// Compile runs the full pipeline spec scenarios exercise end to end:
// right-linear-grammar → NFA (automaton.NewFromGrammar) → DFA (NFA.ToDFA) →
// minimized DFA (DFA.Minify). g must already be classified
// grammar.RegularRight; any other Kind is rejected the same way
// automaton.NewFromGrammar rejects it.
func Compile(g grammar.Grammar) (*automaton.DFA, error) {
	n, err := automaton.NewFromGrammar(g)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	d, err := n.ToDFA()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	if err := d.Minify(); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	return d, nil
}
