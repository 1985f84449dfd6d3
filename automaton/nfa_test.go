package automaton

import (
	"testing"

	"github.com/autriz/taifya/grammar"
	"github.com/stretchr/testify/assert"
)

func rightRegularTestGrammar(t *testing.T) grammar.Grammar {
	t.Helper()
	g := grammar.MustParse(`
		start: S
		S -> aB | aA
		A -> aA | b
		B -> bB | a
	`)
	return g
}

func TestNewFromGrammar_rejectsNonRegularRight(t *testing.T) {
	// setup
	assert := assert.New(t)
	g := grammar.MustParse(`
		start: S
		S -> aSb | ab
	`)

	// execute
	_, err := NewFromGrammar(g)

	// assert
	assert.ErrorIs(err, ErrInvalidGrammarType)
}

func TestNewFromGrammar(t *testing.T) {
	// setup
	assert := assert.New(t)
	g := rightRegularTestGrammar(t)

	// execute
	n, err := NewFromGrammar(g)

	// assert
	assert.NoError(err)
	assert.Equal([]grammar.Symbol{'S', 'A', 'B', 'N'}, n.States, "a synthesized final non-terminal N is appended")
	assert.Equal([]grammar.Symbol{'S'}, n.Start)
	assert.Equal([]grammar.Symbol{'N'}, n.Final)

	dest, ok := n.Trans.Get(Key{State: 'S', Input: 'a'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'A', 'B'}, dest, "both variants of S's rule contribute a transition on 'a'")

	dest, ok = n.Trans.Get(Key{State: 'A', Input: 'b'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'N'}, dest, "the single-symbol variant b is extended to reach the accepting state")

	dest, ok = n.Trans.Get(Key{State: 'B', Input: 'a'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'N'}, dest)
}

func TestNewFromGrammar_closingLetterAvoidsCollision(t *testing.T) {
	// setup
	assert := assert.New(t)
	terminals := []grammar.Symbol{'a'}
	nonTerminals := []grammar.Symbol{'N', 'M'}
	rules := []grammar.Rule{
		{Input: []grammar.Symbol{'N'}, Variants: [][]grammar.Symbol{{'a', 'M'}}},
		{Input: []grammar.Symbol{'M'}, Variants: [][]grammar.Symbol{{'a'}}},
	}
	g, err := grammar.New(terminals, nonTerminals, 'N', rules)
	assert.NoError(err)
	assert.Equal(grammar.RegularRight, g.Type)

	// execute
	n, err := NewFromGrammar(g)

	// assert
	assert.NoError(err)
	assert.Equal([]grammar.Symbol{'N', 'M', 'A'}, n.States, "'N' is already a non-terminal, so the closing state falls back to the first unused letter")
	assert.Equal([]grammar.Symbol{'A'}, n.Final)
}

func TestNewFromGrammar_epsilonAtStartAccepts(t *testing.T) {
	// setup
	assert := assert.New(t)
	terminals := []grammar.Symbol{'a'}
	nonTerminals := []grammar.Symbol{'S'}
	rules := []grammar.Rule{
		{Input: []grammar.Symbol{'S'}, Variants: [][]grammar.Symbol{{'a', 'S'}, {grammar.Epsilon}}},
	}
	g, err := grammar.New(terminals, nonTerminals, 'S', rules)
	assert.NoError(err)

	// execute
	n, err := NewFromGrammar(g)

	// assert
	assert.NoError(err)
	assert.Contains(n.Final, grammar.Symbol('S'), "an epsilon variant on the start symbol makes it accepting directly")
}

func TestNFA_ToDFA(t *testing.T) {
	// setup
	assert := assert.New(t)
	g := rightRegularTestGrammar(t)
	n, err := NewFromGrammar(g)
	assert.NoError(err)

	// execute
	d, err := n.ToDFA()

	// assert
	assert.NoError(err)
	assert.Equal([]grammar.Symbol{'S', 'A', 'B', 'N', 'C', 'D', 'E'}, d.States)
	assert.Equal([]grammar.Symbol{'D', 'E', 'N'}, d.Final)

	dest, ok := d.Trans.Get(Key{State: 'S', Input: 'a'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'C'}, dest, "the non-deterministic choice on (S, a) is collapsed to a single composite state")

	combo, ok := d.NameToCombo['C']
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'A', 'B'}, combo)
}

func TestNFA_ToDFA_isDeterministic(t *testing.T) {
	// setup
	assert := assert.New(t)
	g := rightRegularTestGrammar(t)
	n, err := NewFromGrammar(g)
	assert.NoError(err)

	// execute
	d, err := n.ToDFA()
	assert.NoError(err)

	// assert: every (state, input) pair has at most one destination
	for _, k := range d.Trans.SortedKeys() {
		dest, _ := d.Trans.Get(k)
		assert.Len(dest, 1, "DFA transitions must be single-valued")
	}
}
