package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_rejectsOverlappingSymbols(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	_, err := New(
		[]Symbol{'S', 'a'},
		[]Symbol{'S'},
		'S',
		[]Rule{{Input: []Symbol{'S'}, Variants: [][]Symbol{{'a'}}}},
	)

	// assert
	assert.ErrorIs(err, ErrOverlappingSymbols)
}

func TestNew_rejectsMissingStart(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	_, err := New(
		[]Symbol{'a'},
		[]Symbol{'S'},
		'X',
		[]Rule{{Input: []Symbol{'S'}, Variants: [][]Symbol{{'a'}}}},
	)

	// assert
	assert.ErrorIs(err, ErrMissingStartingNonTerminalSymbol)
}

func TestNew_rejectsRuleWithUndeclaredSymbol(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	_, err := New(
		[]Symbol{'a'},
		[]Symbol{'S'},
		'S',
		[]Rule{{Input: []Symbol{'S'}, Variants: [][]Symbol{{'z'}}}},
	)

	// assert
	assert.ErrorIs(err, ErrInvalidRule)
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		expect Kind
	}{
		{
			name: "right-regular",
			src: `
				start: S
				S -> aB | aA
				A -> aA | b
				B -> bB | a
			`,
			expect: RegularRight,
		},
		{
			name: "left-regular",
			src: `
				start: S
				S -> Aa | Ba
				A -> Aa | b
				B -> Bb | a
			`,
			expect: RegularLeft,
		},
		{
			name: "mixed-alignment demotes to context-free",
			src: `
				start: S
				S -> Ab | aB
				A -> a
				B -> b
			`,
			expect: ContextFree,
		},
		{
			name: "context-free, non-regular shape",
			src: `
				start: S
				S -> aSb | ab
			`,
			expect: ContextFree,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			g := MustParse(tc.src)

			// execute + assert
			assert.Equal(tc.expect, g.Type)
		})
	}
}

// TestClassify_contextDependent covers a grammar whose rule heads mix
// terminals and non-terminals (e.g. "bB", "cC") — a shape the line-oriented
// DSL's head-symbols-are-non-terminals heuristic can't represent, so it is
// built directly through New with an explicit alphabet instead, as a
// classic a^n b^n c^n context-sensitive grammar.
func TestClassify_contextDependent(t *testing.T) {
	// setup
	assert := assert.New(t)
	terminals := []Symbol{'a', 'b', 'c'}
	nonTerminals := []Symbol{'S', 'B', 'C'}
	rules := []Rule{
		{Input: []Symbol{'S'}, Variants: [][]Symbol{{'a', 'S', 'B', 'C'}, {'a', 'B', 'C'}}},
		{Input: []Symbol{'C', 'B'}, Variants: [][]Symbol{{'B', 'C'}}},
		{Input: []Symbol{'b', 'B'}, Variants: [][]Symbol{{'b', 'b'}}},
		{Input: []Symbol{'b', 'C'}, Variants: [][]Symbol{{'b', 'c'}}},
		{Input: []Symbol{'c', 'C'}, Variants: [][]Symbol{{'c', 'c'}}},
	}

	// execute
	g, err := New(terminals, nonTerminals, 'S', rules)

	// assert
	assert.NoError(err)
	assert.Equal(ContextDependent, g.Type)
}

// TestClassify_type0 covers spec.md's own "AB → bBA, bCB → ε" example: a
// rule whose ε-producing variant is shorter than its (multi-symbol) head,
// violating |α| ≤ |β| and so falling outside even the context-dependent
// class. The mixed terminal/non-terminal head "bCB" is, like
// TestClassify_contextDependent's rules, not representable through the DSL's
// head-symbols-are-non-terminals heuristic, so this is built directly
// through New.
func TestClassify_type0(t *testing.T) {
	// setup
	assert := assert.New(t)
	terminals := []Symbol{'b'}
	nonTerminals := []Symbol{'A', 'B', 'C'}
	rules := []Rule{
		{Input: []Symbol{'A', 'B'}, Variants: [][]Symbol{{'b', 'B', 'A'}}},
		{Input: []Symbol{'b', 'C', 'B'}, Variants: [][]Symbol{{Epsilon}}},
	}

	// execute
	g, err := New(terminals, nonTerminals, 'A', rules)

	// assert
	assert.NoError(err)
	assert.Equal(Type0, g.Type)
}

func TestClassify_permutingRulesDoesNotChangeKind(t *testing.T) {
	// setup
	assert := assert.New(t)
	terminals := []Symbol{'a', 'b'}
	nonTerminals := []Symbol{'S', 'A'}
	forward := []Rule{
		{Input: []Symbol{'S'}, Variants: [][]Symbol{{'a', 'A'}, {'b'}}},
		{Input: []Symbol{'A'}, Variants: [][]Symbol{{'a', 'A'}, {'b'}}},
	}
	backward := []Rule{forward[1], forward[0]}

	// execute
	kindForward := Classify(terminals, nonTerminals, forward)
	kindBackward := Classify(terminals, nonTerminals, backward)

	// assert
	assert.Equal(kindForward, kindBackward)
}

func TestGrammar_String(t *testing.T) {
	// setup
	assert := assert.New(t)
	g := MustParse(`
		start: S
		S -> aB | aA
		A -> aA | b
		B -> bB | a
	`)

	// execute
	actual := g.String()

	// assert
	assert.Equal("G = { {a, b}, {S, A, B}, {S → aB | aA, A → aA | b, B → bB | a}, S }", actual)
}

func TestKind_String(t *testing.T) {
	testCases := []struct {
		kind   Kind
		expect string
	}{
		{Type0, "Тип 0"},
		{ContextDependent, "Тип 1 (КЗ-грамматика)"},
		{ContextFree, "Тип 2 (КС-грамматика)"},
		{RegularLeft, "Тип 3 (Р-грамматика, выровненная влево)"},
		{RegularRight, "Тип 3 (Р-грамматика, выровненная вправо)"},
	}

	for _, tc := range testCases {
		if got := tc.kind.String(); got != tc.expect {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.expect)
		}
	}
}

func TestErrors_wrapSentinelsForErrorsIs(t *testing.T) {
	_, err := New(nil, []Symbol{'S'}, 'X', nil)
	if !errors.Is(err, ErrMissingStartingNonTerminalSymbol) {
		t.Fatalf("expected wrapped ErrMissingStartingNonTerminalSymbol, got %v", err)
	}
}
