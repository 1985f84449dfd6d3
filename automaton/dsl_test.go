package automaton

import (
	"testing"

	"github.com/autriz/taifya/grammar"
	"github.com/stretchr/testify/assert"
)

func TestParseTransitions(t *testing.T) {
	// setup
	assert := assert.New(t)
	src := "A,a -> B; A,b -> C, B; B,a -> B"

	// execute
	table, err := ParseTransitions(src)

	// assert
	assert.NoError(err)
	dest, ok := table.Get(Key{State: 'A', Input: 'a'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'B'}, dest)

	dest, ok = table.Get(Key{State: 'A', Input: 'b'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'B', 'C'}, dest, "multi-destination lists are sorted on insert")

	dest, ok = table.Get(Key{State: 'B', Input: 'a'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'B'}, dest)
}

func TestParseTransitions_acceptsUnicodeArrow(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	table, err := ParseTransitions("A,a → B")

	// assert
	assert.NoError(err)
	dest, ok := table.Get(Key{State: 'A', Input: 'a'})
	assert.True(ok)
	assert.Equal([]grammar.Symbol{'B'}, dest)
}

func TestParseTransitions_skipsBlankStatements(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	table, err := ParseTransitions("A,a -> B;;  ;")

	// assert
	assert.NoError(err)
	assert.Equal(1, table.Len())
}

func TestParseTransitions_rejectsMissingArrow(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	_, err := ParseTransitions("A,a B")

	// assert
	assert.Error(err)
}

func TestParseTransitions_rejectsEmptyDestinationList(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	_, err := ParseTransitions("A,a -> ")

	// assert
	assert.Error(err)
}

func TestMustParseTransitions_panicsOnInvalidSource(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute + assert
	assert.Panics(func() {
		MustParseTransitions("garbage")
	})
}
