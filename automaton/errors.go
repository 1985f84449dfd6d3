package automaton

import "fmt"

// Sentinel errors returned by this package's constructors and mutators.
// Never panicked; always wrapped with context, via %w or terrors.Wrap.
var (
	// ErrInvalidGrammarType is returned when a grammar of the wrong Chomsky
	// type is handed to a function that requires a specific one (NFA
	// construction requires grammar.RegularRight).
	ErrInvalidGrammarType = fmt.Errorf("invalid grammar type for this operation")

	// ErrNameCapacityExceeded is the fatal condition raised when state-name
	// synthesis exhausts the 'A'..'Z' name universe this toolkit hard-caps
	// itself to. There is no silent alphabet-widening fallback.
	ErrNameCapacityExceeded = fmt.Errorf("exhausted the A-Z state name universe")
)
