// Package grammar implements formal grammars: typed productions, the
// Chomsky-hierarchy classifier, and the context-free cleaning operations
// (productive-set pruning and unreachable-symbol pruning) described for the
// regular-grammar/finite-automaton toolkit this module belongs to.
//
// Grammars are value types; equality is structural. A Grammar's Type is
// computed once by the constructor and is never set directly by a caller.
package grammar

import (
	"fmt"
	"strings"

	"github.com/autriz/taifya/internal/terrors"
	"github.com/dekarrin/rosed"
)

// Symbol is a single character drawn from the grammar's alphabet: either a
// terminal, a non-terminal, the distinguished empty-string marker Epsilon, or
// one of the reserved arithmetic operators.
type Symbol rune

// Epsilon denotes the empty string. It belongs to neither Vᴛ nor Vɴ.
const Epsilon Symbol = 'ε'

// operators is the small set of reserved symbols a rule variant may contain
// in addition to terminals, non-terminals, and Epsilon.
var operators = map[Symbol]bool{
	'+': true,
	'-': true,
	'*': true,
	'/': true,
}

// IsOperator reports whether sym is one of the reserved arithmetic operators.
func IsOperator(sym Symbol) bool {
	return operators[sym]
}

// Kind classifies a Grammar by Chomsky type, refined with the regular
// grammar's alignment when applicable.
type Kind int

const (
	// Type0 is the unrestricted grammar type: every rule satisfies only the
	// basic symbol-membership constraint.
	Type0 Kind = iota

	// ContextDependent grammars have |α| ≤ |β| for every rule α → β.
	ContextDependent

	// ContextFree grammars are additionally restricted to single-non-terminal
	// rule heads.
	ContextFree

	// RegularLeft grammars are context-free grammars whose non-terminal-
	// bearing variants are uniformly left-aligned (N·a* shape).
	RegularLeft

	// RegularRight grammars are context-free grammars whose non-terminal-
	// bearing variants are uniformly right-aligned (a*·N shape).
	RegularRight
)

// String renders the Russian-language classifier strings that are part of
// this toolkit's external display contract.
func (k Kind) String() string {
	switch k {
	case Type0:
		return "Тип 0"
	case ContextDependent:
		return "Тип 1 (КЗ-грамматика)"
	case ContextFree:
		return "Тип 2 (КС-грамматика)"
	case RegularLeft:
		return "Тип 3 (Р-грамматика, выровненная влево)"
	case RegularRight:
		return "Тип 3 (Р-грамматика, выровненная вправо)"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Rule is a production "input -> { variant1, variant2, ... }". Input is a
// non-empty sequence of symbols; each variant is a non-empty sequence over
// terminals, non-terminals, Epsilon, or an operator.
type Rule struct {
	Input    []Symbol
	Variants [][]Symbol
}

// String renders the rule as "input → v1 | v2 | ...".
func (r Rule) String() string {
	variants := make([]string, len(r.Variants))
	for i, v := range r.Variants {
		variants[i] = symbolsString(v)
	}
	return fmt.Sprintf("%s → %s", symbolsString(r.Input), strings.Join(variants, " | "))
}

// Grammar is the tuple (Vᴛ, Vɴ, P, S, τ). Vᴛ and Vɴ are disjoint, Start
// belongs to NonTerminals, and Type is derived from Rules by the validator;
// it is never set directly.
type Grammar struct {
	Terminals    []Symbol
	NonTerminals []Symbol
	Rules        []Rule
	Start        Symbol
	Type         Kind
}

// Sentinel construction errors, returned (never panicked) by New.
var (
	ErrOverlappingSymbols               = fmt.Errorf("terminal and non-terminal alphabets overlap")
	ErrMissingStartingNonTerminalSymbol = fmt.Errorf("start symbol is not in the non-terminal alphabet")
	ErrInvalidRule                      = fmt.Errorf("rule contains a symbol outside the declared alphabet")
)

// New validates and constructs a Grammar, classifying it by Chomsky type in
// the process. It rejects overlapping alphabets, a missing start symbol, and
// malformed rules, returning no partial state on failure.
func New(terminals, nonTerminals []Symbol, start Symbol, rules []Rule) (Grammar, error) {
	for _, t := range terminals {
		if containsSymbol(nonTerminals, t) {
			return Grammar{}, terrors.Wrap(ErrOverlappingSymbols,
				fmt.Sprintf("%q is declared as both a terminal and a non-terminal", string(t)), "")
		}
	}

	if !containsSymbol(nonTerminals, start) {
		return Grammar{}, terrors.Wrap(ErrMissingStartingNonTerminalSymbol,
			fmt.Sprintf("start symbol %q is not one of the declared non-terminals", string(start)), "")
	}

	for _, r := range rules {
		if len(r.Input) == 0 {
			return Grammar{}, terrors.Wrap(ErrInvalidRule, "a rule has an empty head", "")
		}
		for _, sym := range r.Input {
			if !containsSymbol(terminals, sym) && !containsSymbol(nonTerminals, sym) {
				return Grammar{}, terrors.Wrap(ErrInvalidRule,
					fmt.Sprintf("rule %q: head symbol %q is not in the declared alphabet", r.String(), string(sym)), "")
			}
		}
		for _, variant := range r.Variants {
			if len(variant) == 0 {
				return Grammar{}, terrors.Wrap(ErrInvalidRule,
					fmt.Sprintf("rule %q: has an empty variant", r.String()), "")
			}
			for _, sym := range variant {
				if !isValidVariantSymbol(terminals, nonTerminals, sym) {
					return Grammar{}, terrors.Wrap(ErrInvalidRule,
						fmt.Sprintf("rule %q: variant symbol %q is not in the declared alphabet", r.String(), string(sym)), "")
				}
			}
		}
	}

	return Grammar{
		Terminals:    terminals,
		NonTerminals: nonTerminals,
		Rules:        rules,
		Start:        start,
		Type:         Classify(terminals, nonTerminals, rules),
	}, nil
}

func isValidVariantSymbol(terminals, nonTerminals []Symbol, sym Symbol) bool {
	return containsSymbol(terminals, sym) || containsSymbol(nonTerminals, sym) || sym == Epsilon || IsOperator(sym)
}

// Classify computes the Chomsky-hierarchy Kind of a grammar from its raw
// components. It is deterministic: permuting P (while preserving rule
// identity) does not change the result (G2).
//
// The containment hierarchy is strict: context-dependent requires |α| ≤ |β|
// for every rule; context-free additionally requires |α| = 1; regular
// additionally requires every variant to be a single terminal, ε, or
// uniformly left- or right-aligned with exactly one non-terminal at the
// aligned end. Failure of an earlier condition classifies as the looser
// class; failing the context-dependent condition yields Type0.
func Classify(terminals, nonTerminals []Symbol, rules []Rule) Kind {
	for _, r := range rules {
		for _, variant := range r.Variants {
			if len(r.Input) > len(variant) {
				return Type0
			}
		}
	}

	for _, r := range rules {
		if len(r.Input) != 1 {
			return ContextDependent
		}
	}

	alignment := alignNone
	for _, r := range rules {
		for _, variant := range r.Variants {
			left := len(variant) > 0 && containsSymbol(nonTerminals, variant[0])
			right := len(variant) > 0 && containsSymbol(nonTerminals, variant[len(variant)-1])
			terminated := len(variant) == 1 && containsSymbol(terminals, variant[0])
			empty := len(variant) == 1 && variant[0] == Epsilon

			switch {
			case left && !right:
				if alignment == alignRight {
					return ContextFree
				}
				alignment = alignLeft
			case right && !left:
				if alignment == alignLeft {
					return ContextFree
				}
				alignment = alignRight
			default:
				if !terminated && !empty {
					return ContextFree
				}
			}
		}
	}

	switch alignment {
	case alignLeft:
		return RegularLeft
	case alignRight:
		return RegularRight
	default:
		// No variant across the entire grammar carried a non-terminal at
		// either end (every rule is purely terminal/ε productions); there is
		// no observed alignment to disambiguate. Such a grammar is trivially
		// regular in both directions, so this implementation defaults it to
		// RegularRight, matching the alignment the NFA builder (§4.3)
		// requires.
		return RegularRight
	}
}

type regularAlignment int

const (
	alignNone regularAlignment = iota
	alignLeft
	alignRight
)

// IsLanguageNonEmpty reports whether the grammar's language is non-empty,
// i.e. whether the start symbol is productive. Only meaningful (and only
// ever true) for context-free grammars; returns false for any other Kind.
func (g Grammar) IsLanguageNonEmpty() bool {
	if g.Type != ContextFree {
		return false
	}
	return containsSymbol(g.productiveNonTerminals(), g.Start)
}

// productiveNonTerminals computes P*, the fixed point of: A is productive
// iff some rule A → β has every symbol of β in Vᴛ ∪ {ε} ∪ P*.
func (g Grammar) productiveNonTerminals() []Symbol {
	var list []Symbol

	for {
		next := append([]Symbol(nil), list...)

		for _, nt := range g.NonTerminals {
			if containsSymbol(next, nt) {
				continue
			}

			productive := false
			for _, r := range g.Rules {
				if !containsSymbol(r.Input, nt) {
					continue
				}
				for _, variant := range r.Variants {
					if allSymbolsIn(variant, g.Terminals, next) {
						productive = true
						break
					}
				}
				if productive {
					break
				}
			}

			if productive {
				next = append(next, nt)
			}
		}

		if equalSymbolSets(next, list) {
			break
		}
		list = next
	}

	return list
}

// allSymbolsIn reports whether every symbol in variant is a terminal (in
// terminals), Epsilon, or present in extra.
func allSymbolsIn(variant []Symbol, terminals, extra []Symbol) bool {
	for _, ch := range variant {
		if ch == Epsilon || containsSymbol(terminals, ch) || containsSymbol(extra, ch) {
			continue
		}
		return false
	}
	return true
}

// String renders the grammar as "G = { {Vᴛ}, {Vɴ}, {rules}, S }".
func (g Grammar) String() string {
	rules := make([]string, len(g.Rules))
	for i, r := range g.Rules {
		rules[i] = r.String()
	}
	return fmt.Sprintf("G = { {%s}, {%s}, {%s}, %s }",
		symbolsJoined(g.Terminals),
		symbolsJoined(g.NonTerminals),
		strings.Join(rules, ", "),
		string(g.Start),
	)
}

// Pretty renders String() word-wrapped at width, for display in narrow
// terminals. It never changes the data String() reports, only the layout.
func (g Grammar) Pretty(width int) string {
	return rosed.Edit(g.String()).Wrap(width).String()
}

func symbolsString(syms []Symbol) string {
	var sb strings.Builder
	for _, s := range syms {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

func symbolsJoined(syms []Symbol) string {
	strs := make([]string, len(syms))
	for i, s := range syms {
		strs[i] = string(rune(s))
	}
	return strings.Join(strs, ", ")
}

func containsSymbol(list []Symbol, sym Symbol) bool {
	for _, s := range list {
		if s == sym {
			return true
		}
	}
	return false
}

func equalSymbolSets(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for _, s := range a {
		if !containsSymbol(b, s) {
			return false
		}
	}
	return true
}
