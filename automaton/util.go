package automaton

import (
	"sort"
	"strings"

	"github.com/autriz/taifya/grammar"
)

func containsSymbol(list []grammar.Symbol, sym grammar.Symbol) bool {
	for _, s := range list {
		if s == sym {
			return true
		}
	}
	return false
}

func intersectsAny(a, b []grammar.Symbol) bool {
	for _, s := range a {
		if containsSymbol(b, s) {
			return true
		}
	}
	return false
}

// sortedUniqueCopy returns a sorted, deduplicated copy of syms, leaving syms
// itself untouched.
func sortedUniqueCopy(syms []grammar.Symbol) []grammar.Symbol {
	out := append([]grammar.Symbol(nil), syms...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	deduped := out[:0]
	var last grammar.Symbol
	haveLast := false
	for _, s := range out {
		if haveLast && s == last {
			continue
		}
		deduped = append(deduped, s)
		last = s
		haveLast = true
	}
	return deduped
}

// comboKey renders a combo (assumed already sorted/deduped) as a map key,
// since Go slices cannot be used as map keys directly.
func comboKey(combo []grammar.Symbol) string {
	var sb strings.Builder
	for _, s := range combo {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

// firstUnusedLetter scans 'A'..'Z' and returns the first letter not present
// in used. Returns ErrNameCapacityExceeded if all 26 are taken.
func firstUnusedLetter(used []grammar.Symbol) (grammar.Symbol, error) {
	for c := 'A'; c <= 'Z'; c++ {
		sym := grammar.Symbol(c)
		if !containsSymbol(used, sym) {
			return sym, nil
		}
	}
	return 0, ErrNameCapacityExceeded
}

func symbolsJoined(syms []grammar.Symbol) string {
	strs := make([]string, len(syms))
	for i, s := range syms {
		strs[i] = string(rune(s))
	}
	return strings.Join(strs, ", ")
}
