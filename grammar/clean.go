package grammar

// RemoveNonProductiveNonTerminals drops every non-terminal that cannot
// derive a terminal string (is not in P*, the productive set), along with
// every rule and variant that mentions one. It is a no-op unless the grammar
// is classified exactly ContextFree — regular grammars and anything looser
// are left untouched, matching original_source's own gate.
func (g *Grammar) RemoveNonProductiveNonTerminals() {
	if g.Type != ContextFree {
		return
	}

	productive := g.productiveNonTerminals()

	var rules []Rule
	for _, r := range g.Rules {
		if !containsSymbol(productive, r.Input[0]) {
			continue
		}

		var variants [][]Symbol
		for _, variant := range r.Variants {
			if allSymbolsIn(variant, g.Terminals, productive) {
				variants = append(variants, variant)
			}
		}

		rules = append(rules, Rule{Input: []Symbol{r.Input[0]}, Variants: variants})
	}

	g.NonTerminals = productive
	g.Rules = rules
}

// RemoveUnreachableSymbols drops every terminal and non-terminal not
// reachable from Start by a fixed-point walk of the rules, and filters P
// correspondingly: a rule survives iff its head is reachable, and a variant
// survives iff every symbol in it is a terminal, ε, or a reachable
// non-terminal. Runs regardless of Type, unlike
// RemoveNonProductiveNonTerminals.
func (g *Grammar) RemoveUnreachableSymbols() {
	nonTerminals := []Symbol{g.Start}
	var terminals []Symbol

	for {
		nextNT := append([]Symbol(nil), nonTerminals...)
		nextT := append([]Symbol(nil), terminals...)

		for _, r := range g.Rules {
			if !containsSymbol(nextNT, r.Input[0]) {
				continue
			}
			for _, variant := range r.Variants {
				for _, ch := range variant {
					if containsSymbol(g.Terminals, ch) && !containsSymbol(nextT, ch) {
						nextT = append(nextT, ch)
					}
					if containsSymbol(g.NonTerminals, ch) && !containsSymbol(nextNT, ch) {
						nextNT = append(nextNT, ch)
					}
				}
			}
		}

		if equalSymbolSets(nextNT, nonTerminals) && equalSymbolSets(nextT, terminals) {
			break
		}
		nonTerminals, terminals = nextNT, nextT
	}

	var rules []Rule
	for _, r := range g.Rules {
		if !containsSymbol(nonTerminals, r.Input[0]) {
			continue
		}

		var variants [][]Symbol
		for _, variant := range r.Variants {
			if allSymbolsIn(variant, terminals, nonTerminals) {
				variants = append(variants, variant)
			}
		}

		rules = append(rules, Rule{Input: []Symbol{r.Input[0]}, Variants: variants})
	}

	g.Terminals = terminals
	g.NonTerminals = nonTerminals
	g.Rules = rules
}

// RemoveEmptyRules is declared but intentionally unimplemented.
//
// original_source's own remove_empty_rules is a literal empty function body;
// nothing in this toolkit's worked examples exercises ε-production
// substitution, and implementing it would mean inventing semantics (how to
// fold a removed ε-variant back into every rule that references its
// non-terminal) with no ground truth to check against. Left as a no-op
// rather than guessed at.
func (g *Grammar) RemoveEmptyRules() {}
