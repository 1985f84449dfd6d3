package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Parse reads a grammar literal in the line-oriented format this package
// accepts:
//
//	start: S
//	S -> aB | aA
//	A -> aA | b
//	B -> bB | a
//
// The "start:" directive is optional; if absent, the head of the first rule
// is the start symbol. Each rule line is "<head> -> <variant> | <variant>
// ...", where head and variants are runs of symbols with internal whitespace
// ignored (every remaining rune is one symbol — this toolkit has no
// multi-rune symbol names). Only the first rune of a head is used: it becomes
// the rule's single-symbol Input and any further head runes are discarded,
// so multi-symbol heads such as "CB" cannot be expressed. A non-terminal is
// any rune that is the first rune of some rule's head; every other rune
// appearing in a variant (besides ε and the
// reserved operators) is a terminal. Blank lines and lines starting with "#"
// are ignored.
func Parse(src string) (Grammar, error) {
	var (
		start        Symbol
		haveStart    bool
		ruleHeads    []Symbol
		ruleVariants [][][]Symbol
	)

	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "start:"); ok {
			rest = strings.TrimSpace(rest)
			if rest == "" {
				return Grammar{}, fmt.Errorf("grammar dsl: empty start directive: %w", ErrInvalidRule)
			}
			start = Symbol([]rune(rest)[0])
			haveStart = true
			continue
		}

		head, variants, err := parseRuleLine(line)
		if err != nil {
			return Grammar{}, err
		}

		if !haveStart {
			start = head[0]
			haveStart = true
		}

		ruleHeads = append(ruleHeads, head[0])
		ruleVariants = append(ruleVariants, variants)
	}

	if len(ruleHeads) == 0 {
		return Grammar{}, fmt.Errorf("grammar dsl: no rules found: %w", ErrInvalidRule)
	}

	nonTerminals := make([]Symbol, 0, len(ruleHeads))
	for _, h := range ruleHeads {
		if !containsSymbol(nonTerminals, h) {
			nonTerminals = append(nonTerminals, h)
		}
	}

	var terminals []Symbol
	for _, variants := range ruleVariants {
		for _, variant := range variants {
			for _, sym := range variant {
				if sym == Epsilon || IsOperator(sym) || containsSymbol(nonTerminals, sym) {
					continue
				}
				if !containsSymbol(terminals, sym) {
					terminals = append(terminals, sym)
				}
			}
		}
	}

	rules := make([]Rule, len(ruleHeads))
	for i, h := range ruleHeads {
		rules[i] = Rule{Input: []Symbol{h}, Variants: ruleVariants[i]}
	}

	return New(terminals, nonTerminals, start, rules)
}

// MustParse is Parse, panicking on error. Intended for tests and literal
// grammars known good at compile time, matching the teacher repo's own
// grammar.MustParse test-helper convention.
func MustParse(src string) Grammar {
	g, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return g
}

func parseRuleLine(line string) (head []Symbol, variants [][]Symbol, err error) {
	arrow := strings.Index(line, "->")
	if arrow < 0 {
		return nil, nil, fmt.Errorf("grammar dsl: rule %q missing \"->\": %w", line, ErrInvalidRule)
	}

	headStr := stripSpace(line[:arrow])
	if headStr == "" {
		return nil, nil, fmt.Errorf("grammar dsl: rule %q has empty head: %w", line, ErrInvalidRule)
	}
	head = toSymbols(headStr)

	rhs := line[arrow+2:]
	for _, part := range strings.Split(rhs, "|") {
		variantStr := stripSpace(part)
		if variantStr == "" {
			return nil, nil, fmt.Errorf("grammar dsl: rule %q has empty variant: %w", line, ErrInvalidRule)
		}
		variants = append(variants, toSymbols(variantStr))
	}

	return head, variants, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}

func toSymbols(s string) []Symbol {
	runes := []rune(s)
	syms := make([]Symbol, len(runes))
	for i, r := range runes {
		syms[i] = Symbol(r)
	}
	return syms
}

// fileFormat is the TOML shape LoadFile decodes: a start symbol and a map
// from rule-head string to its ordered list of variant strings.
type fileFormat struct {
	Start string              `toml:"start"`
	Rules map[string][]string `toml:"rules"`
}

// LoadFile loads a grammar from a TOML resource file, modeled on this
// toolkit's ambient config-loading convention of keeping domain data out of
// Go source. The file shape is:
//
//	start = "S"
//
//	[rules]
//	S = ["aB", "aA"]
//	A = ["aA", "b"]
//	B = ["bB", "a"]
//
// Rule order within the file is not preserved by TOML's map decoding; rule
// heads are sorted lexicographically by rune before the grammar is built so
// that LoadFile's output is deterministic across runs.
func LoadFile(path string) (Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grammar{}, fmt.Errorf("grammar: load %s: %w", path, err)
	}

	var ff fileFormat
	if err := toml.Unmarshal(data, &ff); err != nil {
		return Grammar{}, fmt.Errorf("grammar: parse %s: %w", path, err)
	}

	if ff.Start == "" {
		return Grammar{}, fmt.Errorf("grammar: %s: missing start symbol: %w", path, ErrInvalidRule)
	}
	start := Symbol([]rune(ff.Start)[0])

	heads := make([]string, 0, len(ff.Rules))
	for h := range ff.Rules {
		heads = append(heads, h)
	}
	sortStrings(heads)

	nonTerminals := make([]Symbol, 0, len(heads))
	for _, h := range heads {
		nonTerminals = append(nonTerminals, toSymbols(h)[0])
	}

	var terminals []Symbol
	rules := make([]Rule, 0, len(heads))
	for _, h := range heads {
		headSym := toSymbols(h)
		var variants [][]Symbol
		for _, v := range ff.Rules[h] {
			variant := toSymbols(v)
			variants = append(variants, variant)
			for _, sym := range variant {
				if sym == Epsilon || IsOperator(sym) || containsSymbol(nonTerminals, sym) {
					continue
				}
				if !containsSymbol(terminals, sym) {
					terminals = append(terminals, sym)
				}
			}
		}
		rules = append(rules, Rule{Input: headSym, Variants: variants})
	}

	return New(terminals, nonTerminals, start, rules)
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
