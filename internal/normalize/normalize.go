// Package normalize canonicalizes statement free text into comparable token
// sequences.
package normalize

import (
	"strings"
	"unicode"
)

// stopwords are generic corporate suffixes that carry no identity signal.
var stopwords = map[string]struct{}{
	"ltd":          {},
	"limited":      {},
	"company":      {},
	"kenya":        {},
	"plc":          {},
	"group":        {},
	"east":         {},
	"africa":       {},
	"distributors": {},
	"distributor":  {},
	"trading":      {},
	"suppliers":    {},
	"supplier":     {},
}

// Normalize lower-cases text, collapses every run of non-alphanumeric
// characters to a single space, and trims. It never fails.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pending := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}

// Tokenize splits Normalize(text) on whitespace and drops stopword tokens,
// preserving order.
func Tokenize(text string) []string {
	var tokens []string
	for _, f := range strings.Fields(Normalize(text)) {
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// StripStopwords returns the tokenized text rejoined with single spaces. This
// is the normalized basis for fuzzy comparison.
func StripStopwords(text string) string {
	return strings.Join(Tokenize(text), " ")
}
