// Package alias builds the token → vendor lookup used by the identity
// resolver.
package alias

import (
	"sort"

	"github.com/ledgerline/dtb2iif/internal/normalize"
)

// Override maps a single token to a vendor unconditionally, taking precedence
// over automatic derivation. Overrides cover brand names, abbreviations, and
// informal spellings that are ambiguous or absent in the roster text.
type Override struct {
	Token  string `yaml:"token"`
	Vendor string `yaml:"vendor"`
}

// Index is an immutable token → canonical vendor mapping. Every key maps to
// exactly one vendor. Safe for unsynchronized concurrent reads once built.
type Index struct {
	byToken    map[string]string
	overridden map[string]bool
}

// Build derives the index from the vendor roster: a token maps to a vendor
// only when exactly one roster entry contains it; tokens shared by two or
// more vendors are discarded. Overrides are applied afterwards in order,
// later entries winning.
func Build(vendors []string, overrides []Override) *Index {
	owners := make(map[string]map[string]struct{})
	for _, v := range vendors {
		for _, tok := range normalize.Tokenize(v) {
			if owners[tok] == nil {
				owners[tok] = make(map[string]struct{})
			}
			owners[tok][v] = struct{}{}
		}
	}

	byToken := make(map[string]string)
	for tok, vs := range owners {
		if len(vs) != 1 {
			continue
		}
		for v := range vs {
			byToken[tok] = v
		}
	}

	overridden := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		tok := normalize.Normalize(o.Token)
		if tok == "" || o.Vendor == "" {
			continue
		}
		byToken[tok] = o.Vendor
		overridden[tok] = true
	}

	return &Index{byToken: byToken, overridden: overridden}
}

// Lookup returns the vendor for a normalized token.
func (ix *Index) Lookup(token string) (string, bool) {
	v, ok := ix.byToken[token]
	return v, ok
}

// Overridden reports whether a token came from the manual override table.
func (ix *Index) Overridden(token string) bool {
	return ix.overridden[token]
}

// Len returns the number of indexed tokens.
func (ix *Index) Len() int {
	return len(ix.byToken)
}

// Tokens returns all indexed tokens in sorted order.
func (ix *Index) Tokens() []string {
	toks := make([]string, 0, len(ix.byToken))
	for t := range ix.byToken {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	return toks
}
