// Package resolve maps statement free text to a canonical counter-party
// through a three-stage cascade: staff name-part match, alias-index match,
// then fuzzy full-name match. Earlier stages always win.
package resolve

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/ledgerline/dtb2iif/internal/alias"
	"github.com/ledgerline/dtb2iif/internal/model"
	"github.com/ledgerline/dtb2iif/internal/normalize"
)

// FallbackPayee is used when no stage produces a counter-party name.
const FallbackPayee = "General Supplier"

// FallbackMemo is used when the details carry no narrative.
const FallbackMemo = "DTB Transaction"

// Resolver resolves transaction details against static rosters. Staff matches
// beat vendor matches unconditionally so reimbursements are never misfiled as
// vendor payments, even when a name token collides with a vendor token.
type Resolver struct {
	vendors    []string
	normalized []string          // StripStopwords(vendor), aligned with vendors
	staff      map[string]string // normalized name part → full name
	index      *alias.Index
	threshold  int
}

// New builds a Resolver over static rosters. threshold is the fuzzy
// acceptance score in [0,100].
func New(vendors, staff []string, index *alias.Index, threshold int) *Resolver {
	r := &Resolver{
		vendors:    vendors,
		normalized: make([]string, len(vendors)),
		staff:      make(map[string]string),
		index:      index,
		threshold:  threshold,
	}
	for i, v := range vendors {
		r.normalized[i] = normalize.StripStopwords(v)
	}
	for _, s := range staff {
		for _, part := range normalize.Tokenize(s) {
			r.staff[part] = s
		}
	}
	return r
}

// Resolve maps raw transaction details to a payee and a cleaned memo. The
// cascade runs over the full details first and, only if that yields nothing,
// over the payee candidate field alone.
func (r *Resolver) Resolve(details string) model.ResolvedIdentity {
	if strings.TrimSpace(details) == "" {
		return model.ResolvedIdentity{Payee: FallbackPayee, Memo: FallbackMemo}
	}

	payeeField, memoField := detailFields(details)
	memo := cleanMemo(memoField)

	if name, ok := r.matchName(details); ok {
		return model.ResolvedIdentity{Payee: name, Memo: memo}
	}
	if name, ok := r.matchName(payeeField); ok {
		return model.ResolvedIdentity{Payee: name, Memo: memo}
	}

	if payeeField == "" {
		payeeField = FallbackPayee
	}
	return model.ResolvedIdentity{Payee: payeeField, Memo: memo}
}

// matchName runs the staff → alias → fuzzy cascade over one piece of text.
func (r *Resolver) matchName(text string) (string, bool) {
	tokens := normalize.Tokenize(text)
	if len(tokens) == 0 {
		return "", false
	}

	for _, tok := range tokens {
		if full, ok := r.staff[tok]; ok {
			return full, true
		}
	}

	// Alias hits are checked in first-occurrence order of the tokenized
	// text, so details touching two vendors resolve deterministically.
	for _, tok := range tokens {
		if vendor, ok := r.index.Lookup(tok); ok {
			return vendor, true
		}
	}

	return r.fuzzyMatch(text)
}

// fuzzyMatch scores the stopword-stripped text against every roster vendor
// and accepts the best score when it reaches the threshold. Ties go to the
// first maximal vendor in roster order.
func (r *Resolver) fuzzyMatch(text string) (string, bool) {
	base := normalize.StripStopwords(text)
	if base == "" {
		return "", false
	}

	best, bestScore := "", -1
	for i, norm := range r.normalized {
		if norm == "" {
			continue
		}
		if score := fuzzy.TokenSetRatio(base, norm); score > bestScore {
			best, bestScore = r.vendors[i], score
		}
	}
	if best != "" && bestScore >= r.threshold {
		return best, true
	}
	return "", false
}

// cleanMemo strips characters that would corrupt the destination format and
// falls back to a fixed phrase when nothing remains.
func cleanMemo(memo string) string {
	memo = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '\n', '\r':
			return -1
		}
		return r
	}, memo)
	memo = strings.TrimSpace(memo)
	if memo == "" {
		return FallbackMemo
	}
	return memo
}
