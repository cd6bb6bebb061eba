package model

// ResolvedIdentity is the outcome of resolving statement free text to a
// counter-party. Payee is a roster vendor, a staff member's full name, or a
// fallback label; Memo is the cleaned narrative, never containing quote or
// newline characters.
type ResolvedIdentity struct {
	Payee string
	Memo  string
}
