package resolve

import "strings"

// maxPayeeLen caps the payee fallback taken from unstructured details.
const maxPayeeLen = 30

// detailFields splits pipe-delimited transaction details into a payee
// candidate and a memo candidate. DTB details carry a variable number of
// |-separated fields; field 1 names the counter-party and field 3 the
// narrative when present.
func detailFields(details string) (payee, memo string) {
	parts := strings.Split(details, "|")
	switch {
	case len(parts) >= 4:
		return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[3])
	case len(parts) >= 2:
		return strings.TrimSpace(parts[1]), ""
	default:
		s := strings.TrimSpace(details)
		if len(s) > maxPayeeLen {
			s = strings.TrimSpace(s[:maxPayeeLen])
		}
		return s, ""
	}
}
