package classify

import (
	"errors"
	"fmt"

	"github.com/ledgerline/dtb2iif/internal/model"
)

// VerifyBalanced checks the double-entry invariant on an emitted group: the
// group is non-empty and its amounts sum to exactly zero. A violation is a
// classifier bug, not bad input.
func VerifyBalanced(g model.PostingGroup) error {
	if len(g.Postings) == 0 {
		return errors.New("empty posting group")
	}
	if sum := g.Sum(); !sum.IsZero() {
		return fmt.Errorf("posting group (docnum %q) does not balance: sum %s",
			g.Postings[0].DocNum, sum.StringFixed(2))
	}
	return nil
}
