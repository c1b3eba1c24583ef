// Package merge reconciles freshly regenerated content with previously pinned
// selections. The merge is positional by index, not id-keyed: regenerated ids
// are freshly minted, so index i of the new output replaces index i of the
// previous output. This makes a territory-count mismatch between the two
// outputs a hard error rather than something to truncate or pad over.
package merge

import (
	"fmt"

	t "territorylab/internal/types"
)

// MergeError reports a new/previous territory count mismatch.
type MergeError struct {
	NewCount      int
	PreviousCount int
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge: territory count mismatch: new=%d previous=%d", e.NewCount, e.PreviousCount)
}

// Merge builds the final output from a regeneration.
//
// Per position i:
//   - previous territory starred: the previous territory survives verbatim,
//     whole-territory pinning included; the new territory at i is discarded.
//   - otherwise: the new territory is taken, the previous id carries over, and
//     headlines merge per index, keeping previously starred headlines verbatim.
func Merge(newOut, prevOut t.FinalOutput, starred t.StarredItems) (t.FinalOutput, error) {
	if len(newOut.Territories) != len(prevOut.Territories) {
		return t.FinalOutput{}, &MergeError{
			NewCount:      len(newOut.Territories),
			PreviousCount: len(prevOut.Territories),
		}
	}

	out := t.FinalOutput{
		Territories: make([]t.Territory, len(newOut.Territories)),
		Compliance:  newOut.Compliance,
	}
	for i := range newOut.Territories {
		prev := prevOut.Territories[i]
		if starred.TerritoryStarred(prev.ID) {
			kept := prev
			kept.Starred = true
			out.Territories[i] = kept
			continue
		}

		next := newOut.Territories[i]
		next.ID = prev.ID
		next.Starred = false
		merged := make([]t.Headline, len(next.Headlines))
		for h := range next.Headlines {
			if starred.HeadlineStarred(prev.ID, h) && h < len(prev.Headlines) {
				merged[h] = prev.Headlines[h]
				merged[h].Starred = true
			} else {
				merged[h] = next.Headlines[h]
				merged[h].Starred = false
			}
		}
		next.Headlines = merged
		out.Territories[i] = next
	}
	return out, nil
}
