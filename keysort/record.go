package keysort

import (
	"fmt"
	"math"
)

// Record is the sortable unit. Key orders records; ID is the record's
// position in the originally generated sequence and exists only so the
// verifier can tell whether a sort preserved the relative order of equal
// keys. ID must never be used as a tie-breaking sort key.
type Record struct {
	Key int `json:"key"`
	ID  int `json:"id"`
}

// KeyRange returns the minimum and maximum key in recs.
// recs must be non-empty; every caller short-circuits empty input
// before doing any range-dependent work.
func KeyRange(recs []Record) (minKey, maxKey int) {
	minKey, maxKey = recs[0].Key, recs[0].Key
	for _, r := range recs[1:] {
		if r.Key < minKey {
			minKey = r.Key
		}
		if r.Key > maxKey {
			maxKey = r.Key
		}
	}
	return minKey, maxKey
}

// KeySpan returns maxKey-minKey+1 as an int64 so callers can bound the
// auxiliary memory of the range-indexed sorts before invoking them.
// Returns 0 for empty input.
func KeySpan(recs []Record) int64 {
	if len(recs) == 0 {
		return 0
	}
	minKey, maxKey := KeyRange(recs)
	return int64(maxKey) - int64(minKey) + 1
}

// boundedSpan returns minKey and the key span as an int. A span that
// cannot index a slice is a caller precondition violation (callers are
// required to bound the key range first); panicking surfaces it instead
// of silently truncating.
func boundedSpan(recs []Record) (minKey, span int) {
	lo, hi := KeyRange(recs)
	s := int64(hi) - int64(lo) + 1
	if s <= 0 || s > math.MaxInt {
		panic(fmt.Sprintf("keysort: key span %d does not fit in int", s))
	}
	return lo, int(s)
}
