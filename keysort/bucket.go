package keysort

import "sort"

// BucketSort returns a new ascending slice. It scatters records into one
// bucket per input record, each bucket covering an equal slice of the
// key range, sorts every bucket with a stable comparison sort, and
// concatenates the buckets in order. Appending preserves encounter order
// and the intra-bucket sort is stable, so the whole sort is stable.
// Near-linear for roughly uniform keys; under heavy skew most records
// collide into one bucket and the cost degenerates toward the
// intra-bucket sort. The input slice is left untouched.
func BucketSort(recs []Record) []Record {
	if len(recs) == 0 {
		return recs
	}

	minKey, maxKey := KeyRange(recs)
	n := len(recs)
	span := int64(maxKey) - int64(minKey) + 1

	buckets := make([][]Record, n)
	for _, r := range recs {
		idx := int((int64(r.Key) - int64(minKey)) * int64(n) / span)
		// Guard against rounding overreach for the maximum key.
		if idx >= n {
			idx = n - 1
		}
		buckets[idx] = append(buckets[idx], r)
	}

	out := make([]Record, 0, n)
	for _, b := range buckets {
		sort.SliceStable(b, func(i, j int) bool { return b[i].Key < b[j].Key })
		out = append(out, b...)
	}

	return out
}
