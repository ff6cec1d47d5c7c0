package keysort

// CountingSortStable returns a new slice holding the records of recs in
// ascending key order. It builds a frequency histogram indexed by
// key-minKey, converts it to a prefix sum, then scans the input back to
// front, placing each record at the highest free slot of its key's
// bucket. Earlier equal-key records therefore land in lower slots, which
// preserves their input order. Negative keys work through the minKey
// offset. The input slice is left untouched.
func CountingSortStable(recs []Record) []Record {
	if len(recs) == 0 {
		return recs
	}

	minKey, span := boundedSpan(recs)
	counts := make([]int, span)
	out := make([]Record, len(recs))

	for _, r := range recs {
		counts[r.Key-minKey]++
	}
	for i := 1; i < span; i++ {
		counts[i] += counts[i-1]
	}
	for i := len(recs) - 1; i >= 0; i-- {
		slot := recs[i].Key - minKey
		counts[slot]--
		out[counts[slot]] = recs[i]
	}

	return out
}

// CountingSortUnstable redistributes keys across the existing positions:
// after the call position i holds the i-th smallest key but keeps
// whatever ID was stored there before. The key/ID pairing of the input
// is deliberately severed, making this the negative control for the
// stability verifier. It rewrites recs in place and returns the same
// slice.
func CountingSortUnstable(recs []Record) []Record {
	if len(recs) == 0 {
		return recs
	}

	minKey, span := boundedSpan(recs)
	counts := make([]int, span)

	for _, r := range recs {
		counts[r.Key-minKey]++
	}

	// Only the key field moves; the ID at each position stays put.
	pos := 0
	for v := 0; v < span; v++ {
		for counts[v] > 0 {
			recs[pos].Key = v + minKey
			counts[v]--
			pos++
		}
	}

	return recs
}
