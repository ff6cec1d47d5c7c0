package keysort

// PigeonholeSort returns a new ascending slice. It allocates one hole
// per representable key value, appends each record to its key's hole,
// and concatenates the holes in key order. Appending preserves encounter
// order, so the result is stable. Memory is O(span) regardless of input
// length; callers bound the key span before invoking. The input slice is
// left untouched.
func PigeonholeSort(recs []Record) []Record {
	if len(recs) == 0 {
		return recs
	}

	minKey, span := boundedSpan(recs)
	holes := make([][]Record, span)
	for _, r := range recs {
		holes[r.Key-minKey] = append(holes[r.Key-minKey], r)
	}

	out := make([]Record, 0, len(recs))
	for _, h := range holes {
		out = append(out, h...)
	}

	return out
}
