package keysort

// RadixSortLSD returns a new ascending slice, sorting by decimal digits
// from the least significant upwards with one stable counting pass per
// digit. Each pass is stable, so their composition is stable overall.
// Negative keys are shifted up by -minKey before the passes and shifted
// back afterwards. Costs O(d*(n+10)) where d is the digit count of the
// largest shifted key, so very large keys hurt even for small n. The
// input slice is left untouched.
func RadixSortLSD(recs []Record) []Record {
	if len(recs) == 0 {
		return recs
	}

	// The shifted keys must themselves fit an int: maxKey+shift equals
	// span-1, so the same span guard as the range-indexed sorts applies.
	minKey, span := boundedSpan(recs)
	shift := 0
	if minKey < 0 {
		shift = -minKey
	}
	maxShifted := minKey + span - 1 + shift

	cur := make([]Record, len(recs))
	for i, r := range recs {
		cur[i] = Record{Key: r.Key + shift, ID: r.ID}
	}

	buf := make([]Record, len(cur))
	for exp := 1; maxShifted/exp > 0; exp *= 10 {
		var counts [10]int
		for _, r := range cur {
			counts[(r.Key/exp)%10]++
		}
		for d := 1; d < 10; d++ {
			counts[d] += counts[d-1]
		}
		for i := len(cur) - 1; i >= 0; i-- {
			d := (cur[i].Key / exp) % 10
			counts[d]--
			buf[counts[d]] = cur[i]
		}
		cur, buf = buf, cur
	}

	if shift > 0 {
		for i := range cur {
			cur[i].Key -= shift
		}
	}

	return cur
}
