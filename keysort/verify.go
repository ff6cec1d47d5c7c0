package keysort

// Verify reports whether recs is in non-decreasing key order. With
// requireStable set it additionally demands strictly increasing IDs
// inside every run of equal keys, which holds exactly when a sort
// preserved the relative order of records whose IDs were assigned in
// original positional order. Empty and single-element sequences verify
// trivially. It returns only a verdict, not the failing index.
func Verify(recs []Record, requireStable bool) bool {
	for i := 1; i < len(recs); i++ {
		if recs[i].Key < recs[i-1].Key {
			return false
		}
		if requireStable && recs[i].Key == recs[i-1].Key && recs[i].ID < recs[i-1].ID {
			return false
		}
	}
	return true
}
