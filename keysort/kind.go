package keysort

import (
	"fmt"
	"strings"
)

// Kind identifies one of the five sorting algorithms. Callers select a
// Kind value instead of a raw function so the algorithm's capabilities
// (stability, mutation discipline, range sensitivity) travel with it.
type Kind int

const (
	CountingStable Kind = iota
	CountingUnstable
	RadixLSD
	Bucket
	Pigeonhole
)

// Mutation describes how a Kind treats its input sequence.
type Mutation int

const (
	// Replaces means the sort leaves its input untouched and returns a
	// newly allocated sequence.
	Replaces Mutation = iota
	// RewritesKeys means the sort overwrites the key fields of the
	// input's existing positions and returns the same slice; ID fields
	// never move.
	RewritesKeys
)

// Kinds returns all algorithm kinds in declaration order.
func Kinds() []Kind {
	return []Kind{CountingStable, CountingUnstable, RadixLSD, Bucket, Pigeonhole}
}

// Sort runs the algorithm on recs. The caller owns recs exclusively for
// the duration of the call. Kinds with the Replaces mutation return a
// new slice; CountingUnstable rewrites the keys of recs in place and
// returns recs itself.
func (k Kind) Sort(recs []Record) []Record {
	switch k {
	case CountingStable:
		return CountingSortStable(recs)
	case CountingUnstable:
		return CountingSortUnstable(recs)
	case RadixLSD:
		return RadixSortLSD(recs)
	case Bucket:
		return BucketSort(recs)
	case Pigeonhole:
		return PigeonholeSort(recs)
	}
	panic(fmt.Sprintf("keysort: unknown kind %d", int(k)))
}

// Stable reports whether the algorithm preserves the relative order of
// equal-key records.
func (k Kind) Stable() bool {
	return k != CountingUnstable
}

// Mutation reports the algorithm's mutation discipline.
func (k Kind) Mutation() Mutation {
	if k == CountingUnstable {
		return RewritesKeys
	}
	return Replaces
}

// RangeIndexed reports whether the algorithm allocates auxiliary storage
// proportional to the key span rather than the record count. Callers
// bound the span before invoking such kinds on untrusted key ranges.
func (k Kind) RangeIndexed() bool {
	switch k {
	case CountingStable, CountingUnstable, Pigeonhole:
		return true
	}
	return false
}

// String returns the flag/config token for the kind.
func (k Kind) String() string {
	switch k {
	case CountingStable:
		return "counting-stable"
	case CountingUnstable:
		return "counting-unstable"
	case RadixLSD:
		return "radix-lsd"
	case Bucket:
		return "bucket"
	case Pigeonhole:
		return "pigeonhole"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Name returns the human-readable name used in reports and CSV tables.
func (k Kind) Name() string {
	switch k {
	case CountingStable:
		return "Counting Sort (Stable)"
	case CountingUnstable:
		return "Counting Sort (Unstable)"
	case RadixLSD:
		return "LSD Radix Sort"
	case Bucket:
		return "Bucket Sort"
	case Pigeonhole:
		return "Pigeonhole Sort"
	}
	return k.String()
}

// ParseKind converts a flag/config token into a Kind. It accepts the
// canonical tokens from String plus a few common short forms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "counting-stable", "counting":
		return CountingStable, nil
	case "counting-unstable", "unstable":
		return CountingUnstable, nil
	case "radix-lsd", "radix":
		return RadixLSD, nil
	case "bucket":
		return Bucket, nil
	case "pigeonhole":
		return Pigeonhole, nil
	}
	return 0, fmt.Errorf("unknown algorithm %q (expected one of counting-stable, counting-unstable, radix-lsd, bucket, pigeonhole)", s)
}
