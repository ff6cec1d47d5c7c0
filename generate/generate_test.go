package generate

import (
	"reflect"
	"testing"

	"github.com/lkoester/keysort/keysort"
)

func TestDatasetDeterministicPerSeed(t *testing.T) {
	for _, d := range Distributions() {
		t.Run(d.String(), func(t *testing.T) {
			a := New(42).Dataset(500, 100, d)
			b := New(42).Dataset(500, 100, d)
			if !reflect.DeepEqual(a, b) {
				t.Error("equal seeds produced different datasets")
			}

			c := New(43).Dataset(500, 100, d)
			if d != Reverse && reflect.DeepEqual(a, c) {
				t.Error("different seeds produced identical datasets")
			}
		})
	}
}

func TestDatasetSizeAndIDs(t *testing.T) {
	for _, d := range Distributions() {
		t.Run(d.String(), func(t *testing.T) {
			recs := New(1).Dataset(200, 50, d)
			if len(recs) != 200 {
				t.Fatalf("len = %d, want 200", len(recs))
			}

			seen := make(map[int]bool, len(recs))
			for _, r := range recs {
				if r.ID < 0 || r.ID >= len(recs) {
					t.Fatalf("ID %d out of range", r.ID)
				}
				if seen[r.ID] {
					t.Fatalf("duplicate ID %d", r.ID)
				}
				seen[r.ID] = true
			}
		})
	}
}

func TestDatasetKeyBounds(t *testing.T) {
	const n, k = 1000, 75

	for _, d := range []Distribution{Uniform, NearlySorted, Skewed} {
		t.Run(d.String(), func(t *testing.T) {
			recs := New(7).Dataset(n, k, d)
			for _, r := range recs {
				if r.Key < 0 || r.Key > k {
					t.Fatalf("key %d outside [0, %d]", r.Key, k)
				}
			}
		})
	}
}

func TestDatasetReverse(t *testing.T) {
	recs := New(1).Dataset(5, 100, Reverse)
	want := []keysort.Record{{Key: 5, ID: 0}, {Key: 4, ID: 1}, {Key: 3, ID: 2}, {Key: 2, ID: 3}, {Key: 1, ID: 4}}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("Dataset(5, 100, Reverse) = %v, want %v", recs, want)
	}
}

func TestDatasetNearlySortedMostlyOrdered(t *testing.T) {
	const n = 2000
	recs := New(9).Dataset(n, n, NearlySorted)

	inversions := 0
	for i := 1; i < len(recs); i++ {
		if recs[i].Key < recs[i-1].Key {
			inversions++
		}
	}

	// n/20 pairwise swaps disturb at most 4 adjacent orderings each.
	if limit := 4 * (n / 20); inversions > limit {
		t.Errorf("inversions = %d, want at most %d", inversions, limit)
	}
	if inversions == 0 {
		t.Error("expected at least one disturbed position")
	}
}

func TestDatasetSkewedBias(t *testing.T) {
	const n, k = 10000, 10000
	recs := New(3).Dataset(n, k, Skewed)

	below := 0
	for _, r := range recs {
		if r.Key < k/4 {
			below++
		}
	}

	// r*r maps half the draws below k/4; uniform would put a quarter there.
	if below < n/3 {
		t.Errorf("only %d of %d keys below k/4, expected a heavy low-end bias", below, n)
	}
}

func TestDatasetEmptyAndNegativeN(t *testing.T) {
	for _, n := range []int{0, -5} {
		if recs := New(1).Dataset(n, 10, Uniform); recs != nil {
			t.Errorf("Dataset(%d, ...) = %v, want nil", n, recs)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	src := New(5)
	recs := src.Dataset(300, 300, Uniform)
	before := append([]keysort.Record(nil), recs...)

	src.Shuffle(recs)

	if reflect.DeepEqual(recs, before) {
		t.Error("shuffle left 300 records in place")
	}

	counts := make(map[keysort.Record]int)
	for _, r := range before {
		counts[r]++
	}
	for _, r := range recs {
		counts[r]--
	}
	for r, c := range counts {
		if c != 0 {
			t.Fatalf("record %v count off by %d after shuffle", r, c)
		}
	}
}

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		input   string
		want    Distribution
		wantErr bool
	}{
		{"random", Uniform, false},
		{"uniform", Uniform, false},
		{"nearly-sorted", NearlySorted, false},
		{"nearly", NearlySorted, false},
		{"reverse", Reverse, false},
		{"skewed", Skewed, false},
		{" Skewed ", Skewed, false},
		{"gaussian", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDistribution(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDistribution(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseDistribution(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDistributionRoundTrip(t *testing.T) {
	for _, d := range Distributions() {
		got, err := ParseDistribution(d.String())
		if err != nil {
			t.Errorf("ParseDistribution(%q) failed: %v", d.String(), err)
			continue
		}
		if got != d {
			t.Errorf("ParseDistribution(%q) = %v, want %v", d.String(), got, d)
		}
	}
}
