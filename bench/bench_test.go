package bench

import (
	"testing"
	"time"

	"github.com/lkoester/keysort/config"
	"github.com/lkoester/keysort/generate"
	"github.com/lkoester/keysort/keysort"
	"github.com/lkoester/keysort/output"
	"github.com/lkoester/keysort/testutil"
)

func newReport() *output.Report {
	return output.NewReport("bench", time.Now(), 42)
}

func TestCheckProducesOneRowPerAlgorithm(t *testing.T) {
	runner := NewRunner(42, 0)
	rep := newReport()

	runner.Check(1000, 1000, rep)

	if len(rep.Check) != 5 {
		t.Fatalf("got %d check rows, want 5", len(rep.Check))
	}

	for _, row := range rep.Check {
		if !row.Sorted {
			t.Errorf("%s: output not sorted", row.Algorithm)
		}
		if row.ExpectStable && !row.Stable {
			t.Errorf("%s: expected stable output", row.Algorithm)
		}
		if row.N != 1000 || row.K != 1000 {
			t.Errorf("%s: row carries n=%d k=%d, want 1000/1000", row.Algorithm, row.N, row.K)
		}
	}
}

func TestCheckUnstableControl(t *testing.T) {
	runner := NewRunner(42, 0)
	rep := newReport()

	runner.Check(2000, 100, rep)

	last := rep.Check[len(rep.Check)-1]
	if last.Algorithm != keysort.CountingUnstable.Name() {
		t.Fatalf("last row is %q, want the unstable control", last.Algorithm)
	}
	if last.ExpectStable {
		t.Error("unstable control marked as expecting stability")
	}
	if last.PositionsPreserved == nil {
		t.Fatal("unstable control missing positional check")
	}
	if !*last.PositionsPreserved {
		t.Error("key rewrite moved record positions")
	}
	// 2000 records over 101 keys guarantee ties, and the shuffled IDs
	// make the broken pairing visible.
	if last.Stable {
		t.Error("unstable control looked stable on shuffled input")
	}
	if !last.Sorted {
		t.Error("unstable control output not sorted")
	}
}

func TestCheckSkipsOversizedSpan(t *testing.T) {
	runner := NewRunner(42, 1000)
	rep := newReport()

	runner.Check(100, 100000, rep)

	if len(rep.Check) != 0 {
		t.Errorf("got %d check rows, want none for an oversized span", len(rep.Check))
	}
	if len(rep.Errors) != 1 || rep.Errors[0].Type != "key_span" {
		t.Errorf("errors = %v, want one key_span error", rep.Errors)
	}
}

func TestRunScalingSuite(t *testing.T) {
	runner := NewRunner(42, 0)
	rep := newReport()

	suite := Suite{
		Name:       "scaling",
		Kind:       Scaling,
		Sizes:      []int{100, 1000},
		Algorithms: []keysort.Kind{keysort.CountingStable, keysort.RadixLSD},
		Trials:     2,
	}
	runner.Run(suite, rep)

	if len(rep.Suites) != 1 {
		t.Fatalf("got %d suite results, want 1", len(rep.Suites))
	}
	res := rep.Suites[0]
	if res.Name != "scaling" || res.Kind != "scaling" {
		t.Errorf("suite result labelled %q/%q", res.Name, res.Kind)
	}
	if len(res.Rows) != 4 {
		t.Fatalf("got %d rows, want 2 sizes x 2 algorithms", len(res.Rows))
	}
	for _, row := range res.Rows {
		if row.N != row.K {
			t.Errorf("scaling row has n=%d k=%d, want k=n", row.N, row.K)
		}
		if row.Trials != 2 {
			t.Errorf("row trials = %d, want 2", row.Trials)
		}
		if !row.Verified {
			t.Errorf("%s at n=%d failed verification", row.Algorithm, row.N)
		}
	}
}

func TestRunRangeSuite(t *testing.T) {
	runner := NewRunner(42, 0)
	rep := newReport()

	suite := Suite{
		Name:       "range",
		Kind:       RangeSensitivity,
		KeyRanges:  []int{100, 10000},
		N:          500,
		Algorithms: []keysort.Kind{keysort.CountingStable, keysort.Pigeonhole},
		Trials:     1,
	}
	runner.Run(suite, rep)

	rows := rep.Suites[0].Rows
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 2 ranges x 2 algorithms", len(rows))
	}
	for _, row := range rows {
		if row.N != 500 {
			t.Errorf("row n = %d, want fixed 500", row.N)
		}
	}
}

func TestRunDistributionSuite(t *testing.T) {
	runner := NewRunner(42, 0)
	rep := newReport()

	suite := Suite{
		Name:          "distributions",
		Kind:          DistributionComparison,
		N:             500,
		K:             500,
		Distributions: generate.Distributions(),
		Algorithms:    []keysort.Kind{keysort.Bucket},
		Trials:        1,
	}
	runner.Run(suite, rep)

	rows := rep.Suites[0].Rows
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want one per distribution", len(rows))
	}

	seen := make(map[string]bool)
	for _, row := range rows {
		seen[row.Distribution] = true
	}
	for _, d := range generate.Distributions() {
		if !seen[d.Name()] {
			t.Errorf("no row for distribution %q", d.Name())
		}
	}
}

func TestRunSkipsRangeIndexedOverLimit(t *testing.T) {
	runner := NewRunner(42, 500)
	rep := newReport()

	suite := Suite{
		Name:       "range",
		Kind:       RangeSensitivity,
		KeyRanges:  []int{100, 100000},
		N:          200,
		Algorithms: []keysort.Kind{keysort.Pigeonhole, keysort.Bucket},
		Trials:     1,
	}
	runner.Run(suite, rep)

	rows := rep.Suites[0].Rows
	// Pigeonhole is skipped at k=100000; bucket is not range-indexed and runs.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if len(rep.Errors) != 1 || rep.Errors[0].Type != "key_span" {
		t.Errorf("errors = %v, want one key_span skip", rep.Errors)
	}
}

func TestDatasetCacheReturnsPristineData(t *testing.T) {
	runner := NewRunner(42, 0)

	first := runner.dataset(500, 500, generate.Uniform)
	snapshot := testutil.Clone(first)

	rep := newReport()
	suite := Suite{
		Name:       "scaling",
		Kind:       Scaling,
		Sizes:      []int{500},
		Algorithms: []keysort.Kind{keysort.CountingUnstable},
		Trials:     3,
	}
	runner.Run(suite, rep)

	second := runner.dataset(500, 500, generate.Uniform)
	if &first[0] != &second[0] {
		t.Error("expected the cached dataset to be reused")
	}
	for i := range snapshot {
		if second[i] != snapshot[i] {
			t.Fatal("cached dataset mutated by a sort run")
		}
	}
}

func TestParseSuiteKind(t *testing.T) {
	tests := []struct {
		input   string
		want    SuiteKind
		wantErr bool
	}{
		{"scaling", Scaling, false},
		{"range", RangeSensitivity, false},
		{"distribution", DistributionComparison, false},
		{"Scaling", Scaling, false},
		{"quantiles", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSuiteKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSuiteKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseSuiteKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromConfigAppliesDefaults(t *testing.T) {
	cfg := &config.Config{
		Bench: &config.BenchConfig{Trials: 5},
		Suites: map[string]*config.SuiteConfig{
			"scaling":       {Kind: "scaling"},
			"range":         {Kind: "range"},
			"distributions": {Kind: "distribution", Trials: 2},
		},
	}

	suites, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if len(suites) != 3 {
		t.Fatalf("got %d suites, want 3", len(suites))
	}

	// Name-sorted order: distributions, range, scaling.
	dist, rng, scal := suites[0], suites[1], suites[2]

	if scal.Kind != Scaling || len(scal.Sizes) != 4 || len(scal.Algorithms) != 4 {
		t.Errorf("scaling defaults not applied: %+v", scal)
	}
	if scal.Trials != 5 {
		t.Errorf("scaling trials = %d, want bench-level fallback 5", scal.Trials)
	}

	if rng.N != 10000 || len(rng.KeyRanges) != 4 || len(rng.Algorithms) != 3 {
		t.Errorf("range defaults not applied: %+v", rng)
	}

	if dist.N != 20000 || dist.K != 20000 || len(dist.Distributions) != 4 {
		t.Errorf("distribution defaults not applied: %+v", dist)
	}
	if dist.Trials != 2 {
		t.Errorf("distribution trials = %d, suite-level value must win", dist.Trials)
	}
}

func TestFromConfigRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name  string
		suite *config.SuiteConfig
	}{
		{"bad_kind", &config.SuiteConfig{Kind: "quantiles"}},
		{"bad_algorithm", &config.SuiteConfig{Kind: "scaling", Algorithms: []string{"quicksort"}}},
		{"bad_distribution", &config.SuiteConfig{Kind: "distribution", Distributions: []string{"gaussian"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Bench:  &config.BenchConfig{},
				Suites: map[string]*config.SuiteConfig{"s": tt.suite},
			}
			if _, err := FromConfig(cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
