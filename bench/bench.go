package bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/lkoester/keysort/generate"
	"github.com/lkoester/keysort/keysort"
	"github.com/lkoester/keysort/output"
)

// DefaultMaxKeySpan bounds the auxiliary memory of the range-indexed
// sorts (stable/unstable counting, pigeonhole): they allocate
// proportional to the key span, independent of record count, so an
// unbounded span is a capacity hazard rather than a correctness bug.
const DefaultMaxKeySpan = int64(1) << 26

// SuiteKind selects which report table a suite reproduces.
type SuiteKind int

const (
	// Scaling varies N with K = N over uniform data.
	Scaling SuiteKind = iota
	// RangeSensitivity keeps N fixed and varies the key range K.
	RangeSensitivity
	// DistributionComparison keeps N and K fixed and varies the data
	// distribution.
	DistributionComparison
)

// String returns the config/report token for the suite kind.
func (sk SuiteKind) String() string {
	switch sk {
	case Scaling:
		return "scaling"
	case RangeSensitivity:
		return "range"
	case DistributionComparison:
		return "distribution"
	}
	return fmt.Sprintf("suitekind(%d)", int(sk))
}

// ParseSuiteKind converts a config token into a SuiteKind.
func ParseSuiteKind(s string) (SuiteKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scaling":
		return Scaling, nil
	case "range":
		return RangeSensitivity, nil
	case "distribution", "distributions":
		return DistributionComparison, nil
	}
	return 0, fmt.Errorf("unknown suite kind %q (expected scaling, range, or distribution)", s)
}

// Suite describes one batch of timed runs.
type Suite struct {
	Name          string
	Kind          SuiteKind
	Sizes         []int // Scaling: the N values to sweep
	KeyRanges     []int // RangeSensitivity: the K values to sweep
	N             int   // fixed N for RangeSensitivity and DistributionComparison
	K             int   // fixed K for DistributionComparison
	Distributions []generate.Distribution
	Algorithms    []keysort.Kind
	Trials        int
}

// Runner executes check passes and suites against a seeded source.
// Pristine datasets are cached per (distribution, n, k) so repeated
// trials and overlapping suites share generation; every sort call gets
// its own copy so it has exclusive ownership of its input.
type Runner struct {
	src        *generate.Source
	seed       int64
	maxKeySpan int64
	datasets   *haxmap.Map[string, []keysort.Record]
}

// NewRunner returns a Runner seeded with seed. maxKeySpan <= 0 selects
// DefaultMaxKeySpan.
func NewRunner(seed, maxKeySpan int64) *Runner {
	if maxKeySpan <= 0 {
		maxKeySpan = DefaultMaxKeySpan
	}
	return &Runner{
		src:        generate.New(seed),
		seed:       seed,
		maxKeySpan: maxKeySpan,
		datasets:   haxmap.New[string, []keysort.Record](),
	}
}

// Seed returns the seed the runner's source was created with.
func (r *Runner) Seed() int64 {
	return r.seed
}

// dataset returns the cached pristine dataset for the parameters,
// generating it on first use. Callers must copy before mutating.
func (r *Runner) dataset(n, k int, d generate.Distribution) []keysort.Record {
	key := fmt.Sprintf("%s/%d/%d", d, n, k)
	if cached, ok := r.datasets.Get(key); ok {
		return cached
	}
	recs := r.src.Dataset(n, k, d)
	r.datasets.Set(key, recs)
	return recs
}

// timeSort copies data so the cached pristine dataset survives, then
// times a single Sort call over the copy.
func timeSort(kind keysort.Kind, data []keysort.Record) (time.Duration, []keysort.Record) {
	work := append([]keysort.Record(nil), data...)
	start := time.Now()
	sorted := kind.Sort(work)
	return time.Since(start), sorted
}

// Check runs the phase-one sanity pass: every stable kind sorts fresh
// uniform data once and is verified in stability mode; the unstable
// control then runs against data whose IDs were decoupled from their
// positions by a shuffle, so the verifier can actually observe the
// broken key/ID pairing. On freshly generated, position-ordered input
// the in-place rewrite would look stable by coincidence.
func (r *Runner) Check(n, k int, rep *output.Report) {
	if span := int64(k) + 1; span > r.maxKeySpan {
		rep.AddError("key_span", fmt.Sprintf("check skipped: key range %d exceeds span limit %d", k, r.maxKeySpan), 1)
		return
	}

	for _, kind := range []keysort.Kind{keysort.CountingStable, keysort.RadixLSD, keysort.Bucket, keysort.Pigeonhole} {
		data := r.src.Dataset(n, k, generate.Uniform)
		start := time.Now()
		sorted := kind.Sort(data)
		elapsed := time.Since(start)

		rep.AddCheck(output.CheckRow{
			Algorithm:    kind.Name(),
			N:            n,
			K:            k,
			TimeMS:       float64(elapsed.Microseconds()) / 1000.0,
			Sorted:       keysort.Verify(sorted, false),
			Stable:       keysort.Verify(sorted, true),
			ExpectStable: true,
		})
	}

	data := r.src.Dataset(n, k, generate.Uniform)
	r.src.Shuffle(data)
	before := append([]keysort.Record(nil), data...)

	start := time.Now()
	sorted := keysort.CountingUnstable.Sort(data)
	elapsed := time.Since(start)

	preserved := true
	for i := range sorted {
		if sorted[i].ID != before[i].ID {
			preserved = false
			break
		}
	}

	rep.AddCheck(output.CheckRow{
		Algorithm:          keysort.CountingUnstable.Name(),
		N:                  n,
		K:                  k,
		TimeMS:             float64(elapsed.Microseconds()) / 1000.0,
		Sorted:             keysort.Verify(sorted, false),
		Stable:             keysort.Verify(sorted, true),
		ExpectStable:       false,
		PositionsPreserved: &preserved,
	})
}

// Run executes a suite and appends its result to the report.
func (r *Runner) Run(s Suite, rep *output.Report) {
	res := output.SuiteResult{Name: s.Name, Kind: s.Kind.String()}

	switch s.Kind {
	case Scaling:
		for _, n := range s.Sizes {
			for _, kind := range s.Algorithms {
				r.appendRow(&res, rep, kind, n, n, generate.Uniform, s.Trials)
			}
		}
	case RangeSensitivity:
		for _, k := range s.KeyRanges {
			for _, kind := range s.Algorithms {
				r.appendRow(&res, rep, kind, s.N, k, generate.Uniform, s.Trials)
			}
		}
	case DistributionComparison:
		for _, d := range s.Distributions {
			for _, kind := range s.Algorithms {
				r.appendRow(&res, rep, kind, s.N, s.K, d, s.Trials)
			}
		}
	}

	rep.AddSuite(res)
}

// appendRow times one (algorithm, n, k, distribution) combination over
// the requested trials and records the mean. A range-indexed kind whose
// key span exceeds the limit is skipped with an error instead of being
// run into an oversized allocation.
func (r *Runner) appendRow(res *output.SuiteResult, rep *output.Report, kind keysort.Kind, n, k int, d generate.Distribution, trials int) {
	if trials < 1 {
		trials = 1
	}

	data := r.dataset(n, k, d)
	if kind.RangeIndexed() {
		if span := keysort.KeySpan(data); span > r.maxKeySpan {
			rep.AddError("key_span",
				fmt.Sprintf("%s skipped: key span %d exceeds limit %d (n=%d, k=%d, %s)",
					kind.Name(), span, r.maxKeySpan, n, k, d), 1)
			return
		}
	}

	var total time.Duration
	verified := true
	for t := 0; t < trials; t++ {
		elapsed, sorted := timeSort(kind, data)
		total += elapsed
		if !keysort.Verify(sorted, kind.Stable()) {
			verified = false
		}
	}
	if !verified {
		rep.AddError("verify",
			fmt.Sprintf("%s produced an unsorted or unstable result (n=%d, k=%d, %s)",
				kind.Name(), n, k, d), 1)
	}

	mean := total / time.Duration(trials)
	res.Rows = append(res.Rows, output.SuiteRow{
		N:             n,
		K:             k,
		Distribution:  d.Name(),
		Algorithm:     kind.Name(),
		TimeUS:        mean.Microseconds(),
		Trials:        trials,
		Verified:      verified,
		StableChecked: kind.Stable(),
	})
}
