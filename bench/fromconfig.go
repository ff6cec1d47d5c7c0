package bench

import (
	"fmt"
	"sort"

	"github.com/lkoester/keysort/config"
	"github.com/lkoester/keysort/generate"
	"github.com/lkoester/keysort/keysort"
)

// Defaults applied when a suite leaves fields unset. They reproduce the
// parameters of the tool's original report tables.
var (
	defaultSizes       = []int{1000, 10000, 50000, 100000}
	defaultKeyRanges   = []int{1000, 10000, 100000, 1000000}
	defaultRangeN      = 10000
	defaultDistN       = 20000
	defaultStableKinds = []keysort.Kind{keysort.CountingStable, keysort.RadixLSD, keysort.Bucket, keysort.Pigeonhole}
	defaultRangeKinds  = []keysort.Kind{keysort.CountingStable, keysort.RadixLSD, keysort.Pigeonhole}
)

// FromConfig builds the configured suites in deterministic name order.
// The config must already have passed ValidateBench.
func FromConfig(cfg *config.Config) ([]Suite, error) {
	var names []string
	for name := range cfg.Suites {
		names = append(names, name)
	}
	sort.Strings(names)

	var suites []Suite
	for _, name := range names {
		suite, err := suiteFromConfig(name, cfg.Suites[name], cfg.Bench)
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w", name, err)
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func suiteFromConfig(name string, sc *config.SuiteConfig, bc *config.BenchConfig) (Suite, error) {
	kind, err := ParseSuiteKind(sc.Kind)
	if err != nil {
		return Suite{}, err
	}

	suite := Suite{
		Name:   name,
		Kind:   kind,
		Trials: sc.Trials,
	}
	if suite.Trials <= 0 && bc != nil {
		suite.Trials = bc.Trials
	}
	if suite.Trials <= 0 {
		suite.Trials = 1
	}

	for _, a := range sc.Algorithms {
		k, err := keysort.ParseKind(a)
		if err != nil {
			return Suite{}, err
		}
		suite.Algorithms = append(suite.Algorithms, k)
	}

	switch kind {
	case Scaling:
		suite.Sizes = sc.Sizes
		if len(suite.Sizes) == 0 {
			suite.Sizes = defaultSizes
		}
		if len(suite.Algorithms) == 0 {
			suite.Algorithms = defaultStableKinds
		}
	case RangeSensitivity:
		suite.KeyRanges = sc.KeyRanges
		if len(suite.KeyRanges) == 0 {
			suite.KeyRanges = defaultKeyRanges
		}
		suite.N = sc.N
		if suite.N == 0 {
			suite.N = defaultRangeN
		}
		if len(suite.Algorithms) == 0 {
			suite.Algorithms = defaultRangeKinds
		}
	case DistributionComparison:
		suite.N = sc.N
		if suite.N == 0 {
			suite.N = defaultDistN
		}
		suite.K = sc.K
		if suite.K == 0 {
			suite.K = suite.N
		}
		for _, d := range sc.Distributions {
			dist, err := generate.ParseDistribution(d)
			if err != nil {
				return Suite{}, err
			}
			suite.Distributions = append(suite.Distributions, dist)
		}
		if len(suite.Distributions) == 0 {
			suite.Distributions = generate.Distributions()
		}
		if len(suite.Algorithms) == 0 {
			suite.Algorithms = defaultStableKinds
		}
	}

	return suite, nil
}
