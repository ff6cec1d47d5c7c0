package config

import (
	"strings"
	"testing"

	"github.com/lkoester/keysort/testutil"
)

func TestLoadConfigFull(t *testing.T) {
	content := `
[check]
n = 2000
k = 500
seed = 7

[bench]
seed = 42
trials = 3
maxKeySpan = 1048576
csvDir = "out"
plotPath = "charts.html"

[bench.scaling]
kind = "scaling"
sizes = [1000, 10000]
algorithms = ["counting-stable", "radix-lsd"]

[bench.range]
kind = "range"
keyRanges = [1000, 1000000]
n = 10000

[bench.distributions]
kind = "distribution"
n = 20000
distributions = ["random", "skewed"]
trials = 5
`
	path, cleanup := testutil.WriteTempConfig(t, content)
	defer cleanup()

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Check.N != 2000 || cfg.Check.K != 500 || cfg.Check.Seed != 7 {
		t.Errorf("check section = %+v", cfg.Check)
	}
	if cfg.Bench.Seed != 42 || cfg.Bench.Trials != 3 || cfg.Bench.MaxKeySpan != 1048576 {
		t.Errorf("bench section = %+v", cfg.Bench)
	}
	if cfg.Bench.CSVDir != "out" || cfg.Bench.PlotPath != "charts.html" {
		t.Errorf("bench output paths = %+v", cfg.Bench)
	}

	if len(cfg.Suites) != 3 {
		t.Fatalf("got %d suites, want 3", len(cfg.Suites))
	}

	scaling := cfg.Suites["scaling"]
	if scaling == nil || scaling.Kind != "scaling" {
		t.Fatalf("scaling suite = %+v", scaling)
	}
	if len(scaling.Sizes) != 2 || scaling.Sizes[0] != 1000 || scaling.Sizes[1] != 10000 {
		t.Errorf("scaling sizes = %v", scaling.Sizes)
	}
	if len(scaling.Algorithms) != 2 {
		t.Errorf("scaling algorithms = %v", scaling.Algorithms)
	}

	rng := cfg.Suites["range"]
	if rng == nil || rng.Kind != "range" || rng.N != 10000 {
		t.Fatalf("range suite = %+v", rng)
	}
	if len(rng.KeyRanges) != 2 || rng.KeyRanges[1] != 1000000 {
		t.Errorf("range keyRanges = %v", rng.KeyRanges)
	}

	dist := cfg.Suites["distributions"]
	if dist == nil || dist.Kind != "distribution" || dist.N != 20000 || dist.Trials != 5 {
		t.Fatalf("distribution suite = %+v", dist)
	}
	if len(dist.Distributions) != 2 {
		t.Errorf("distributions = %v", dist.Distributions)
	}
}

func TestLoadConfigMissingSections(t *testing.T) {
	path, cleanup := testutil.WriteTempConfig(t, "")
	defer cleanup()

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Check == nil || cfg.Bench == nil {
		t.Error("missing sections must fall back to empty defaults")
	}
	if len(cfg.Suites) != 0 {
		t.Errorf("got %d suites from an empty file", len(cfg.Suites))
	}
}

func TestLoadConfigSuiteWithoutKind(t *testing.T) {
	content := `
[bench.broken]
sizes = [1000]
`
	path, cleanup := testutil.WriteTempConfig(t, content)
	defer cleanup()

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected an error for a suite without a kind")
	}
	if !strings.Contains(err.Error(), "kind") {
		t.Errorf("error %q does not mention the missing kind", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path, cleanup := testutil.WriteTempConfig(t, "[check\nn = 5")
	defer cleanup()

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/keysort.toml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidateCheck(t *testing.T) {
	tests := []struct {
		name    string
		check   *CheckConfig
		wantErr bool
	}{
		{"valid", &CheckConfig{N: 1000, K: 100}, false},
		{"zero_k", &CheckConfig{N: 1000, K: 0}, false},
		{"missing", nil, true},
		{"zero_n", &CheckConfig{N: 0, K: 100}, true},
		{"negative_k", &CheckConfig{N: 1000, K: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Check: tt.check, Bench: &BenchConfig{}}
			if err := cfg.ValidateCheck(); (err != nil) != tt.wantErr {
				t.Errorf("ValidateCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBench(t *testing.T) {
	valid := map[string]*SuiteConfig{"s": {Kind: "scaling"}}

	tests := []struct {
		name    string
		bench   *BenchConfig
		suites  map[string]*SuiteConfig
		wantErr bool
	}{
		{"valid", &BenchConfig{}, valid, false},
		{"missing_bench", nil, valid, true},
		{"no_suites", &BenchConfig{}, nil, true},
		{"bad_kind", &BenchConfig{}, map[string]*SuiteConfig{"s": {Kind: "quantiles"}}, true},
		{"bad_size", &BenchConfig{}, map[string]*SuiteConfig{"s": {Kind: "scaling", Sizes: []int{0}}}, true},
		{"bad_key_range", &BenchConfig{}, map[string]*SuiteConfig{"s": {Kind: "range", KeyRanges: []int{-1}}}, true},
		{"negative_n", &BenchConfig{}, map[string]*SuiteConfig{"s": {Kind: "distribution", N: -1}}, true},
		{"bad_algorithm", &BenchConfig{}, map[string]*SuiteConfig{"s": {Kind: "scaling", Algorithms: []string{"quicksort"}}}, true},
		{"bad_distribution", &BenchConfig{}, map[string]*SuiteConfig{"s": {Kind: "distribution", Distributions: []string{"gaussian"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Bench: tt.bench, Suites: tt.suites}
			if err := cfg.ValidateBench(); (err != nil) != tt.wantErr {
				t.Errorf("ValidateBench() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
