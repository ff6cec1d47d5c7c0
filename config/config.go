package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lkoester/keysort/generate"
	"github.com/lkoester/keysort/keysort"
)

// CheckConfig drives the phase-one verification pass.
type CheckConfig struct {
	N    int   `toml:"n"`
	K    int   `toml:"k"`
	Seed int64 `toml:"seed"`
}

// BenchConfig holds the settings shared by every benchmark suite.
type BenchConfig struct {
	Seed       int64  `toml:"seed"`
	Trials     int    `toml:"trials"`
	MaxKeySpan int64  `toml:"maxKeySpan"`
	CSVDir     string `toml:"csvDir"`
	PlotPath   string `toml:"plotPath"`
}

// SuiteConfig describes one benchmark suite, parsed from a dynamic
// [bench.<name>] table. Unset fields fall back to the defaults of the
// suite's kind.
type SuiteConfig struct {
	Kind          string   `toml:"kind"`
	Sizes         []int    `toml:"sizes"`
	KeyRanges     []int    `toml:"keyRanges"`
	N             int      `toml:"n"`
	K             int      `toml:"k"`
	Trials        int      `toml:"trials"`
	Algorithms    []string `toml:"algorithms"`
	Distributions []string `toml:"distributions"`
}

type Config struct {
	Check  *CheckConfig            `toml:"check"`
	Bench  *BenchConfig            `toml:"bench"`
	Suites map[string]*SuiteConfig `toml:",remain"`
}

// benchScalarKeys are the [bench] fields that are settings rather than
// suite sub-tables.
var benchScalarKeys = map[string]bool{
	"seed":       true,
	"trials":     true,
	"maxKeySpan": true,
	"csvDir":     true,
	"plotPath":   true,
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if _, err := toml.Decode(string(configData), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := &Config{
		Suites: make(map[string]*SuiteConfig),
	}

	for key, value := range rawConfig {
		switch key {
		case "check":
			if checkMap, ok := value.(map[string]any); ok {
				config.Check = parseCheckConfig(checkMap)
			}
		case "bench":
			if benchMap, ok := value.(map[string]any); ok {
				config.Bench = parseBenchConfig(benchMap)
				// Parse suites from nested config
				for subKey, subValue := range benchMap {
					if benchScalarKeys[subKey] {
						continue
					}
					if suiteMap, ok := subValue.(map[string]any); ok {
						suiteConfig, err := parseSuiteConfig(suiteMap)
						if err != nil {
							return nil, fmt.Errorf("parsing suite config %q: %w", subKey, err)
						}
						config.Suites[subKey] = suiteConfig
					}
				}
			}
		}
	}

	if config.Check == nil {
		config.Check = &CheckConfig{}
	}
	if config.Bench == nil {
		config.Bench = &BenchConfig{}
	}

	return config, nil
}

func parseCheckConfig(m map[string]any) *CheckConfig {
	config := &CheckConfig{}
	if v, ok := m["n"].(int64); ok {
		config.N = int(v)
	}
	if v, ok := m["k"].(int64); ok {
		config.K = int(v)
	}
	if v, ok := m["seed"].(int64); ok {
		config.Seed = v
	}
	return config
}

func parseBenchConfig(m map[string]any) *BenchConfig {
	config := &BenchConfig{}
	if v, ok := m["seed"].(int64); ok {
		config.Seed = v
	}
	if v, ok := m["trials"].(int64); ok {
		config.Trials = int(v)
	}
	if v, ok := m["maxKeySpan"].(int64); ok {
		config.MaxKeySpan = v
	}
	if v, ok := m["csvDir"].(string); ok {
		config.CSVDir = v
	}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	return config
}

func parseSuiteConfig(m map[string]any) (*SuiteConfig, error) {
	config := &SuiteConfig{}
	if v, ok := m["kind"].(string); ok {
		config.Kind = v
	}
	if config.Kind == "" {
		return nil, fmt.Errorf("suite is missing the kind field (scaling, range, or distribution)")
	}
	config.Sizes = intSlice(m["sizes"])
	config.KeyRanges = intSlice(m["keyRanges"])
	if v, ok := m["n"].(int64); ok {
		config.N = int(v)
	}
	if v, ok := m["k"].(int64); ok {
		config.K = int(v)
	}
	if v, ok := m["trials"].(int64); ok {
		config.Trials = int(v)
	}
	config.Algorithms = stringSlice(m["algorithms"])
	config.Distributions = stringSlice(m["distributions"])
	return config, nil
}

func intSlice(v any) []int {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []int
	for _, item := range arr {
		if i, ok := item.(int64); ok {
			out = append(out, int(i))
		}
	}
	return out
}

func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) ValidateCheck() error {
	if c.Check == nil {
		return fmt.Errorf("check configuration section is required")
	}
	if c.Check.N <= 0 {
		return fmt.Errorf("n must be positive in check configuration")
	}
	if c.Check.K < 0 {
		return fmt.Errorf("k must be non-negative in check configuration")
	}
	return nil
}

func (c *Config) ValidateBench() error {
	if c.Bench == nil {
		return fmt.Errorf("bench configuration section is required")
	}
	if len(c.Suites) == 0 {
		return fmt.Errorf("at least one suite is required in bench mode (e.g., [bench.scaling])")
	}
	for name, suite := range c.Suites {
		if err := suite.validate(); err != nil {
			return fmt.Errorf("suite %q: %w", name, err)
		}
	}
	return nil
}

func (sc *SuiteConfig) validate() error {
	switch sc.Kind {
	case "scaling", "range", "distribution":
	default:
		return fmt.Errorf("invalid kind %q (expected scaling, range, or distribution)", sc.Kind)
	}
	for _, n := range sc.Sizes {
		if n <= 0 {
			return fmt.Errorf("sizes must be positive, got %d", n)
		}
	}
	for _, k := range sc.KeyRanges {
		if k <= 0 {
			return fmt.Errorf("keyRanges must be positive, got %d", k)
		}
	}
	if sc.N < 0 || sc.K < 0 {
		return fmt.Errorf("n and k must be non-negative")
	}
	for _, a := range sc.Algorithms {
		if _, err := keysort.ParseKind(a); err != nil {
			return err
		}
	}
	for _, d := range sc.Distributions {
		if _, err := generate.ParseDistribution(d); err != nil {
			return err
		}
	}
	return nil
}
