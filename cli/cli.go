package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lkoester/keysort/config"
	"github.com/lkoester/keysort/generate"
	"github.com/lkoester/keysort/keysort"
	"github.com/lkoester/keysort/version"
	cli "github.com/urfave/cli/v2"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with other flags)",
	}

	// Data generation flags
	nFlag = &cli.IntFlag{
		Name:  "n",
		Usage: "Number of records to generate",
		Value: 10000,
	}
	kFlag = &cli.IntFlag{
		Name:  "k",
		Usage: "Upper bound of the generated key range [0, k]",
		Value: 10000,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for the random source (equal seeds reproduce equal datasets)",
		Value: 1,
	}

	// Bench-specific flags
	trialsFlag = &cli.IntFlag{
		Name:  "trials",
		Usage: "Timed repetitions per measurement; the mean is reported",
		Value: 1,
	}
	sizesFlag = &cli.IntSliceFlag{
		Name:  "sizes",
		Usage: "Record counts for the scaling suite (K tracks N)",
	}
	keyRangesFlag = &cli.IntSliceFlag{
		Name:  "keyRanges",
		Usage: "Key ranges for the range-sensitivity suite",
	}
	distributionsFlag = &cli.StringSliceFlag{
		Name:  "distributions",
		Usage: "Distributions for the distribution suite (random, nearly-sorted, reverse, skewed)",
	}
	algorithmsFlag = &cli.StringSliceFlag{
		Name:  "algorithms",
		Usage: "Algorithms to benchmark (counting-stable, counting-unstable, radix-lsd, bucket, pigeonhole)",
	}
	maxKeySpanFlag = &cli.Int64Flag{
		Name:  "maxKeySpan",
		Usage: "Upper bound on maxKey-minKey+1 for range-indexed algorithms; larger spans are skipped",
	}

	// Output flags
	csvDirFlag = &cli.StringFlag{
		Name:  "csvDir",
		Usage: "Directory for CSV result tables (one file per suite). If not provided, no CSV is written.",
	}
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the timing charts file (e.g., '/path/to/report.html'). If not provided, no plot will be generated.",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Launch TUI (Terminal User Interface) mode",
		Value: false,
	}
)

// Shared validation functions
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	// Create a map for quick lookup of allowed flags
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	// Check all possible flags
	flagsToCheck := []string{
		"n", "k", "seed", "trials", "sizes", "keyRanges", "distributions",
		"algorithms", "maxKeySpan", "csvDir", "plotPath", "compact", "plain", "tui",
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

func validateAlgorithms(algorithms []string) error {
	for _, a := range algorithms {
		if _, err := keysort.ParseKind(a); err != nil {
			return err
		}
	}
	return nil
}

func validateDistributions(distributions []string) error {
	for _, d := range distributions {
		if _, err := generate.ParseDistribution(d); err != nil {
			return err
		}
	}
	return nil
}

func validatePlotPath(plotPath string) error {
	if plotPath != "" {
		plotDir := filepath.Dir(plotPath)
		if plotDir == "." {
			plotDir, _ = os.Getwd()
		}
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	return nil
}

func validateCSVDir(csvDir string) error {
	if csvDir != "" {
		if _, err := os.Stat(csvDir); os.IsNotExist(err) {
			return fmt.Errorf("CSV directory does not exist: %s", csvDir)
		}
	}
	return nil
}

// Command handler functions to reduce deep nesting

// handleCheckCommand processes the check command with proper separation of concerns
func handleCheckCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleCheckConfigMode(c, configPath)
	}
	return handleCheckFlagsMode(c)
}

// handleCheckConfigMode handles check command when using config file
func handleCheckConfigMode(c *cli.Context, configPath string) error {
	// Validate only allowed flags in config mode
	if err := validateConfigModeFlags(c, []string{"compact", "plain"}); err != nil {
		return err
	}

	// Load and validate config
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateCheck(); err != nil {
		return fmt.Errorf("invalid check configuration: %w", err)
	}

	CheckFromConfig(cfg, c.Bool("compact"), c.Bool("plain"))
	return nil
}

// handleCheckFlagsMode handles check command when using CLI flags only
func handleCheckFlagsMode(c *cli.Context) error {
	if c.Int("n") <= 0 {
		return fmt.Errorf("n must be positive")
	}
	if c.Int("k") < 0 {
		return fmt.Errorf("k must be non-negative")
	}

	Check(c.Int("n"), c.Int("k"), c.Int64("seed"), c.Bool("compact"), c.Bool("plain"))
	return nil
}

// handleBenchCommand processes the bench command with proper separation of concerns
func handleBenchCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleBenchConfigMode(c, configPath)
	}
	return handleBenchFlagsMode(c)
}

// handleBenchConfigMode handles bench command when using config file
func handleBenchConfigMode(c *cli.Context, configPath string) error {
	// Validate only allowed flags in config mode
	if err := validateConfigModeFlags(c, []string{"tui", "compact", "plain"}); err != nil {
		return err
	}

	// Load and validate config
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateBench(); err != nil {
		return fmt.Errorf("invalid bench configuration: %w", err)
	}

	if err := validatePlotPath(cfg.Bench.PlotPath); err != nil {
		return err
	}
	if err := validateCSVDir(cfg.Bench.CSVDir); err != nil {
		return err
	}

	BenchFromConfig(cfg, c.Bool("compact"), c.Bool("plain"), c.Bool("tui"))
	return nil
}

// handleBenchFlagsMode handles bench command when using CLI flags only
func handleBenchFlagsMode(c *cli.Context) error {
	if err := validateAlgorithms(c.StringSlice("algorithms")); err != nil {
		return err
	}
	if err := validateDistributions(c.StringSlice("distributions")); err != nil {
		return err
	}
	if err := validatePlotPath(c.String("plotPath")); err != nil {
		return err
	}
	if err := validateCSVDir(c.String("csvDir")); err != nil {
		return err
	}

	Bench(
		c.Int64("seed"),
		c.Int("trials"),
		c.Int64("maxKeySpan"),
		c.IntSlice("sizes"),
		c.IntSlice("keyRanges"),
		c.StringSlice("distributions"),
		c.StringSlice("algorithms"),
		c.String("csvDir"),
		c.String("plotPath"),
		c.Bool("compact"),
		c.Bool("plain"),
		c.Bool("tui"),
	)
	return nil
}

var App = &cli.App{
	Name:     "keysort",
	Usage:    "Benchmark and verify integer-key sorting algorithms",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Commands: []*cli.Command{
		{
			Name:  "check",
			Usage: "Verify sortedness and stability of every algorithm on fresh data",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Data generation
				nFlag,
				kFlag,
				seedFlag,
				// Output flags
				compactFlag,
				plainFlag,
			},
			Action: handleCheckCommand,
		},
		{
			Name:  "bench",
			Usage: "Run timed benchmark suites across sizes, key ranges, and distributions",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Data generation
				seedFlag,
				// Bench-specific flags
				trialsFlag,
				sizesFlag,
				keyRangesFlag,
				distributionsFlag,
				algorithmsFlag,
				maxKeySpanFlag,
				// Output flags
				csvDirFlag,
				plotPathFlag,
				compactFlag,
				plainFlag,
				tuiFlag,
			},
			Action: handleBenchCommand,
		},
	},
}
