package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/lkoester/keysort/bench"
	"github.com/lkoester/keysort/config"
	"github.com/lkoester/keysort/output"
	"github.com/lkoester/keysort/tui"
)

// ============================================================================
// CONFIGURATION STRUCTS
// ============================================================================

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
}

// ============================================================================
// MAIN ENTRY POINTS - These are the only functions that should be called externally
// ============================================================================

// Check runs the verification pass from CLI flags
func Check(n, k int, seed int64, compact, plain bool) {
	cfg := &config.Config{
		Check: &config.CheckConfig{N: n, K: k, Seed: seed},
		Bench: &config.BenchConfig{},
	}
	executeCheck(cfg, OutputConfig{Compact: compact, Plain: plain})
}

// CheckFromConfig runs the verification pass from a config file
func CheckFromConfig(cfg *config.Config, compact, plain bool) {
	executeCheck(cfg, OutputConfig{Compact: compact, Plain: plain})
}

// Bench runs the benchmark suites from CLI flags
func Bench(seed int64, trials int, maxKeySpan int64, sizes, keyRanges []int,
	distributions, algorithms []string, csvDir, plotPath string, compact, plain, tuiMode bool) {

	cfg := createBenchConfigFromCLI(seed, trials, maxKeySpan, sizes, keyRanges, distributions, algorithms, csvDir, plotPath)

	outputConfig := OutputConfig{
		Compact: compact,
		Plain:   plain,
		TUI:     tuiMode,
	}

	// Use the same execution path regardless of input source
	executeBench(cfg, outputConfig)
}

// BenchFromConfig runs the benchmark suites from a config file
func BenchFromConfig(cfg *config.Config, compact, plain, tuiMode bool) {
	outputConfig := OutputConfig{
		Compact: compact,
		Plain:   plain,
		TUI:     tuiMode,
	}

	// Use the same execution path regardless of input source
	executeBench(cfg, outputConfig)
}

// ============================================================================
// CORE EXECUTION LOGIC - Single unified execution path
// ============================================================================

// executeCheck runs the phase-one verification pass and prints the report
func executeCheck(cfg *config.Config, outputConfig OutputConfig) {
	start := time.Now()
	report := output.NewReport("check", start, cfg.Check.Seed)

	runner := bench.NewRunner(cfg.Check.Seed, cfg.Bench.MaxKeySpan)
	runner.Check(cfg.Check.N, cfg.Check.K, report)

	report.UpdateDuration(start)
	outputResult(report, outputConfig)
}

// executeBench handles all benchmark runs - CLI or config file, doesn't matter
func executeBench(cfg *config.Config, outputConfig OutputConfig) {
	// Route to TUI if requested
	if outputConfig.TUI {
		executeTUI(cfg)
		return
	}

	report := runBench(cfg)
	outputResult(report, outputConfig)
}

// runBench executes the configured suites and returns the finished report
func runBench(cfg *config.Config) *output.Report {
	start := time.Now()
	report := output.NewReport("bench", start, cfg.Bench.Seed)

	suites, err := bench.FromConfig(cfg)
	if err != nil {
		report.AddError("config", fmt.Sprintf("building suites: %v", err), 1)
		report.UpdateDuration(start)
		return report
	}
	if len(suites) == 0 {
		report.AddWarning("config_warning", "no suites configured, nothing to benchmark", 1)
	}

	runner := bench.NewRunner(cfg.Bench.Seed, cfg.Bench.MaxKeySpan)
	for _, suite := range suites {
		runner.Run(suite, report)
	}

	// Write CSV tables if csvDir is provided
	if cfg.Bench.CSVDir != "" {
		if paths, err := output.WriteReportCSV(report, cfg.Bench.CSVDir); err != nil {
			report.AddError("csv_write", fmt.Sprintf("writing CSV tables: %v", err), 1)
		} else {
			report.AddWarning("info", fmt.Sprintf("CSV tables written: %s", strings.Join(paths, ", ")), 0)
		}
	}

	// Generate charts if plotPath is provided
	if cfg.Bench.PlotPath != "" {
		plotStart := time.Now()
		if err := output.PlotReport(report, cfg.Bench.PlotPath); err != nil {
			report.AddError("plot", fmt.Sprintf("rendering charts: %v", err), 1)
		} else {
			report.AddWarning("info", fmt.Sprintf("Charts generated in %v at %s", time.Since(plotStart), cfg.Bench.PlotPath), 0)
		}
	}

	report.UpdateDuration(start)
	return report
}

// executeTUI runs TUI mode - works for both CLI and config file inputs
func executeTUI(cfg *config.Config) {
	app := tui.NewApp()

	// Run the complete benchmark first (like non-TUI mode), then pass results to TUI
	go func() {
		report := runBench(cfg)
		if report == nil {
			app.ShowError("Benchmark completed but returned no results")
			return
		}
		app.SetReport(report)
	}()

	if err := app.Run(); err != nil {
		fmt.Printf("TUI error: %v\n", err)
	}
}

// ============================================================================
// HELPER FUNCTIONS - Conversion and utility functions
// ============================================================================

// createBenchConfigFromCLI creates a config.Config directly from CLI parameters
// for bench mode. Flags mode produces at most three suites: one per suite kind
// that the flags actually parameterize, or the full default set when no sweep
// flags are given.
func createBenchConfigFromCLI(seed int64, trials int, maxKeySpan int64, sizes, keyRanges []int,
	distributions, algorithms []string, csvDir, plotPath string) *config.Config {

	cfg := &config.Config{
		Check: &config.CheckConfig{},
		Bench: &config.BenchConfig{
			Seed:       seed,
			Trials:     trials,
			MaxKeySpan: maxKeySpan,
			CSVDir:     csvDir,
			PlotPath:   plotPath,
		},
		Suites: make(map[string]*config.SuiteConfig),
	}

	// Explicit sweep flags select their suite; no sweep flags at all means
	// the default trio of report tables.
	sweepSelected := len(sizes) > 0 || len(keyRanges) > 0 || len(distributions) > 0
	if !sweepSelected || len(sizes) > 0 {
		cfg.Suites["scaling"] = &config.SuiteConfig{
			Kind:       "scaling",
			Sizes:      sizes,
			Algorithms: algorithms,
		}
	}
	if !sweepSelected || len(keyRanges) > 0 {
		cfg.Suites["range"] = &config.SuiteConfig{
			Kind:      "range",
			KeyRanges: keyRanges,
			// Range sensitivity keeps its own default algorithm set unless
			// the caller overrides it.
			Algorithms: algorithms,
		}
	}
	if !sweepSelected || len(distributions) > 0 {
		cfg.Suites["distributions"] = &config.SuiteConfig{
			Kind:          "distribution",
			Distributions: distributions,
			Algorithms:    algorithms,
		}
	}

	return cfg
}

// ============================================================================
// OUTPUT FUNCTIONS - Unified output handling
// ============================================================================

// outputResult is the unified output function that handles all output formats
func outputResult(report *output.Report, outputConfig OutputConfig) {
	if outputConfig.Plain {
		outputPlain(report)
		return
	}

	var jsonBytes []byte
	var err error

	if outputConfig.Compact {
		jsonBytes, err = report.ToCompactJSON()
	} else {
		jsonBytes, err = report.ToJSON()
	}

	if err != nil {
		fmt.Printf(`{"error": "failed to marshal JSON output: %v"}`, err)
		return
	}
	fmt.Println(string(jsonBytes))
}

// outputPlain formats the report as human-readable plain text
func outputPlain(report *output.Report) {
	fmt.Printf("═══════════════════════════════════════════════════════════════════════════════\n")
	fmt.Printf("                               keysort Results\n")
	fmt.Printf("═══════════════════════════════════════════════════════════════════════════════\n\n")

	// Run overview
	fmt.Printf("RUN OVERVIEW\n")
	fmt.Printf("───────────────────────────────────────────────────────────────────────────────\n")
	fmt.Printf("Run Type:        %s\n", report.Metadata.RunType)
	fmt.Printf("Generated:       %s\n", report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Duration:        %d ms\n", report.Metadata.DurationMS)
	fmt.Printf("Seed:            %d\n", report.Metadata.Seed)
	fmt.Printf("\n")

	// Verification results
	if len(report.Check) > 0 {
		fmt.Printf("VERIFICATION & STABILITY CHECKS (n=%s, k=%s)\n",
			output.FormatNumber(report.Check[0].N), output.FormatNumber(report.Check[0].K))
		fmt.Printf("───────────────────────────────────────────────────────────────────────────────\n")
		for _, row := range report.Check {
			verdict := "YES"
			if !row.Stable {
				verdict = "NO"
				if !row.ExpectStable {
					verdict = "NO (Expected)"
				}
			}
			fmt.Printf("%-25s | Time: %8.3f ms | Sorted: %-3s | Stable: %s\n",
				row.Algorithm, row.TimeMS, yesNo(row.Sorted), verdict)
			if row.PositionsPreserved != nil {
				fmt.Printf("%-25s | Positions preserved, keys rewritten in place: %s\n",
					"", yesNo(*row.PositionsPreserved))
			}
		}
		fmt.Printf("\n")
	}

	// Suite tables
	for i, suite := range report.Suites {
		fmt.Printf("SUITE: %s (%s)\n", suite.Name, suite.Kind)
		fmt.Printf("───────────────────────────────────────────────────────────────────────────────\n")
		fmt.Printf("%s\n", strings.Join(output.SuiteHeader(suite.Kind), ","))
		for _, row := range suite.Rows {
			switch suite.Kind {
			case "scaling":
				fmt.Printf("%d,%s,%.3f\n", row.N, row.Algorithm, row.TimeMS())
			case "range":
				fmt.Printf("%d,%s,%.3f\n", row.K, row.Algorithm, row.TimeMS())
			case "distribution":
				fmt.Printf("%s,%s,%.3f\n", row.Distribution, row.Algorithm, row.TimeMS())
			default:
				fmt.Printf("%d,%d,%s,%s,%.3f\n", row.N, row.K, row.Distribution, row.Algorithm, row.TimeMS())
			}
		}
		if i < len(report.Suites)-1 {
			fmt.Printf("\n")
		}
	}
	if len(report.Suites) > 0 {
		fmt.Printf("\n")
	}

	// Warnings and Errors
	if len(report.Warnings) > 0 || len(report.Errors) > 0 {
		fmt.Printf("DIAGNOSTICS\n")
		fmt.Printf("───────────────────────────────────────────────────────────────────────────────\n")

		if len(report.Warnings) > 0 {
			fmt.Printf("Warnings:\n")
			for _, warning := range report.Warnings {
				if warning.Type != "info" { // Skip info messages in plain output
					fmt.Printf("  • %s\n", warning.Message)
				}
			}
		}

		if len(report.Errors) > 0 {
			fmt.Printf("Errors:\n")
			for _, err := range report.Errors {
				fmt.Printf("  • %s\n", err.Message)
			}
		}
		fmt.Printf("\n")
	}

	fmt.Printf("═══════════════════════════════════════════════════════════════════════════════\n")
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
