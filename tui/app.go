package tui

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lkoester/keysort/output"
	"github.com/rivo/tview"
)

// App represents the TUI application
type App struct {
	app          *tview.Application
	pages        *tview.Pages
	progressView *tview.TextView
	resultsView  *tview.Flex
	statusBar    *tview.TextView

	// Results panels
	summary        *tview.TextView
	suitePanel     *tview.TextView
	checkPanel     *tview.TextView
	diagnostics    *tview.TextView
	focusableItems []tview.Primitive
	currentFocus   int

	// Shared mutable state protected by mu (accessed from background goroutines)
	mu           sync.Mutex
	report       *output.Report
	currentSuite int

	// Atomic flag for cross-goroutine signaling (no mutex needed)
	benchComplete atomic.Bool

	// Pre-rendered suite texts, keyed by suite index
	cachedSuiteTexts map[int]string
}

// NewApp creates a new TUI application
func NewApp() *App {
	app := &App{
		app:              tview.NewApplication(),
		pages:            tview.NewPages(),
		currentSuite:     0,
		cachedSuiteTexts: make(map[int]string),
	}

	app.setupUI()
	return app
}

// SetReport sets the complete benchmark results
func (a *App) SetReport(report *output.Report) {
	if report == nil {
		return
	}

	a.mu.Lock()
	a.report = report
	a.currentSuite = 0
	a.cachedSuiteTexts = make(map[int]string)
	a.mu.Unlock()

	a.benchComplete.Store(true)

	a.app.QueueUpdateDraw(func() {
		a.displayResults()
		a.updateStatusBar()
		a.pages.SwitchToPage("results")
	})
}

// ShowError displays an error message in the TUI and stops the progress animation
func (a *App) ShowError(message string) {
	a.app.QueueUpdateDraw(func() {
		a.progressView.SetText(fmt.Sprintf("[red]Error:[white] %s\n\n[yellow]Press 'q' to quit[white]", message))
		a.statusBar.SetText("[red]Benchmark failed![white] | Press 'q' to quit")
		a.pages.SwitchToPage("progress")
	})
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	// Create progress view
	a.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(false)
	a.progressView.SetBorder(true).SetTitle(" keysort Benchmark Progress ").SetTitleAlign(tview.AlignCenter)

	// Create results view (initially hidden)
	a.resultsView = tview.NewFlex().SetDirection(tview.FlexRow)
	a.setupResultsView()

	// Create status bar
	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]Starting benchmark...[white] | Press 'q' to quit")
	a.statusBar.SetBorder(false)

	// Create main layout
	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.progressView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	results := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.resultsView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	// Add pages
	a.pages.AddPage("progress", main, true, true)
	a.pages.AddPage("results", results, true, false)

	// Set up key bindings
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
			return nil
		case 'r', 'R':
			if a.benchComplete.Load() {
				a.pages.SwitchToPage("results")
				a.updateStatusBar()
			}
			return nil
		case 'p', 'P':
			a.pages.SwitchToPage("progress")
			a.statusBar.SetText("[yellow]Benchmark in progress...[white] | 'r' for results, 'q' to quit")
			return nil
		case 's', 'S':
			if a.benchComplete.Load() {
				a.nextSuite()
			}
			return nil
		}

		// Handle navigation in results view
		frontPageName, _ := a.pages.GetFrontPage()
		if a.benchComplete.Load() && frontPageName == "results" {
			switch event.Key() {
			case tcell.KeyTab:
				a.nextFocus()
				return nil
			case tcell.KeyBacktab:
				a.prevFocus()
				return nil
			case tcell.KeyDown:
				if focused := a.getFocusedItem(); focused != nil {
					if tv, ok := focused.(*tview.TextView); ok {
						row, col := tv.GetScrollOffset()
						tv.ScrollTo(row+1, col)
					}
				}
				return nil
			case tcell.KeyUp:
				if focused := a.getFocusedItem(); focused != nil {
					if tv, ok := focused.(*tview.TextView); ok {
						row, col := tv.GetScrollOffset()
						if row > 0 {
							tv.ScrollTo(row-1, col)
						}
					}
				}
				return nil
			case tcell.KeyPgDn:
				if focused := a.getFocusedItem(); focused != nil {
					if tv, ok := focused.(*tview.TextView); ok {
						row, col := tv.GetScrollOffset()
						tv.ScrollTo(row+10, col)
					}
				}
				return nil
			case tcell.KeyPgUp:
				if focused := a.getFocusedItem(); focused != nil {
					if tv, ok := focused.(*tview.TextView); ok {
						row, col := tv.GetScrollOffset()
						if row > 10 {
							tv.ScrollTo(row-10, col)
						} else {
							tv.ScrollTo(0, col)
						}
					}
				}
				return nil
			}
		}

		return event
	})

	a.app.SetRoot(a.pages, true)
}

// setupResultsView creates the results display layout
func (a *App) setupResultsView() {
	// Summary panel
	a.summary = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.summary.SetBorder(true).SetTitle(" Summary ").SetTitleAlign(tview.AlignLeft)

	// Suite results
	a.suitePanel = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.suitePanel.SetBorder(true).SetTitle(" Suite Results ").SetTitleAlign(tview.AlignLeft)

	// Verification results
	a.checkPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.checkPanel.SetBorder(true).SetTitle(" Verification ").SetTitleAlign(tview.AlignLeft)

	// Warnings/Errors
	a.diagnostics = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.diagnostics.SetBorder(true).SetTitle(" Diagnostics ").SetTitleAlign(tview.AlignLeft)

	// Set up focusable items
	a.focusableItems = []tview.Primitive{a.suitePanel, a.checkPanel, a.diagnostics}
	a.currentFocus = 0
	a.updateFocusBorders()

	// Layout: Summary on top, then 3 columns for the rest
	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.summary, 0, 1, false)

	bottomRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.suitePanel, 0, 2, false).
		AddItem(a.checkPanel, 0, 1, false).
		AddItem(a.diagnostics, 0, 1, false)

	a.resultsView.
		AddItem(topRow, 7, 0, false).
		AddItem(bottomRow, 0, 1, false)
}

// Run starts the TUI application
func (a *App) Run() error {
	// The benchmark runs in the CLI layer; animate progress until results arrive
	go a.animateProgress()

	return a.app.Run()
}

// animateProgress shows a progress animation while the benchmark runs
func (a *App) animateProgress() {
	stages := []string{
		"[yellow]▶[white] Generating datasets...",
		"[blue]▶[white] Warming caches...",
		"[cyan]▶[white] Running scaling suite...",
		"[green]▶[white] Running range sensitivity suite...",
		"[magenta]▶[white] Running distribution suite...",
		"[yellow]▶[white] Verifying outputs...",
		"[blue]▶[white] Aggregating timings...",
		"[cyan]▶[white] Finalizing report...",
	}

	stageIndex := 0
	dots := 0

	for !a.benchComplete.Load() {
		stage := stages[stageIndex%len(stages)]
		dotStr := strings.Repeat(".", dots%4)

		content := fmt.Sprintf(`
[white::b]keysort Benchmark[white::-]

%s%s

[dim]Press 'q' to quit[white]
`, stage, dotStr)

		a.app.QueueUpdateDraw(func() {
			a.progressView.SetText(content)
		})

		time.Sleep(200 * time.Millisecond)
		dots++

		if dots%20 == 0 {
			stageIndex++
		}
	}
}

// nextSuite cycles to the next suite's result table
func (a *App) nextSuite() {
	a.mu.Lock()
	canSwitch := a.report != nil && len(a.report.Suites) > 1
	if canSwitch {
		a.currentSuite = (a.currentSuite + 1) % len(a.report.Suites)
	}
	a.mu.Unlock()

	if canSwitch {
		a.app.QueueUpdateDraw(func() {
			a.displaySuite()
			a.updateStatusBar()
		})
	}
}

// displayResults populates the results view with benchmark data
func (a *App) displayResults() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.report == nil {
		return
	}

	a.summary.SetText(a.buildSummaryText())
	a.checkPanel.SetText(a.buildCheckText())
	a.diagnostics.SetText(a.buildDiagnosticsText())
	a.suitePanel.SetText(a.suiteText(a.currentSuite))
}

// displaySuite refreshes only the suite panel after a suite switch
func (a *App) displaySuite() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suitePanel.SetText(a.suiteText(a.currentSuite))
}

// suiteText returns the rendered table for a suite, caching per index.
// Callers must hold mu.
func (a *App) suiteText(idx int) string {
	if text, exists := a.cachedSuiteTexts[idx]; exists {
		return text
	}
	text := a.buildSuiteText(idx)
	a.cachedSuiteTexts[idx] = text
	return text
}

// buildSummaryText creates the summary text from the report metadata
func (a *App) buildSummaryText() string {
	var summaryText strings.Builder
	summaryText.WriteString("[white::b]Benchmark Summary[white::-]\n\n")

	summaryText.WriteString(fmt.Sprintf("[dim]Run Type:[white] %s  ", a.report.Metadata.RunType))
	summaryText.WriteString(fmt.Sprintf("[dim]Seed:[white] %d  ", a.report.Metadata.Seed))
	summaryText.WriteString(fmt.Sprintf("[dim]Duration:[white] %dms\n\n", a.report.Metadata.DurationMS))

	var rows int
	for _, suite := range a.report.Suites {
		rows += len(suite.Rows)
	}
	summaryText.WriteString(fmt.Sprintf("[dim]Suites:[white] %d  ", len(a.report.Suites)))
	summaryText.WriteString(fmt.Sprintf("[dim]Measurements:[white] %s  ", output.FormatNumber(rows)))
	summaryText.WriteString(fmt.Sprintf("[dim]Check Rows:[white] %d", len(a.report.Check)))

	return summaryText.String()
}

// buildSuiteText creates the result table text for one suite
func (a *App) buildSuiteText(idx int) string {
	var suiteText strings.Builder

	if idx >= len(a.report.Suites) {
		suiteText.WriteString("[dim]No suite results available[white]")
		return suiteText.String()
	}

	suite := a.report.Suites[idx]
	suiteText.WriteString(fmt.Sprintf("[white::b]%s[white::-] [dim](%s)[white]\n\n", suite.Name, suite.Kind))

	for _, row := range suite.Rows {
		var label string
		switch suite.Kind {
		case "scaling":
			label = fmt.Sprintf("N=%s", output.FormatNumber(row.N))
		case "range":
			label = fmt.Sprintf("K=%s", output.FormatNumber(row.K))
		case "distribution":
			label = row.Distribution
		default:
			label = fmt.Sprintf("N=%s K=%s %s", output.FormatNumber(row.N), output.FormatNumber(row.K), row.Distribution)
		}

		verdict := "[green]✓[white]"
		if !row.Verified {
			verdict = "[red]✗[white]"
		}
		suiteText.WriteString(fmt.Sprintf("[cyan]%-18s[white] %-25s [yellow]%10.3f ms[white]  %s\n",
			label, row.Algorithm, row.TimeMS(), verdict))
	}

	if len(suite.Rows) == 0 {
		suiteText.WriteString("[dim]No measurements recorded[white]")
	}

	return suiteText.String()
}

// buildCheckText creates the verification panel text
func (a *App) buildCheckText() string {
	var checkText strings.Builder
	checkText.WriteString("[white::b]Sortedness & Stability[white::-]\n\n")

	if len(a.report.Check) == 0 {
		checkText.WriteString("[dim]No verification pass in this run[white]")
		return checkText.String()
	}

	for _, row := range a.report.Check {
		sorted := "[green]sorted[white]"
		if !row.Sorted {
			sorted = "[red]unsorted[white]"
		}

		stable := "[green]stable[white]"
		if !row.Stable {
			if row.ExpectStable {
				stable = "[red]unstable[white]"
			} else {
				stable = "[yellow]unstable (expected)[white]"
			}
		}

		checkText.WriteString(fmt.Sprintf("[cyan]%s[white]\n  %s, %s, %.3f ms\n",
			row.Algorithm, sorted, stable, row.TimeMS))
		if row.PositionsPreserved != nil {
			if *row.PositionsPreserved {
				checkText.WriteString("  [green]positions preserved, keys rewritten[white]\n")
			} else {
				checkText.WriteString("  [red]positions moved[white]\n")
			}
		}
		checkText.WriteString("\n")
	}

	return checkText.String()
}

// buildDiagnosticsText creates the diagnostics text
func (a *App) buildDiagnosticsText() string {
	var diagText strings.Builder
	diagText.WriteString("[white::b]Diagnostics[white::-]\n\n")

	// Filter out info messages
	var realWarnings []output.Warning
	for _, warning := range a.report.Warnings {
		if warning.Type != "info" {
			realWarnings = append(realWarnings, warning)
		}
	}

	if len(realWarnings) > 0 {
		diagText.WriteString("[yellow]Warnings:[white]\n")
		for _, warning := range realWarnings {
			diagText.WriteString(fmt.Sprintf("  • %s\n", warning.Message))
		}
		diagText.WriteString("\n")
	}

	if len(a.report.Errors) > 0 {
		diagText.WriteString("[red]Errors:[white]\n")
		for _, err := range a.report.Errors {
			diagText.WriteString(fmt.Sprintf("  • %s\n", err.Message))
		}
	} else if len(realWarnings) == 0 {
		diagText.WriteString("[green]✓ No issues detected[white]")
	}

	return diagText.String()
}

// Navigation helper functions
func (a *App) nextFocus() {
	a.currentFocus = (a.currentFocus + 1) % len(a.focusableItems)
	a.updateFocusBorders()
	a.updateStatusBar()
}

func (a *App) prevFocus() {
	a.currentFocus = (a.currentFocus - 1 + len(a.focusableItems)) % len(a.focusableItems)
	a.updateFocusBorders()
	a.updateStatusBar()
}

func (a *App) getFocusedItem() tview.Primitive {
	if a.currentFocus >= 0 && a.currentFocus < len(a.focusableItems) {
		return a.focusableItems[a.currentFocus]
	}
	return nil
}

func (a *App) updateFocusBorders() {
	titles := []string{" Suite Results ", " Verification ", " Diagnostics "}
	focusedTitles := []string{" [::b]Suite Results[FOCUSED] ", " [::b]Verification[FOCUSED] ", " [::b]Diagnostics[FOCUSED] "}

	for i, item := range a.focusableItems {
		if tv, ok := item.(*tview.TextView); ok {
			if i == a.currentFocus {
				tv.SetBorderColor(tcell.ColorYellow).SetTitle(focusedTitles[i])
			} else {
				tv.SetBorderColor(tcell.ColorDefault).SetTitle(titles[i])
			}
		}
	}
}

func (a *App) updateStatusBar() {
	if !a.benchComplete.Load() {
		a.statusBar.SetText("[yellow]Benchmark in progress...[white] | 'r' for results, 'q' to quit")
		return
	}

	panelNames := []string{"Suite Results", "Verification", "Diagnostics"}
	currentPanel := panelNames[a.currentFocus]

	a.mu.Lock()
	suiteCount := 0
	suiteName := ""
	if a.report != nil && len(a.report.Suites) > 0 {
		suiteCount = len(a.report.Suites)
		if a.currentSuite >= suiteCount {
			a.currentSuite = 0
		}
		suiteName = a.report.Suites[a.currentSuite].Name
	}
	currentSuite := a.currentSuite
	a.mu.Unlock()

	if suiteCount > 1 {
		a.statusBar.SetText(fmt.Sprintf("[green]Benchmark complete![white] | [yellow]%s[white] focused | [cyan]%s (%d/%d)[white] | Tab/Shift+Tab: panels, 's': next suite, ↑↓: scroll, 'p': progress, 'q': quit",
			currentPanel, suiteName, currentSuite+1, suiteCount))
	} else {
		a.statusBar.SetText(fmt.Sprintf("[green]Benchmark complete![white] | [yellow]%s[white] focused | Tab/Shift+Tab: panels, ↑↓: scroll, 'p': progress, 'q': quit", currentPanel))
	}
}
