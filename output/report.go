package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Report represents the complete result document of a keysort run
type Report struct {
	Metadata Metadata      `json:"metadata"`
	Check    []CheckRow    `json:"check,omitempty"`
	Suites   []SuiteResult `json:"suites,omitempty"`
	Warnings []Warning     `json:"warnings"`
	Errors   []Error       `json:"errors"`

	// Mutex for thread-safe appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the run
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	RunType     string    `json:"run_type"`
	Version     string    `json:"version"`
	DurationMS  int64     `json:"duration_ms"`
	Seed        int64     `json:"seed"`
}

// CheckRow holds the verification verdict for one algorithm
type CheckRow struct {
	Algorithm string  `json:"algorithm"`
	N         int     `json:"n"`
	K         int     `json:"k"`
	TimeMS    float64 `json:"time_ms"`
	Sorted    bool    `json:"sorted"`
	Stable    bool    `json:"stable"`
	// ExpectStable records the algorithm's own stability contract, so a
	// reader can tell a failing stable sort from the unstable control.
	ExpectStable bool `json:"expect_stable"`
	// PositionsPreserved is set only for the in-place control: true when
	// every position kept its original ID while keys were redistributed.
	PositionsPreserved *bool `json:"positions_preserved,omitempty"`
}

// SuiteResult holds all timed rows produced by one benchmark suite
type SuiteResult struct {
	Name string     `json:"name"`
	Kind string     `json:"kind"`
	Rows []SuiteRow `json:"rows"`
}

// SuiteRow is one timed, verified sort invocation
type SuiteRow struct {
	N            int    `json:"n"`
	K            int    `json:"k"`
	Distribution string `json:"distribution,omitempty"`
	Algorithm    string `json:"algorithm"`
	TimeUS       int64  `json:"time_us"`
	Trials       int    `json:"trials"`
	Verified     bool   `json:"verified"`
	// StableChecked records whether the verifier ran in stability mode
	// for this row (it does for every stability-preserving algorithm).
	StableChecked bool `json:"stability_checked"`
}

// TimeMS returns the row's mean duration in milliseconds.
func (r SuiteRow) TimeMS() float64 {
	return float64(r.TimeUS) / 1000.0
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewReport creates a new Report with default metadata
func NewReport(runType string, startTime time.Time, seed int64) *Report {
	return &Report{
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			RunType:     runType,
			Version:     "1.0.0",
			DurationMS:  time.Since(startTime).Milliseconds(),
			Seed:        seed,
		},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// ToJSON converts the report to pretty-printed JSON
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToCompactJSON converts the report to compact JSON
func (r *Report) ToCompactJSON() ([]byte, error) {
	return json.Marshal(r)
}

// AddSuite appends a finished suite result (thread-safe)
func (r *Report) AddSuite(s SuiteResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Suites = append(r.Suites, s)
}

// AddCheck appends a check row (thread-safe)
func (r *Report) AddCheck(row CheckRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Check = append(r.Check, row)
}

// AddWarning adds a warning to the report (thread-safe)
func (r *Report) AddWarning(warningType, message string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the report (thread-safe)
func (r *Report) AddError(errorType, message string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// UpdateDuration updates the duration in metadata
func (r *Report) UpdateDuration(startTime time.Time) {
	r.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}

// FormatNumber adds thousand separators to numbers
func FormatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}
	return result.String()
}
