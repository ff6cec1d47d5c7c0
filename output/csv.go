package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// SuiteHeader returns the CSV header for a suite kind. The column names
// match the report tables the tool produces: scaling varies N, range
// varies K, distribution varies the data shape.
func SuiteHeader(kind string) []string {
	switch kind {
	case "scaling":
		return []string{"N", "Algorithm", "Time_ms"}
	case "range":
		return []string{"K", "Algorithm", "Time_ms"}
	case "distribution":
		return []string{"Distribution", "Algorithm", "Time_ms"}
	}
	return []string{"N", "K", "Distribution", "Algorithm", "Time_ms"}
}

// WriteSuiteCSV writes one suite's rows as <dir>/<name>.csv.
func WriteSuiteCSV(s SuiteResult, dir string) (string, error) {
	path := filepath.Join(dir, s.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create CSV file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(SuiteHeader(s.Kind)); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range s.Rows {
		ms := strconv.FormatFloat(row.TimeMS(), 'f', 3, 64)
		var record []string
		switch s.Kind {
		case "scaling":
			record = []string{strconv.Itoa(row.N), row.Algorithm, ms}
		case "range":
			record = []string{strconv.Itoa(row.K), row.Algorithm, ms}
		case "distribution":
			record = []string{row.Distribution, row.Algorithm, ms}
		default:
			record = []string{strconv.Itoa(row.N), strconv.Itoa(row.K), row.Distribution, row.Algorithm, ms}
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV file %s: %w", path, err)
	}
	return path, nil
}

// WriteReportCSV writes every suite in the report into dir, one file per
// suite, and returns the created paths.
func WriteReportCSV(r *Report, dir string) ([]string, error) {
	var paths []string
	for _, s := range r.Suites {
		path, err := WriteSuiteCSV(s, dir)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
