package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/glorpus-work/dataprep/pkg/errors"
	"github.com/glorpus-work/dataprep/pkg/hook"
)

// Violation is one column-level schema failure, localized to column, row and
// rule. Row is 1-based over data rows; 0 marks a column-level problem.
type Violation struct {
	Column string
	Row    int
	Check  string
	Value  string
}

func (v Violation) String() string {
	if v.Row == 0 {
		return fmt.Sprintf("column %q: %s", v.Column, v.Check)
	}
	return fmt.Sprintf("column %q row %d: %s (got %q)", v.Column, v.Row, v.Check, v.Value)
}

// SanityFailure is one failed dataset-level assertion.
type SanityFailure struct {
	Check  string
	Detail string
}

func (f SanityFailure) String() string {
	return fmt.Sprintf("%s: %s", f.Check, f.Detail)
}

// Report is the structured pass/fail outcome of one validation run.
type Report struct {
	OK         bool
	File       string
	Rows       int
	Violations []Violation
	Failures   []SanityFailure
}

// Validator validates one directory of raw data against a schema variant.
type Validator struct {
	Variant Variant
}

// New creates a Validator for the given variant.
func New(variant Variant) *Validator {
	return &Validator{Variant: variant}
}

// ValidateDir runs the full gate sequence against the lexicographically first
// CSV file in dir: locate, load and clean, structural validation (collecting
// every violation before failing), then the independent sanity assertions.
// The returned report is non-nil whenever an input file was loaded.
func (v *Validator) ValidateDir(dir string) (*Report, error) {
	path, err := findFirstCSV(dir)
	if err != nil {
		return nil, err
	}
	logger.Info("validating dataset", logger.Fields{"file": path, "variant": v.Variant.Name})

	fr, err := loadFrame(path)
	if err != nil {
		return nil, err
	}
	fr.clean(v.Variant.Rules)

	report := &Report{File: path, Rows: len(fr.rows)}

	report.Violations = v.structural(fr)
	if len(report.Violations) > 0 {
		return report, errors.Wrapf(ErrSchemaValidation, "%d violation(s) in %s", len(report.Violations), path)
	}

	report.Failures = v.sanity(fr)
	if len(report.Failures) > 0 {
		return report, errors.Wrapf(ErrSanityCheck, "%d failed assertion(s) in %s", len(report.Failures), path)
	}

	report.OK = true
	return report, nil
}

// findFirstCSV returns the lexicographically first *.csv file in dir.
func findFirstCSV(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(ErrNoInputFile, "could not read %s", dir)
	}
	for _, e := range entries { // ReadDir sorts by name
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", errors.Wrapf(ErrNoInputFile, "no *.csv in %s", dir)
}

// structural checks every declared column against its type, nullability and
// constraints, collecting all violations rather than stopping at the first.
func (v *Validator) structural(fr *frame) []Violation {
	var violations []Violation

	expectedWidth := len(fr.header)
	ragged := make(map[int]bool)
	for r, row := range fr.rows {
		if len(row) != expectedWidth {
			ragged[r] = true
			violations = append(violations, Violation{
				Row:   r + 1,
				Check: fmt.Sprintf("row has %d fields, expected %d", len(row), expectedWidth),
			})
		}
	}

	for _, col := range v.Variant.Schema.Columns {
		idx := fr.columnIndex(col.Name)
		if idx < 0 {
			violations = append(violations, Violation{
				Column: col.Name,
				Check:  "column missing from header",
			})
			continue
		}

		for r := range fr.rows {
			if ragged[r] {
				continue
			}
			cell := parseCell(fr.cell(r, idx), col.Type)

			if cell.Missing {
				if !col.Nullable {
					violations = append(violations, Violation{
						Column: col.Name,
						Row:    r + 1,
						Check:  "null value in non-nullable column",
					})
				}
				continue
			}
			if !typeOK(cell, col.Type) {
				violations = append(violations, Violation{
					Column: col.Name,
					Row:    r + 1,
					Check:  fmt.Sprintf("expected %s", col.Type),
					Value:  cell.Raw,
				})
				continue
			}
			for _, check := range col.Checks {
				if !check.Fn(cell) {
					violations = append(violations, Violation{
						Column: col.Name,
						Row:    r + 1,
						Check:  check.Desc,
						Value:  cell.Raw,
					})
				}
			}
		}
	}

	return violations
}

// sanity runs the dataset-level assertions. Each is independent; all failures
// are reported.
func (v *Validator) sanity(fr *frame) []SanityFailure {
	rules := v.Variant.Rules
	var failures []SanityFailure

	if rules.MinRows > 0 && len(fr.rows) <= rules.MinRows {
		failures = append(failures, SanityFailure{
			Check:  "row count",
			Detail: fmt.Sprintf("dataset too small; expected > %d rows, got %d", rules.MinRows, len(fr.rows)),
		})
	}

	if rules.UniqueColumn != "" {
		if dups := v.duplicates(fr, rules.UniqueColumn); dups > 0 {
			failures = append(failures, SanityFailure{
				Check:  "unique identifier",
				Detail: fmt.Sprintf("column %q holds %d duplicated value(s)", rules.UniqueColumn, dups),
			})
		}
	}

	rate, haveRate := 0.0, false
	if rules.RateColumn != "" {
		rate, haveRate = fr.numericMean(rules.RateColumn)
		name := rules.RateCheckName
		if name == "" {
			name = "outcome rate"
		}
		switch {
		case !haveRate:
			failures = append(failures, SanityFailure{
				Check:  name,
				Detail: fmt.Sprintf("column %q holds no usable values", rules.RateColumn),
			})
		case rate < rules.RateMin || rate > rules.RateMax:
			failures = append(failures, SanityFailure{
				Check:  name,
				Detail: fmt.Sprintf("out of bounds: %g, expected between %g and %g", rate, rules.RateMin, rules.RateMax),
			})
		}
	}

	failures = append(failures, v.customChecks(fr, rate)...)
	return failures
}

// duplicates counts values occurring more than once in the column.
func (v *Validator) duplicates(fr *frame, name string) int {
	idx := fr.columnIndex(name)
	if idx < 0 {
		return 0
	}
	seen := make(map[string]int, len(fr.rows))
	for r := range fr.rows {
		seen[fr.cell(r, idx)]++
	}
	dups := 0
	for _, n := range seen {
		if n > 1 {
			dups++
		}
	}
	return dups
}

// customChecks runs the variant's Tengo-scripted assertions with the dataset
// aggregates bound.
func (v *Validator) customChecks(fr *frame, rate float64) []SanityFailure {
	if len(v.Variant.Rules.Custom) == 0 {
		return nil
	}

	means := make(map[string]interface{}, len(fr.header))
	for _, name := range fr.header {
		if mean, ok := fr.numericMean(name); ok {
			means[name] = mean
		}
	}
	vars := map[string]interface{}{
		"rows":  len(fr.rows),
		"rate":  rate,
		"means": means,
	}

	var failures []SanityFailure
	for _, check := range v.Variant.Rules.Custom {
		if err := hook.Run(check.Script, vars); err != nil {
			failures = append(failures, SanityFailure{
				Check:  check.Name,
				Detail: err.Error(),
			})
		}
	}
	return failures
}
