package validate

import (
	"encoding/csv"
	"os"
	"slices"
	"strconv"

	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/glorpus-work/dataprep/pkg/errors"
)

// frame is a minimal in-memory table: a header plus raw string rows. Rows may
// be ragged; the validator reports width mismatches instead of aborting the
// parse.
type frame struct {
	header []string
	rows   [][]string
}

// loadFrame parses the CSV at path. The first record is the header.
func loadFrame(path string) (*frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows become schema violations, not parse errors

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}
	if len(records) == 0 {
		return &frame{}, nil
	}
	return &frame{header: records[0], rows: records[1:]}, nil
}

// columnIndex returns the position of name in the header, or -1.
func (fr *frame) columnIndex(name string) int {
	return slices.Index(fr.header, name)
}

// cell returns the raw token at (row, col), or "" when the row is too short.
func (fr *frame) cell(row, col int) string {
	if col >= len(fr.rows[row]) {
		return ""
	}
	return fr.rows[row][col]
}

// clean applies the variant's cleanup directives in place: sentinel tokens and
// unparsable values in coerce-numeric columns become missing (empty).
func (fr *frame) clean(rules Rules) {
	for _, name := range rules.CoerceNumeric {
		idx := fr.columnIndex(name)
		if idx < 0 {
			continue
		}
		coerced := 0
		for r := range fr.rows {
			raw := fr.cell(r, idx)
			if raw == "" {
				continue
			}
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				fr.rows[r][idx] = ""
				coerced++
			}
		}
		if coerced > 0 {
			logger.Debugf("coerced %d invalid tokens to missing in column %q", coerced, name)
		}
	}

	for name, tokens := range rules.Sentinels {
		idx := fr.columnIndex(name)
		if idx < 0 {
			continue
		}
		for r := range fr.rows {
			raw := fr.cell(r, idx)
			if raw != "" && slices.Contains(tokens, raw) {
				fr.rows[r][idx] = ""
			}
		}
	}
}

// numericMean returns the mean of the column's parseable values, mapping
// yes/no and true/false tokens onto 1/0. Missing and unparsable cells are
// skipped; ok is false when nothing was usable.
func (fr *frame) numericMean(name string) (mean float64, ok bool) {
	idx := fr.columnIndex(name)
	if idx < 0 {
		return 0, false
	}
	var sum float64
	var n int
	for r := range fr.rows {
		v, usable := numericValue(fr.cell(r, idx))
		if !usable {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func numericValue(raw string) (float64, bool) {
	switch raw {
	case "":
		return 0, false
	case "Yes", "yes", "True", "true":
		return 1, true
	case "No", "no", "False", "false":
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
