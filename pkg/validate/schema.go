// Package validate checks a downloaded tabular dataset against a fixed column
// schema and a set of dataset-level sanity rules before downstream use. One
// validator serves every dataset shape; the shape and the designated columns
// live in a Variant.
package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnType is the declared type of a column.
type ColumnType string

// Declared column types.
const (
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeString ColumnType = "string"
)

// Cell is a parsed CSV cell handed to checks.
type Cell struct {
	Raw     string
	Num     float64
	IsNum   bool
	Missing bool
}

// Check is one declarative constraint on a column's cells.
type Check struct {
	Desc string
	Fn   func(c Cell) bool
}

// GE constrains numeric cells to be >= bound.
func GE(bound float64) Check {
	return Check{
		Desc: fmt.Sprintf("value >= %v", bound),
		Fn: func(c Cell) bool {
			return !c.IsNum || c.Num >= bound
		},
	}
}

// LE constrains numeric cells to be <= bound.
func LE(bound float64) Check {
	return Check{
		Desc: fmt.Sprintf("value <= %v", bound),
		Fn: func(c Cell) bool {
			return !c.IsNum || c.Num <= bound
		},
	}
}

// OneOf constrains the raw token to a fixed membership set.
func OneOf(values ...string) Check {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return Check{
		Desc: fmt.Sprintf("value in {%s}", strings.Join(values, ", ")),
		Fn: func(c Cell) bool {
			_, ok := set[c.Raw]
			return ok
		},
	}
}

// Column declares one column's expected type, nullability and constraints.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Checks   []Check
}

// Schema is the fixed, ordered column declaration for one dataset shape.
// Static configuration; never derived from data.
type Schema struct {
	Columns []Column
}

// Rules are the dataset-level sanity assertions and the cleanup directives
// applied before structural validation.
type Rules struct {
	// MinRows is the exclusive row count floor.
	MinRows int

	// UniqueColumn names the identifier column that must hold no duplicates.
	UniqueColumn string

	// RateColumn names the outcome column whose mean must fall inside
	// [RateMin, RateMax]. RateCheckName labels the assertion in reports.
	RateColumn    string
	RateMin       float64
	RateMax       float64
	RateCheckName string

	// CoerceNumeric lists columns whose unparsable tokens become missing
	// before validation.
	CoerceNumeric []string

	// Sentinels maps a column to tokens replaced with missing before
	// validation (e.g. an "unknown" numeric code).
	Sentinels map[string][]string

	// Custom holds extra Tengo-scripted assertions run after the built-in
	// sanity checks.
	Custom []CustomCheck
}

// CustomCheck is a named Tengo script run as an extra dataset-level check.
// The script sees `rows` (int), `rate` (float) and `means` (map of numeric
// column means) and reports failure by assigning to `err`.
type CustomCheck struct {
	Name   string
	Script string
}

// Variant bundles a schema with its rules: one dataset shape, fully declared.
type Variant struct {
	Name   string
	Schema Schema
	Rules  Rules
}

// parseCell interprets a raw token for a declared column type.
func parseCell(raw string, typ ColumnType) Cell {
	if raw == "" {
		return Cell{Missing: true}
	}
	c := Cell{Raw: raw}
	switch typ {
	case TypeInt:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			c.Num = float64(v)
			c.IsNum = true
		}
	case TypeFloat:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Num = v
			c.IsNum = true
		}
	case TypeString:
		// Raw token is the value; numeric interpretation is still useful for
		// rate computation.
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Num = v
			c.IsNum = true
		}
	}
	return c
}

// typeOK reports whether the raw token satisfies the declared type.
func typeOK(c Cell, typ ColumnType) bool {
	switch typ {
	case TypeInt, TypeFloat:
		return c.IsNum
	default:
		return true
	}
}
