package validate

import (
	"fmt"
)

// Validation error kinds. Each gate in the validator fails with a distinct
// kind so callers can classify with errors.Is.
var (
	// ErrNoInputFile is returned when the target directory holds no CSV file.
	ErrNoInputFile = fmt.Errorf("no CSV input file found")
	// ErrSchemaValidation is returned when one or more column-level checks
	// fail; the report carries the complete violation list.
	ErrSchemaValidation = fmt.Errorf("schema validation failed")
	// ErrSanityCheck is returned when a dataset-level business rule fails.
	ErrSanityCheck = fmt.Errorf("sanity check failed")
)
