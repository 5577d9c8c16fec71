package ports

import (
	"context"

	"qqfit/domain/sample"
)

// SampleSource provides read-only access to the observation store.
type SampleSource interface {
	// Columns returns the catalog column order for the store.
	Columns(ctx context.Context) ([]string, error)

	// Years returns the years the store has observation files for, ascending.
	Years(ctx context.Context) ([]int, error)

	// Load concatenates the named column across the given years, dropping
	// rows that carry the missing-value sentinel. Years absent from the
	// store are skipped; an empty result is an input error.
	Load(ctx context.Context, column string, years []int) (sample.Sample, error)
}
