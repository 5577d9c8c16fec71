package ports

import (
	"context"

	"qqfit/domain/dist"
)

// FitKey identifies one cached parameter vector. A key is one distribution
// family fitted against one year of observations.
type FitKey struct {
	Family dist.Family
	Year   int
}

// ParamCache persists fitted parameter vectors across runs.
//
// A hit is used verbatim: the cache carries no fingerprint of the sample the
// parameters were fitted on, so entries written against older data stay
// authoritative until the entry is removed out of band. Callers that need a
// refit delete the entry first.
type ParamCache interface {
	// Load returns the cached vector for key. The second return reports
	// whether the key was present; absence is not an error.
	Load(ctx context.Context, key FitKey) ([]float64, bool, error)

	// Store writes the vector for key, replacing any existing entry.
	Store(ctx context.Context, key FitKey, params []float64) error
}
