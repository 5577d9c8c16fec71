package dist

import (
	"qqfit/domain/core"
)

// Distribution is the uniform capability set every family variant exposes to
// the rest of the pipeline: quantile function, density, sampler, and the two
// summary moments. Values are immutable after construction.
type Distribution interface {
	// Family returns the variant's tag
	Family() Family
	// Params returns the flat parameter vector in the family's fixed order
	Params() []float64
	// Quantile returns the inverse CDF at probability p in [0, 1]
	Quantile(p float64) float64
	// Prob returns the probability density at x
	Prob(x float64) float64
	// Rand draws one value from the distribution
	Rand() float64
	// Mean returns the distribution mean (+Inf when the moment diverges)
	Mean() float64
	// StdDev returns the standard deviation (+Inf when the moment diverges)
	StdDev() float64
}

// FromParams reconstructs a variant from a cached parameter vector. The
// vector is used verbatim; a length mismatch means the cache record is
// corrupt and surfaces as a fit error.
func FromParams(family Family, params []float64) (Distribution, error) {
	if len(params) != family.Arity() {
		return nil, core.FitErrorf("family %s expects %d parameters, got %d",
			family, family.Arity(), len(params))
	}

	switch family {
	case FamilyNormal:
		return Normal{Mu: params[0], Sigma: params[1]}, nil
	case FamilyBurr:
		return Burr{C: params[0], K: params[1], Lambda: params[2]}, nil
	case FamilyGamma:
		return Gamma{Alpha: params[0], Beta: params[1]}, nil
	case FamilyDemo:
		return Demo{}, nil
	}
	return nil, core.NewUnknownFamilyError(family.String())
}
