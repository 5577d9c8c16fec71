package dist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"qqfit/domain/core"
	"qqfit/domain/sample"
)

// Fit computes the maximum-likelihood variant of the requested family. The
// location parameter is pinned to zero for every family: this is a stated
// modeling constraint of the pipeline, not an optimizer default. Demo ignores
// the sample and returns the fixed standard normal. Estimation is
// deterministic for a fixed sample.
func Fit(family Family, data sample.Sample) (Distribution, error) {
	switch family {
	case FamilyDemo:
		return Demo{}, nil
	case FamilyNormal:
		return fitNormal(data)
	case FamilyGamma:
		return fitGamma(data)
	case FamilyBurr:
		return fitBurr(data)
	}
	return nil, core.NewUnknownFamilyError(family.String())
}

// fitNormal has a closed form under the pinned location: the score in sigma
// vanishes at sigma^2 = mean(x^2).
func fitNormal(data sample.Sample) (Normal, error) {
	if data.IsEmpty() {
		return Normal{}, core.NewEmptySampleError("cannot fit normal to an empty sample")
	}

	var sumSq float64
	for _, v := range data {
		sumSq += v * v
	}
	sigma := math.Sqrt(sumSq / float64(data.Len()))
	if sigma == 0 {
		return Normal{}, fmt.Errorf("%w: normal fit degenerate, all values are zero", core.ErrEstimation)
	}

	return Normal{Mu: 0, Sigma: sigma}, nil
}

// fitGamma profiles the rate out of the likelihood (beta = alpha/mean at the
// stationary point) and minimizes the remaining one-dimensional negative
// log-likelihood over log-shape with Nelder-Mead, seeded by the standard
// moment-style closed-form approximation.
func fitGamma(data sample.Sample) (Gamma, error) {
	if data.IsEmpty() {
		return Gamma{}, core.NewEmptySampleError("cannot fit gamma to an empty sample")
	}
	if !data.AllPositive() {
		return Gamma{}, fmt.Errorf("%w: gamma support is (0, inf) but sample contains non-positive values", core.ErrEstimation)
	}

	n := float64(data.Len())
	mean := data.Mean()
	var sumLog float64
	for _, v := range data {
		sumLog += math.Log(v)
	}

	// s = ln(mean) - mean(ln x) is strictly positive unless all values are equal
	s := math.Log(mean) - sumLog/n
	if s < 1e-12 {
		return Gamma{}, fmt.Errorf("%w: gamma fit degenerate, sample has no spread", core.ErrEstimation)
	}
	alpha0 := (3 - s + math.Sqrt((s-3)*(s-3)+24*s)) / (12 * s)

	nll := func(x []float64) float64 {
		alpha := math.Exp(x[0])
		if alpha <= 0 || math.IsInf(alpha, 1) {
			return math.Inf(1)
		}
		lg, _ := math.Lgamma(alpha)
		beta := alpha / mean
		logL := n*alpha*math.Log(beta) - n*lg + (alpha-1)*sumLog - beta*n*mean
		return -logL
	}

	x, err := minimizeNLL(nll, []float64{math.Log(alpha0)})
	if err != nil {
		return Gamma{}, err
	}

	alpha := math.Exp(x[0])
	return Gamma{Alpha: alpha, Beta: alpha / mean}, nil
}

// fitBurr minimizes the three-parameter negative log-likelihood over
// (log c, log k, log lambda). The log reparameterization keeps the optimizer
// inside the positive orthant; the scale starts at the sample median, which
// is exact for c = k = 1.
func fitBurr(data sample.Sample) (Burr, error) {
	if data.IsEmpty() {
		return Burr{}, core.NewEmptySampleError("cannot fit burr to an empty sample")
	}
	if !data.AllPositive() {
		return Burr{}, fmt.Errorf("%w: burr support is (0, inf) but sample contains non-positive values", core.ErrEstimation)
	}

	nll := func(x []float64) float64 {
		b := Burr{
			C:      math.Exp(x[0]),
			K:      math.Exp(x[1]),
			Lambda: math.Exp(x[2]),
		}
		var total float64
		for _, v := range data {
			total -= b.LogProb(v)
		}
		if math.IsNaN(total) {
			return math.Inf(1)
		}
		return total
	}

	x0 := []float64{0, 0, math.Log(data.Median())}
	x, err := minimizeNLL(nll, x0)
	if err != nil {
		return Burr{}, err
	}

	return Burr{
		C:      math.Exp(x[0]),
		K:      math.Exp(x[1]),
		Lambda: math.Exp(x[2]),
	}, nil
}

// minimizeNLL runs a derivative-free Nelder-Mead minimization from x0.
// Deterministic: a fixed start point always walks the same simplex path.
func minimizeNLL(fn func([]float64) float64, x0 []float64) ([]float64, error) {
	problem := optimize.Problem{Func: fn}

	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEstimation, err)
	}
	if statusErr := result.Status.Err(); statusErr != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEstimation, statusErr)
	}

	return result.X, nil
}
