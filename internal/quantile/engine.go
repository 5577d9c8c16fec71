package quantile

import (
	"math"
	"sort"

	"qqfit/domain/core"
	"qqfit/domain/dist"
	"qqfit/domain/sample"
	"qqfit/ports"
)

// Probability grid bounds. Levels stay strictly inside (0, 1) so the
// quantile function is never evaluated at an unbounded tail.
const (
	GridLo = 0.01
	GridHi = 0.99
)

// Levels returns n probability levels uniformly spaced over the closed
// interval [GridLo, GridHi], both endpoints included. A single level
// collapses to GridLo.
func Levels(n int) []float64 {
	if n <= 0 {
		return nil
	}
	levels := make([]float64, n)
	if n == 1 {
		levels[0] = GridLo
		return levels
	}
	step := (GridHi - GridLo) / float64(n-1)
	for i := range levels {
		levels[i] = GridLo + float64(i)*step
	}
	levels[n-1] = GridHi
	return levels
}

// Pairs maps a sample through the positional pairing: the i-th smallest
// observation against the model quantile at the i-th grid level. The fixed
// grid stands in for the usual (i-0.5)/n plotting positions, which
// compresses the extreme quantiles toward the body of the distribution.
// Non-finite values are silently excluded before pairing.
func Pairs(data sample.Sample, d dist.Distribution) ([]ports.QQPair, error) {
	clean := data.Clean()
	if clean.IsEmpty() {
		return nil, core.NewEmptySampleError("no finite values to compare")
	}

	empirical := clean.Sorted()
	pairs := make([]ports.QQPair, len(empirical))
	for i, level := range Levels(len(empirical)) {
		pairs[i] = ports.QQPair{Theoretical: d.Quantile(level), Empirical: empirical[i]}
	}
	return pairs, nil
}

// Simulated draws n values from d and pairs them through the same grid. The
// series shows what agreement looks like when the model is exactly right,
// next to the empirical pairing.
func Simulated(d dist.Distribution, n int) []ports.QQPair {
	if n <= 0 {
		return nil
	}

	draws := make([]float64, n)
	for i := range draws {
		draws[i] = d.Rand()
	}
	sort.Float64s(draws)

	pairs := make([]ports.QQPair, n)
	for i, level := range Levels(n) {
		pairs[i] = ports.QQPair{Theoretical: d.Quantile(level), Empirical: draws[i]}
	}
	return pairs
}

// Reference returns the identity diagonal spanning the observed range of
// both components of pairs.
func Reference(pairs []ports.QQPair) ports.RefLine {
	if len(pairs) == 0 {
		return ports.RefLine{}
	}
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, p := range pairs {
		lo = math.Min(lo, math.Min(p.Theoretical, p.Empirical))
		hi = math.Max(hi, math.Max(p.Theoretical, p.Empirical))
	}
	return ports.RefLine{Min: lo, Max: hi}
}

// NewBand computes the dispersion markers for data: the sample mean, and
// bounds k sample standard deviations either side of it. The band describes
// the empirical sample alone, independent of any fitted distribution.
func NewBand(data sample.Sample, k float64) (ports.Band, error) {
	if k < 0 {
		return ports.Band{}, core.InputErrorf("dispersion multiplier must be >= 0, got %v", k)
	}
	clean := data.Clean()
	if clean.IsEmpty() {
		return ports.Band{}, core.NewEmptySampleError("no finite values for dispersion band")
	}

	mean := clean.Mean()
	sd := clean.StdDev()
	return ports.Band{Center: mean, Lower: mean - k*sd, Upper: mean + k*sd}, nil
}

// Ramp evaluates the band's saturating profile at x: flat at the lower
// bound, along the diagonal between the bounds, flat again at the upper
// bound.
func Ramp(b ports.Band, x float64) float64 {
	return math.Min(math.Max(x, b.Lower), b.Upper)
}

// DensityCurve samples d's density at points evenly spaced over [0, max],
// for overlaying on a histogram. A non-positive max yields no curve.
func DensityCurve(d dist.Distribution, max float64, points int) []ports.CurvePoint {
	if points < 2 || max <= 0 {
		return nil
	}
	curve := make([]ports.CurvePoint, points)
	step := max / float64(points-1)
	for i := range curve {
		x := float64(i) * step
		curve[i] = ports.CurvePoint{X: x, Y: d.Prob(x)}
	}
	return curve
}

// Options select the optional geometry attached to a comparison.
type Options struct {
	RefLine        bool
	Band           bool
	BandMultiplier float64
	Simulate       bool
}

// Compare runs the full comparison for one sample and distribution and
// returns the chart payload, with Family and Year left for the caller.
func Compare(data sample.Sample, d dist.Distribution, opts Options) (ports.QQChart, error) {
	var chart ports.QQChart

	pairs, err := Pairs(data, d)
	if err != nil {
		return chart, err
	}
	chart.Pairs = pairs

	if opts.Simulate {
		chart.Simulated = Simulated(d, len(pairs))
	}
	if opts.RefLine {
		ref := Reference(pairs)
		chart.Ref = &ref
	}
	if opts.Band {
		band, err := NewBand(data, opts.BandMultiplier)
		if err != nil {
			return chart, err
		}
		chart.Band = &band
	}
	return chart, nil
}
