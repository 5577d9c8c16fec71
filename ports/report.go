package ports

import (
	"context"

	"qqfit/domain/core"
	"qqfit/domain/dist"
	"qqfit/domain/sample"
)

// FitSource records how a run obtained its parameter vector.
type FitSource string

const (
	// FitSourceCache means the vector was loaded from the parameter cache.
	FitSourceCache FitSource = "cache"

	// FitSourceComputed means the vector was estimated from the sample and
	// written back to the cache.
	FitSourceComputed FitSource = "computed"

	// FitSourceFixed means the family carries no free parameters.
	FitSourceFixed FitSource = "fixed"
)

// FitResult is the per-family outcome of a run: the resolved parameters and
// the artifacts produced from them.
type FitResult struct {
	Family        dist.Family
	Year          int
	Params        []float64
	Source        FitSource
	Summary       sample.Summary
	SampleHash    core.SampleHash
	QQChartPath   string
	DistChartPath string
}

// RunReport is the full record of one pipeline run.
type RunReport struct {
	RunID     core.RunID
	CreatedAt core.Timestamp
	Column    string
	Years     []int
	Results   []FitResult
}

// ReportSink writes a run report to some output format and returns the path
// of the written file.
type ReportSink interface {
	WriteRunReport(ctx context.Context, report RunReport) (string, error)
}
