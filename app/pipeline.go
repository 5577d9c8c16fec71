package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"qqfit/domain/core"
	"qqfit/domain/dist"
	"qqfit/internal"
	"qqfit/internal/fitting"
	"qqfit/internal/quantile"
	"qqfit/ports"
)

// DefaultDensityPoints is the resolution of the fitted density overlay
const DefaultDensityPoints = 1000

// PipelineService runs one end-to-end analysis: load the target column,
// resolve the distribution, compare quantiles, render both charts and write
// the run reports. Any failure aborts the run; nothing is written past the
// first error except files already completed by an earlier step.
type PipelineService struct {
	source   ports.SampleSource
	fitter   *fitting.Fitter
	renderer ports.ChartRenderer
	sinks    []ports.ReportSink
	logger   *internal.Logger
}

// NewPipelineService creates a pipeline service
func NewPipelineService(source ports.SampleSource, fitter *fitting.Fitter, renderer ports.ChartRenderer, sinks []ports.ReportSink) *PipelineService {
	return &PipelineService{
		source:   source,
		fitter:   fitter,
		renderer: renderer,
		sinks:    sinks,
		logger:   internal.NewDefaultLogger(),
	}
}

// RunRequest defines the inputs for one analysis run
type RunRequest struct {
	Column        string
	Years         []int // nil means all years
	Family        dist.Family
	Options       quantile.Options
	DensityPoints int // 0 uses DefaultDensityPoints
}

// RunResult contains the complete output of a run
type RunResult struct {
	RunID       core.RunID      `json:"run_id"`
	Report      ports.RunReport `json:"report"`
	ReportPaths []string        `json:"report_paths"`
	RuntimeMs   int64           `json:"runtime_ms"`
}

// Run executes the pipeline stages in order: ingestion, distribution
// resolution, quantile comparison, chart rendering, report writing. The two
// chart files are independent and render concurrently; everything else is
// sequential.
func (s *PipelineService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	startTime := time.Now()
	runID := core.NewRunID()
	s.logger.Info("Run %s: column=%q family=%s years=%s", runID, req.Column, req.Family, yearsLabel(req.Years))

	data, err := s.source.Load(ctx, req.Column, req.Years)
	if err != nil {
		s.logger.Error("Run %s: ingestion failed: %v", runID, err)
		return nil, err
	}

	yearKey := cacheYear(req.Years)
	d, fitSource, err := s.fitter.Resolve(ctx, req.Family, yearKey, data)
	if err != nil {
		s.logger.Error("Run %s: distribution resolution failed: %v", runID, err)
		return nil, err
	}

	chart, err := quantile.Compare(data, d, req.Options)
	if err != nil {
		s.logger.Error("Run %s: quantile comparison failed: %v", runID, err)
		return nil, err
	}
	chart.Family = req.Family
	chart.Year = yearKey

	cleaned := data.Clean()
	summary, err := cleaned.Summarize()
	if err != nil {
		s.logger.Error("Run %s: sample summary failed: %v", runID, err)
		return nil, core.InputErrorf("failed to summarize sample: %v", err)
	}

	points := req.DensityPoints
	if points == 0 {
		points = DefaultDensityPoints
	}
	distChart := ports.DistChart{
		Family:  req.Family,
		Year:    yearKey,
		Values:  cleaned,
		Density: quantile.DensityCurve(d, cleaned.Max(), points),
	}

	var qqPath, distPath string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := s.renderer.RenderQQ(gctx, chart)
		if err != nil {
			return err
		}
		qqPath = path
		return nil
	})
	g.Go(func() error {
		path, err := s.renderer.RenderDistribution(gctx, distChart)
		if err != nil {
			return err
		}
		distPath = path
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Run %s: chart rendering failed: %v", runID, err)
		return nil, err
	}

	report := ports.RunReport{
		RunID:     runID,
		CreatedAt: core.Now(),
		Column:    req.Column,
		Years:     req.Years,
		Results: []ports.FitResult{
			{
				Family:        req.Family,
				Year:          yearKey,
				Params:        d.Params(),
				Source:        fitSource,
				Summary:       summary,
				SampleHash:    core.ComputeSampleHash(cleaned),
				QQChartPath:   qqPath,
				DistChartPath: distPath,
			},
		},
	}

	paths := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		path, err := sink.WriteRunReport(ctx, report)
		if err != nil {
			s.logger.Error("Run %s: report writing failed: %v", runID, err)
			return nil, err
		}
		paths = append(paths, path)
	}

	runtimeMs := time.Since(startTime).Milliseconds()
	s.logger.Info("Run %s: complete in %dms (fit=%s, charts=%s %s)", runID, runtimeMs, fitSource, qqPath, distPath)

	return &RunResult{
		RunID:       runID,
		Report:      report,
		ReportPaths: paths,
		RuntimeMs:   runtimeMs,
	}, nil
}

// cacheYear maps the year selector onto the cache key year: a single
// selected year keys that year, any broader selection keys the pooled
// all-years entry (0).
func cacheYear(years []int) int {
	if len(years) == 1 {
		return years[0]
	}
	return 0
}

func yearsLabel(years []int) string {
	if len(years) == 0 {
		return "all"
	}
	parts := make([]string, len(years))
	for i, year := range years {
		parts[i] = strconv.Itoa(year)
	}
	return strings.Join(parts, ",")
}
