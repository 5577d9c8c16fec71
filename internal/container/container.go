package container

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"qqfit/adapters/excel"
	"qqfit/adapters/flatfile"
	"qqfit/adapters/fscache"
	"qqfit/adapters/gonumplot"
	"qqfit/adapters/postgres"
	"qqfit/app"
	"qqfit/domain/core"
	"qqfit/internal/config"
	"qqfit/internal/fitting"
	"qqfit/internal/quantile"
	"qqfit/internal/report"
	"qqfit/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	Source   ports.SampleSource
	Cache    ports.ParamCache
	Renderer ports.ChartRenderer
	Sinks    []ports.ReportSink

	// Services
	Fitter   *fitting.Fitter
	Pipeline *app.PipelineService
}

// New wires adapters and services from a validated configuration
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{Config: cfg}

	if err := c.initAdapters(); err != nil {
		return nil, err
	}
	c.initServices()

	log.Printf("Container initialized successfully")
	return c, nil
}

// initAdapters builds the data source, parameter cache, renderer and report
// sinks from configuration
func (c *Container) initAdapters() error {
	source, err := flatfile.NewSource(c.Config.Data.Dir, c.Config.Data.MissingValues)
	if err != nil {
		return fmt.Errorf("failed to initialize data source: %w", err)
	}
	c.Source = source

	if err := c.initCache(); err != nil {
		return err
	}

	renderer, err := gonumplot.NewRenderer(c.Config.Plot.OutputDir, c.Config.Plot.Format, c.Config.Plot.AxisMin, c.Config.Plot.AxisMax)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	c.Renderer = renderer

	return c.initSinks()
}

// initCache selects the postgres-backed cache when a database URL is
// configured, the filesystem cache otherwise
func (c *Container) initCache() error {
	if c.Config.Cache.DatabaseURL != "" {
		db, err := sqlx.Connect("postgres", c.Config.Cache.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to cache database: %w", err)
		}
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping cache database: %w", err)
		}
		repo := postgres.NewParamCacheRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("failed to ensure cache schema: %w", err)
		}
		c.DB = db
		c.Cache = repo
		log.Printf("Using postgres parameter cache")
		return nil
	}

	cache, err := fscache.New(c.Config.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize parameter cache: %w", err)
	}
	c.Cache = cache
	log.Printf("Using filesystem parameter cache at %s", c.Config.Cache.Dir)
	return nil
}

func (c *Container) initSinks() error {
	sinks := make([]ports.ReportSink, 0, 2)

	sink, err := report.NewSink(c.Config.Report.Dir, c.Config.Report.HTML)
	if err != nil {
		return fmt.Errorf("failed to initialize report sink: %w", err)
	}
	sinks = append(sinks, sink)

	if c.Config.Report.XLSX {
		writer, err := excel.NewReportWriter(c.Config.Report.Dir)
		if err != nil {
			return fmt.Errorf("failed to initialize workbook writer: %w", err)
		}
		sinks = append(sinks, writer)
	}

	c.Sinks = sinks
	return nil
}

func (c *Container) initServices() {
	c.Fitter = fitting.NewFitter(c.Cache)
	c.Pipeline = app.NewPipelineService(c.Source, c.Fitter, c.Renderer, c.Sinks)
}

// NewRunRequest translates the configuration into a pipeline request
func (c *Container) NewRunRequest() (app.RunRequest, error) {
	if c.Config.Data.Column == "" {
		return app.RunRequest{}, core.ConfigurationErrorf("target column is required")
	}
	family, err := c.Config.Family()
	if err != nil {
		return app.RunRequest{}, err
	}
	years, err := c.Config.Years()
	if err != nil {
		return app.RunRequest{}, err
	}

	return app.RunRequest{
		Column: c.Config.Data.Column,
		Years:  years,
		Family: family,
		Options: quantile.Options{
			RefLine:        c.Config.Plot.RefLine,
			Band:           c.Config.Plot.Band,
			BandMultiplier: c.Config.Plot.BandSigma,
			Simulate:       c.Config.Plot.Simulate,
		},
	}, nil
}

// Shutdown gracefully closes held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
