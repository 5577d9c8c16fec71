package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"qqfit/adapters/fscache"
	"qqfit/adapters/postgres"
	"qqfit/domain/dist"
	"qqfit/internal/config"
	"qqfit/internal/container"
	"qqfit/ports"

	"github.com/jmoiron/sqlx"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qqfit",
		Short: "Q-Q goodness-of-fit charts for flat-file observations",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newFamiliesCmd(),
		newCacheCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var configPath string
	var column string
	var year string
	var family string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fit the configured family and write charts plus reports",
		Long: `Load the target column from the data directory, resolve the distribution
(cache hit or fresh fit), compare quantiles and write the Q-Q chart, the
distribution chart and the run reports.

Example: qqfit run --config config.yaml --family gamma --year 2003`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), configPath, column, year, family, outputDir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default config.yaml)")
	cmd.Flags().StringVar(&column, "column", "", "Target column override")
	cmd.Flags().StringVar(&year, "year", "", "Year selector override (4-digit year or 'all')")
	cmd.Flags().StringVar(&family, "family", "", "Distribution family override (normal|burr|gamma|demo)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Chart output directory override")

	return cmd
}

func runAnalysis(ctx context.Context, configPath, column, year, family, outputDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if column != "" {
		cfg.Data.Column = column
	}
	if year != "" {
		cfg.Data.Year = year
	}
	if family != "" {
		cfg.Fit.Family = family
	}
	if outputDir != "" {
		cfg.Plot.OutputDir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer c.Shutdown(ctx)

	req, err := c.NewRunRequest()
	if err != nil {
		return err
	}

	result, err := c.Pipeline.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis run failed: %w", err)
	}

	fit := result.Report.Results[0]
	fmt.Printf("\n=== RUN RESULTS ===\n")
	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Column: %s\n", result.Report.Column)
	fmt.Printf("Family: %s\n", fit.Family)
	fmt.Printf("Fit Source: %s\n", fit.Source)
	for i, name := range fit.Family.ParamNames() {
		fmt.Printf("  %s = %.6g\n", name, fit.Params[i])
	}
	fmt.Printf("Sample: n=%d mean=%.6g sd=%.6g\n", fit.Summary.N, fit.Summary.Mean, fit.Summary.StdDev)
	fmt.Printf("Charts: %s, %s\n", fit.QQChartPath, fit.DistChartPath)
	for _, path := range result.ReportPaths {
		fmt.Printf("Report: %s\n", path)
	}
	fmt.Printf("Runtime: %d ms\n", result.RuntimeMs)

	return nil
}

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List supported distribution families",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, family := range dist.Families() {
				names := family.ParamNames()
				if len(names) == 0 {
					fmt.Printf("%-8s fixed standard normal, no parameters\n", family)
					continue
				}
				fmt.Printf("%-8s parameters: %s\n", family, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached parameter vectors",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default config.yaml)")

	show := &cobra.Command{
		Use:   "show [family] [year]",
		Short: "Print a cached parameter vector",
		Long: `Print the cached parameter vector for a family and year key ('all' for the
pooled all-years entry). Cached vectors are reused verbatim on later runs.

Example: qqfit cache show normal 2003`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheShow(cmd.Context(), configPath, args[0], args[1])
		},
	}

	clear := &cobra.Command{
		Use:   "clear [family] [year]",
		Short: "Remove a cached parameter vector so the next run refits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(cmd.Context(), configPath, args[0], args[1])
		},
	}

	cmd.AddCommand(show, clear)
	return cmd
}

// paramCacheStore is the cache surface the CLI needs beyond the pipeline's
// read/write port
type paramCacheStore interface {
	ports.ParamCache
	Remove(ctx context.Context, key ports.FitKey) error
}

func openCache(cfg *config.Config) (paramCacheStore, func() error, error) {
	if cfg.Cache.DatabaseURL != "" {
		db, err := sqlx.Connect("postgres", cfg.Cache.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to cache database: %w", err)
		}
		repo := postgres.NewParamCacheRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db.Close, nil
	}

	cache, err := fscache.New(cfg.Cache.Dir)
	if err != nil {
		return nil, nil, err
	}
	return cache, func() error { return nil }, nil
}

func parseCacheKey(familyTag, yearArg string) (ports.FitKey, error) {
	family, err := dist.ParseFamily(familyTag)
	if err != nil {
		return ports.FitKey{}, err
	}

	year := 0
	if yearArg != "all" {
		year, err = strconv.Atoi(yearArg)
		if err != nil {
			return ports.FitKey{}, fmt.Errorf("invalid year %q (use a 4-digit year or 'all')", yearArg)
		}
	}
	return ports.FitKey{Family: family, Year: year}, nil
}

func runCacheShow(ctx context.Context, configPath, familyTag, yearArg string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	key, err := parseCacheKey(familyTag, yearArg)
	if err != nil {
		return err
	}

	cache, closeCache, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	params, ok, err := cache.Load(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("No cached parameters for %s/%s\n", key.Family, yearArg)
		return nil
	}

	names := key.Family.ParamNames()
	fmt.Printf("Cached parameters for %s/%s:\n", key.Family, yearArg)
	for i, v := range params {
		label := fmt.Sprintf("p%d", i)
		if i < len(names) {
			label = names[i]
		}
		fmt.Printf("  %s = %.6g\n", label, v)
	}
	return nil
}

func runCacheClear(ctx context.Context, configPath, familyTag, yearArg string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	key, err := parseCacheKey(familyTag, yearArg)
	if err != nil {
		return err
	}

	cache, closeCache, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	if err := cache.Remove(ctx, key); err != nil {
		return err
	}
	fmt.Printf("Removed cached parameters for %s/%s; the next run will refit\n", key.Family, yearArg)
	return nil
}
