package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"qqfit/domain/core"
	"qqfit/domain/dist"
)

// Config represents the complete application configuration. Values resolve
// in three layers: built-in defaults, then the YAML config file, then
// QQFIT_* environment variables.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Fit    FitConfig    `yaml:"fit"`
	Cache  CacheConfig  `yaml:"cache"`
	Plot   PlotConfig   `yaml:"plot"`
	Report ReportConfig `yaml:"report"`
}

// DataConfig locates the observation store and names what to extract.
type DataConfig struct {
	Dir           string    `yaml:"dir"`
	Column        string    `yaml:"column"`
	Year          string    `yaml:"year"`
	MissingValues []float64 `yaml:"missing_values"`
}

// FitConfig selects the distribution family.
type FitConfig struct {
	Family string `yaml:"family"`
}

// CacheConfig locates the parameter cache. When DatabaseURL is set the
// cache lives in PostgreSQL instead of the directory.
type CacheConfig struct {
	Dir         string `yaml:"dir"`
	DatabaseURL string `yaml:"database_url"`
}

// PlotConfig controls the diagnostic charts.
type PlotConfig struct {
	OutputDir  string   `yaml:"output_dir"`
	Format     string   `yaml:"format"`
	RefLine    bool     `yaml:"ref_line"`
	Band       bool     `yaml:"band"`
	BandSigma  float64  `yaml:"band_sigma"`
	Simulate   bool     `yaml:"simulate"`
	AxisMin    *float64 `yaml:"axis_min"`
	AxisMax    *float64 `yaml:"axis_max"`
}

// ReportConfig controls the run-report outputs.
type ReportConfig struct {
	Dir  string `yaml:"dir"`
	HTML bool   `yaml:"html"`
	XLSX bool   `yaml:"xlsx"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data: DataConfig{
			Dir:           "./data",
			Year:          "all",
			MissingValues: []float64{-999},
		},
		Fit: FitConfig{
			Family: "normal",
		},
		Cache: CacheConfig{
			Dir: "./cache",
		},
		Plot: PlotConfig{
			OutputDir: "./plots",
			Format:    "png",
			RefLine:   true,
			Band:      true,
			BandSigma: 2,
			Simulate:  true,
		},
		Report: ReportConfig{
			Dir:  "./reports",
			HTML: true,
			XLSX: true,
		},
	}
}

// Load resolves configuration from the given YAML file path. An empty path
// falls back to CONFIG_PATH, then to config.yaml; the fallback file may be
// absent, an explicitly named one may not. Environment overrides apply last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = getEnvOrDefault("CONFIG_PATH", "config.yaml")
		explicit = os.Getenv("CONFIG_PATH") != ""
	}

	config := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &config); err != nil {
			return nil, core.ConfigurationErrorf("parsing config file %s: %v", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults plus environment only
	default:
		return nil, core.ConfigurationErrorf("reading config file %s: %v", path, err)
	}

	applyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyEnvOverrides(config *Config) {
	config.Data.Dir = getEnvOrDefault("QQFIT_DATA_DIR", config.Data.Dir)
	config.Data.Column = getEnvOrDefault("QQFIT_COLUMN", config.Data.Column)
	config.Data.Year = getEnvOrDefault("QQFIT_YEAR", config.Data.Year)
	config.Fit.Family = getEnvOrDefault("QQFIT_FAMILY", config.Fit.Family)
	config.Cache.Dir = getEnvOrDefault("QQFIT_CACHE_DIR", config.Cache.Dir)
	config.Cache.DatabaseURL = getEnvOrDefault("QQFIT_DATABASE_URL", config.Cache.DatabaseURL)
	config.Plot.OutputDir = getEnvOrDefault("QQFIT_OUTPUT_DIR", config.Plot.OutputDir)
	config.Plot.Format = getEnvOrDefault("QQFIT_FORMAT", config.Plot.Format)
	config.Plot.BandSigma = getEnvFloatOrDefault("QQFIT_BAND_SIGMA", config.Plot.BandSigma)
	config.Plot.RefLine = getEnvBoolOrDefault("QQFIT_REF_LINE", config.Plot.RefLine)
	config.Report.Dir = getEnvOrDefault("QQFIT_REPORT_DIR", config.Report.Dir)
}

// Validate checks the structural settings every command relies on. The run
// pipeline additionally requires a target column; commands that only touch
// the cache do not, so that check lives with the run request.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return core.ConfigurationErrorf("data directory is required")
	}
	if _, err := dist.ParseFamily(c.Fit.Family); err != nil {
		return err
	}
	if _, err := c.Years(); err != nil {
		return err
	}
	if c.Plot.BandSigma < 0 {
		return core.ConfigurationErrorf("band_sigma must be >= 0, got %v", c.Plot.BandSigma)
	}
	switch c.Plot.Format {
	case "png", "svg", "pdf":
	default:
		return core.ConfigurationErrorf("unsupported plot format %q", c.Plot.Format)
	}
	if c.Plot.AxisMin != nil && c.Plot.AxisMax != nil && *c.Plot.AxisMin >= *c.Plot.AxisMax {
		return core.ConfigurationErrorf("axis_min %v must be below axis_max %v", *c.Plot.AxisMin, *c.Plot.AxisMax)
	}
	return nil
}

// Family returns the parsed distribution family.
func (c *Config) Family() (dist.Family, error) {
	return dist.ParseFamily(c.Fit.Family)
}

// Years returns the parsed year filter: nil for the "all" wildcard,
// otherwise the listed years. Comma-separated lists are accepted.
func (c *Config) Years() ([]int, error) {
	selector := strings.TrimSpace(c.Data.Year)
	if selector == "" || strings.EqualFold(selector, "all") {
		return nil, nil
	}

	var years []int
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if len(part) != 4 {
			return nil, core.ConfigurationErrorf("year selector %q is not a 4-digit year or \"all\"", part)
		}
		year, err := strconv.Atoi(part)
		if err != nil {
			return nil, core.ConfigurationErrorf("year selector %q is not a 4-digit year or \"all\"", part)
		}
		years = append(years, year)
	}
	return years, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// String renders the effective settings for run logs.
func (c *Config) String() string {
	return fmt.Sprintf("data=%s column=%s year=%s family=%s cache=%s plots=%s/%s",
		c.Data.Dir, c.Data.Column, c.Data.Year, c.Fit.Family, c.cacheLabel(), c.Plot.OutputDir, c.Plot.Format)
}

func (c *Config) cacheLabel() string {
	if c.Cache.DatabaseURL != "" {
		return "postgres"
	}
	return c.Cache.Dir
}
