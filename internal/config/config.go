package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"supply-curve/internal/model"

	"gopkg.in/yaml.v3"
)

// DefaultLoadFactor is used when neither demand.mw nor demand.load_factor is set.
const DefaultLoadFactor = 0.75

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Interval IntervalConfig `yaml:"interval"`
	Demand   DemandConfig   `yaml:"demand"`
	Filter   FilterConfig   `yaml:"filter"`
	Workers  int            `yaml:"workers"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type InputConfig struct {
	Path string `yaml:"path"`
	// "csv" or "json"; inferred from the path extension when empty.
	Format string `yaml:"format"`
}

// IntervalConfig selects rows by interval start. Empty fields match everything.
type IntervalConfig struct {
	Date   string `yaml:"date"`   // YYYY-MM-DD
	Hour   string `yaml:"hour"`   // HH
	Minute string `yaml:"minute"` // MM
}

// DemandConfig decides the demand the clearing price is resolved at.
// An explicit MW wins; otherwise LoadFactor of total capacity is used.
type DemandConfig struct {
	MW         float64 `yaml:"mw"`
	LoadFactor float64 `yaml:"load_factor"`
}

type FilterConfig struct {
	ExcludedStatuses []string `yaml:"excluded_statuses"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	excluded := make([]string, 0, len(model.UnavailableStatuses()))
	for _, s := range model.UnavailableStatuses() {
		excluded = append(excluded, string(s))
	}
	return &Config{
		Demand:  DemandConfig{LoadFactor: DefaultLoadFactor},
		Filter:  FilterConfig{ExcludedStatuses: excluded},
		Workers: 1,
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config on top of Default, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	// Relative input paths are relative to the config file directory,
	// falling back to the provided path (relative to cwd) if that doesn't exist.
	if c.Input.Path != "" && !filepath.IsAbs(c.Input.Path) {
		cand := filepath.Join(filepath.Dir(path), c.Input.Path)
		if _, err := os.Stat(cand); err == nil {
			c.Input.Path = cand
		}
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if f := c.InputFormat(); f != "" && f != "csv" && f != "json" {
		return fmt.Errorf("input.format must be csv or json, got %q", c.Input.Format)
	}
	if err := c.Interval.Validate(); err != nil {
		return fmt.Errorf("interval config invalid: %w", err)
	}
	if err := c.Demand.Validate(); err != nil {
		return fmt.Errorf("demand config invalid: %w", err)
	}
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	return nil
}

// InputFormat returns the configured format, or the one implied by the path.
func (c *Config) InputFormat() string {
	if f := strings.ToLower(strings.TrimSpace(c.Input.Format)); f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(c.Input.Path)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	}
	return ""
}

// ExcludedStatuses returns the filter statuses as model.Status values.
func (c *Config) ExcludedStatuses() []model.Status {
	out := make([]model.Status, 0, len(c.Filter.ExcludedStatuses))
	for _, s := range c.Filter.ExcludedStatuses {
		out = append(out, model.NormalizeStatus(s))
	}
	return out
}

func (i IntervalConfig) Validate() error {
	if i.Date != "" {
		if _, err := time.Parse("2006-01-02", i.Date); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
	}
	if err := checkClockField("hour", i.Hour, 23); err != nil {
		return err
	}
	if err := checkClockField("minute", i.Minute, 59); err != nil {
		return err
	}
	if i.Minute != "" && i.Hour == "" {
		return errors.New("minute requires hour")
	}
	return nil
}

func checkClockField(name, v string, max int) error {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > max {
		return fmt.Errorf("%s must be an integer in [0, %d], got %q", name, max, v)
	}
	return nil
}

func (d DemandConfig) Validate() error {
	if math.IsNaN(d.MW) || math.IsInf(d.MW, 0) || d.MW < 0 {
		return errors.New("mw must be a finite value >= 0")
	}
	if math.IsNaN(d.LoadFactor) || d.LoadFactor < 0 || d.LoadFactor > 1 {
		return errors.New("load_factor must be in [0, 1]")
	}
	return nil
}

// Resolve returns the demand in MW for a curve with the given total capacity.
func (d DemandConfig) Resolve(totalMW float64) float64 {
	if d.MW > 0 {
		return d.MW
	}
	lf := d.LoadFactor
	if lf == 0 {
		lf = DefaultLoadFactor
	}
	return totalMW * lf
}

// Overrides are values given on the command line; zero values mean "not set".
type Overrides struct {
	InputPath  string
	Date       string
	Hour       string
	Minute     string
	DemandMW   float64
	LoadFactor float64
	Workers    int
	LogLevel   string
}

// MergeOverrides overlays non-zero fields from o onto c.
func (c *Config) MergeOverrides(o Overrides) {
	if o.InputPath != "" {
		c.Input.Path = o.InputPath
		c.Input.Format = ""
	}
	if o.Date != "" {
		c.Interval.Date = o.Date
	}
	if o.Hour != "" {
		c.Interval.Hour = o.Hour
	}
	if o.Minute != "" {
		c.Interval.Minute = o.Minute
	}
	if o.DemandMW != 0 {
		c.Demand.MW = o.DemandMW
	}
	if o.LoadFactor != 0 {
		// An explicit load factor on the command line beats a configured MW.
		c.Demand.LoadFactor = o.LoadFactor
		if o.DemandMW == 0 {
			c.Demand.MW = 0
		}
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
}
