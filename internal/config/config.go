// Package config loads the optional .acfjson.yaml file that holds the
// locator and policy settings otherwise passed as flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-acfjson/pkg/fieldtree"
	"github.com/goliatone/go-acfjson/pkg/normalize"
	"github.com/goliatone/go-acfjson/pkg/scan"
)

// DefaultFile is looked up in the working directory when no --config flag is
// given. Its absence is not an error.
const DefaultFile = ".acfjson.yaml"

// Config mirrors the YAML file.
type Config struct {
	Path    string               `yaml:"path"`
	Pattern string               `yaml:"pattern"`
	DryRun  bool                 `yaml:"dry_run"`
	Confirm bool                 `yaml:"confirm"`
	ASCII   *bool                `yaml:"ascii"`
	Select  SelectConfig         `yaml:"select"`
	Check   CheckConfig          `yaml:"check"`
	Scan    ScanConfig           `yaml:"scan"`
	Types   map[string]TypeTable `yaml:"types"`
	Log     LogConfig            `yaml:"log"`
}

// SelectConfig configures the minimal select fill.
type SelectConfig struct {
	Trigger string `yaml:"trigger"`
	Write   string `yaml:"write"`
	Layouts bool   `yaml:"layouts"`
}

// CheckConfig configures the structural missing-multiple check.
type CheckConfig struct {
	Layouts bool `yaml:"layouts"`
}

// ScanConfig bounds the line heuristic window. Unset values fall back to the
// document/directory presets.
type ScanConfig struct {
	LookBack  *int `yaml:"look_back"`
	LookAhead *int `yaml:"look_ahead"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Pattern: "*.json",
		Select: SelectConfig{
			Trigger: string(normalize.TriggerRequired),
			Write:   string(normalize.WriteMissing),
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// silently falls back to the defaults when it does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML onto cfg, leaving unset keys untouched.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := c.SelectOptions(); err != nil {
		return err
	}
	if c.Scan.LookBack != nil && *c.Scan.LookBack < 0 {
		return errors.New("config: scan.look_back must not be negative")
	}
	if c.Scan.LookAhead != nil && *c.Scan.LookAhead < 0 {
		return errors.New("config: scan.look_ahead must not be negative")
	}
	for name := range c.Types {
		if strings.TrimSpace(name) == "" {
			return errors.New("config: types entry with empty name")
		}
	}
	return nil
}

// SelectOptions converts the select settings.
func (c Config) SelectOptions() (normalize.SelectFillOptions, error) {
	trigger, err := normalize.ParseTrigger(c.Select.Trigger)
	if err != nil {
		return normalize.SelectFillOptions{}, err
	}
	write, err := normalize.ParseWriteMode(c.Select.Write)
	if err != nil {
		return normalize.SelectFillOptions{}, err
	}
	return normalize.SelectFillOptions{Trigger: trigger, Write: write, FollowLayouts: c.Select.Layouts}, nil
}

// Window returns the configured scan bounds. Unset bounds are left to the
// runner presets.
func (c Config) Window() scan.Bounds {
	return scan.Bounds{LookBack: c.Scan.LookBack, LookAhead: c.Scan.LookAhead}
}

// EncodeOptions returns the serialisation settings.
func (c Config) EncodeOptions() fieldtree.EncodeOptions {
	opts := fieldtree.DefaultEncodeOptions()
	if c.ASCII != nil {
		opts.ASCII = *c.ASCII
	}
	return opts
}

// Tables merges the configured type tables over the built-in ones.
func (c Config) Tables() normalize.Tables {
	tables := normalize.DefaultTables()
	names := make([]string, 0, len(c.Types))
	for name := range c.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tables = tables.With(name, normalize.Table(c.Types[name]))
	}
	return tables
}
