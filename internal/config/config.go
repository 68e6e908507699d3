// Package config loads netbom settings from YAML or HCL files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither
// YAML nor HCL.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Config holds the settings shared by every command. Flags explicitly set
// on the command line take precedence over file values.
type Config struct {
	Format      string   `yaml:"format" hcl:"format,optional"`
	GroupBy     string   `yaml:"group_by" hcl:"group_by,optional"`
	ExtraFields []string `yaml:"extra_fields" hcl:"extra_fields,optional"`
	ExcludeDNP  bool     `yaml:"exclude_dnp" hcl:"exclude_dnp,optional"`
	Ungrouped   bool     `yaml:"ungrouped" hcl:"ungrouped,optional"`
	Coverage    string   `yaml:"coverage" hcl:"coverage,optional"`
	Dialect     string   `yaml:"dialect" hcl:"dialect,optional"`
	Quote       bool     `yaml:"quote" hcl:"quote,optional"`
	LogLevel    string   `yaml:"log_level" hcl:"log_level,optional"`
	LogFormat   string   `yaml:"log_format" hcl:"log_format,optional"`
}

// Default values.
const (
	DefaultGroupBy   = "value, footprint, dnp"
	DefaultCoverage  = "check"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the built-in configuration. An empty Format means the
// report format follows the output file extension.
func Default() Config {
	return Config{
		GroupBy:   DefaultGroupBy,
		Coverage:  DefaultCoverage,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load reads path on top of Default. The format is chosen by extension:
// .yaml/.yml for YAML, .hcl for HCL.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".hcl":
		err = decodeHCL(data, path, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %s (use .yaml, .yml or .hcl)", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode YAML: %w", err)
	}
	return nil
}

func decodeHCL(data []byte, filename string, cfg *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL: %w", diags)
	}
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %w", diags)
	}
	return nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if err := oneOf("coverage", c.Coverage, "check", "reject", "ignore"); err != nil {
		return err
	}
	if err := oneOf("log_level", c.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	return oneOf("log_format", c.LogFormat, "text", "json")
}

func oneOf(name, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q: must be one of %s", name, value, strings.Join(allowed, ", "))
}
