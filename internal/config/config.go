// Package config loads run configuration for the pedigree engine: field
// widths for the fixed-width pedigree and marker files, storage mode, and
// logging options. Loading is layered the way the teacher CLI layers its
// YAML config: defaults, then an optional file, then environment
// overrides, via spf13/viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FieldWidths mirrors spec.md §6: field widths are all configurable and
// the fixed-width record length is their sum plus one (the newline).
type FieldWidths struct {
	FamID     int `mapstructure:"famid" yaml:"famid"`
	ID        int `mapstructure:"id" yaml:"id"`
	Father    int `mapstructure:"father" yaml:"father"`
	Mother    int `mapstructure:"mother" yaml:"mother"`
	Sex       int `mapstructure:"sex" yaml:"sex"`
	Twin      int `mapstructure:"twin" yaml:"twin"`
	Household int `mapstructure:"household" yaml:"household"`
	Genotype  int `mapstructure:"genotype" yaml:"genotype"`
}

// RecordLength is the sum of the pedigree-record widths plus the
// trailing newline, per spec.md §4.1.
func (w FieldWidths) RecordLength() int {
	return w.FamID + w.ID + w.Father + w.Mother + w.Sex + w.Twin + w.Household + 1
}

// StorageConfig selects the optional persistence backends described in
// SPEC_FULL.md §6: a BadgerDB overflow store for the identifier table and
// a SQLite-backed query index over the canonical pedigree.
type StorageConfig struct {
	Mode      string `mapstructure:"mode" yaml:"mode"` // "memory" | "badger" | "sqlite"
	BadgerDir string `mapstructure:"badger_dir" yaml:"badger_dir"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// OutputConfig mirrors the teacher's Output config block (color,
// progress bars) adapted to this engine's CLI.
type OutputConfig struct {
	Color    bool `mapstructure:"color" yaml:"color"`
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// LoggingConfig mirrors goarchive's LoggingConfig block.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Config is the full run configuration.
type Config struct {
	Widths  FieldWidths   `mapstructure:"widths" yaml:"widths"`
	XLinked []string      `mapstructure:"xlinked_loci" yaml:"xlinked_loci"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// Default returns the engine's built-in defaults, equal to SOLAR's
// classic ibdprep field widths.
func Default() *Config {
	return &Config{
		Widths: FieldWidths{
			FamID: 0, ID: 10, Father: 10, Mother: 10, Sex: 1, Twin: 2, Household: 10,
			Genotype: 12,
		},
		Storage: StorageConfig{Mode: "memory"},
		Output:  OutputConfig{Color: true, Progress: true},
		Logging: LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
	}
}

// Load reads configuration from the given path (YAML), falling back to
// Default() when path is empty. When a file is read, IBDPREP_-prefixed
// environment variables override the keys that file sets (viper's
// AutomaticEnv); with an empty path no environment override is applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("IBDPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return cfg, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// IsXLinked reports whether the named locus was configured as X-linked.
func (c *Config) IsXLinked(locus string) bool {
	for _, l := range c.XLinked {
		if l == locus {
			return true
		}
	}
	return false
}
