// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"czanon/internal/gazetteer"
	"czanon/internal/paths"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Where first names come from
	Gazetteer struct {
		Path        string `yaml:"path"`
		Format      string `yaml:"format"`   // json, csv or auto
		Encoding    string `yaml:"encoding"` // encoding of CSV lists, e.g. windows-1250
		UseEmbedded bool   `yaml:"use_embedded"`
	} `yaml:"gazetteer"`

	// Additions to the built-in stoplists
	Stoplist struct {
		ExtraSurnames []string `yaml:"extra_surnames"`
		ExtraRoles    []string `yaml:"extra_roles"`
	} `yaml:"stoplist"`

	Output struct {
		Dir     string   `yaml:"dir"` // empty writes next to the input
		Formats []string `yaml:"formats"`
		Color   string   `yaml:"color"` // auto, always or never
	} `yaml:"output"`

	Audit struct {
		FailOnLeak bool `yaml:"fail_on_leak"`
	} `yaml:"audit"`

	Archive struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"archive"`

	Logging struct {
		Level         string `yaml:"level"`
		Format        string `yaml:"format"`        // console or json
		Observability string `yaml:"observability"` // off, metrics or debug
	} `yaml:"logging"`

	Cache struct {
		VariantTTL time.Duration `yaml:"variant_ttl"`
	} `yaml:"cache"`
}

// Default returns the built-in configuration.
func Default() *Config {
	config := &Config{}

	config.Gazetteer.Path = ""
	config.Gazetteer.Format = "auto"
	config.Gazetteer.Encoding = "utf-8"
	config.Gazetteer.UseEmbedded = true

	config.Output.Formats = []string{"json", "text"}
	config.Output.Color = "auto"

	config.Archive.Enabled = false
	config.Archive.Path = paths.GetArchiveFile()

	config.Logging.Level = "info"
	config.Logging.Format = "console"
	config.Logging.Observability = "off"

	config.Cache.VariantTTL = 0
	return config
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// fields missing from the file keep their defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.Gazetteer.Path = paths.ExpandHome(config.Gazetteer.Path)
	config.Output.Dir = paths.ExpandHome(config.Output.Dir)
	config.Archive.Path = paths.ExpandHome(config.Archive.Path)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// FindConfigFile looks for a configuration file in the working directory and then
// in the configuration directory. It returns "" when there is none.
func FindConfigFile() string {
	for _, name := range []string{".czanon.yaml", ".czanon.yml", "czanon.yaml"} {
		if fileExists(name) {
			return name
		}
	}
	if path := paths.GetConfigFile(); fileExists(path) {
		return path
	}
	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ValidateConfig checks enumerated settings.
func ValidateConfig(config *Config) error {
	var problems []string
	check := func(field, value string, allowed ...string) {
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return
			}
		}
		problems = append(problems, fmt.Sprintf("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), value))
	}

	check("gazetteer.format", config.Gazetteer.Format, "auto", "json", "csv")
	check("output.color", config.Output.Color, "auto", "always", "never")
	check("logging.format", config.Logging.Format, "console", "json")
	check("logging.level", config.Logging.Level, "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled")
	check("logging.observability", config.Logging.Observability, "off", "metrics", "debug")
	if config.Cache.VariantTTL < 0 {
		problems = append(problems, "cache.variant_ttl must not be negative")
	}
	if config.Archive.Enabled && config.Archive.Path == "" {
		problems = append(problems, "archive.path is required when the archive is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// GazetteerOptions maps the gazetteer section onto loader options.
func (c *Config) GazetteerOptions() gazetteer.Options {
	format := c.Gazetteer.Format
	if strings.EqualFold(format, "auto") {
		format = ""
	}
	return gazetteer.Options{
		Path:        c.Gazetteer.Path,
		Format:      format,
		Encoding:    c.Gazetteer.Encoding,
		UseEmbedded: c.Gazetteer.UseEmbedded,
	}
}

// Stoplists returns the built-in stoplists extended with the configured words.
func (c *Config) Stoplists() *gazetteer.Stoplists {
	stop := gazetteer.DefaultStoplists()
	for _, w := range c.Stoplist.ExtraSurnames {
		stop.Surnames.Add(w)
	}
	for _, w := range c.Stoplist.ExtraRoles {
		stop.Roles.Add(w)
	}
	return stop
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns the default configuration
// together with the error so the caller can report it.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}
