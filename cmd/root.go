// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"czanon/internal/config"
	"czanon/internal/observability"
)

var (
	cfgFile string

	// set up by setup before any subcommand runs
	cfg      *config.Config
	logger   zerolog.Logger
	observer *observability.StandardObserver
)

var rootCmd = &cobra.Command{
	Use:   "czanon",
	Short: "Anonymise personal data in Czech documents",
	Long: `czanon replaces personal data in Czech documents (names in all their
inflected forms, birth numbers, IČO/DIČ, bank accounts, cards, phones,
e-mails, addresses, dates and more) with stable tags such as [[PERSON_1]].

For every document it writes the redacted copy, a JSON tag map that can
restore the original values and a grouped text report.

Supported inputs: .docx, .txt, .md, .html, .htm and .pdf (read only, the
redacted copy of a PDF is written as text).`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: .czanon.yaml or <config dir>/czanon/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")
	flags.String("observability", "", "operation tracing: off, metrics or debug")
	flags.String("color", "", "colour output: auto, always or never")
	flags.Bool("no-color", false, "disable coloured output")
	flags.String("archive-path", "", "path of the run archive database")

	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("logging.observability", flags.Lookup("observability"))
	_ = viper.BindPFlag("output.color", flags.Lookup("color"))
	_ = viper.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = viper.BindPFlag("archive.path", flags.Lookup("archive-path"))
}

// initConfig wires CZANON_* environment variables, e.g. CZANON_LOGGING_LEVEL.
func initConfig() {
	viper.SetEnvPrefix("CZANON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// setup loads the configuration file, lets flags and environment override it and
// prepares logging, colours and the observer.
func setup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = viper.GetString("config")
	}

	var loaded *config.Config
	var fileErr error
	if path != "" {
		var err error
		if loaded, err = config.LoadConfig(path); err != nil {
			return err
		}
	} else {
		// a broken config file found on the search path only warns
		path = config.FindConfigFile()
		loaded, fileErr = config.LoadConfigOrDefault(path)
	}
	applyOverrides(loaded)
	if err := config.ValidateConfig(loaded); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	cfg = loaded

	configureColor(cfg.Output.Color)

	var err error
	if logger, err = newLogger(cfg, os.Stderr); err != nil {
		return err
	}
	log.Logger = logger
	switch {
	case fileErr != nil:
		logger.Warn().Err(fileErr).Str("config_file", path).Msg("configuration ignored, using defaults")
	case path != "":
		logger.Debug().Str("config_file", path).Msg("configuration loaded")
	}

	level := observability.ParseLevel(cfg.Logging.Observability)
	if level == observability.ObservabilityDebug {
		observer = observability.NewDebugObserver(os.Stderr, logger).StandardObserver
	} else {
		observer = observability.NewStandardObserver(level, logger)
	}
	return nil
}

// applyOverrides copies every setting given by flag or environment over the file
// configuration.
func applyOverrides(c *config.Config) {
	if viper.IsSet("gazetteer.path") {
		c.Gazetteer.Path = viper.GetString("gazetteer.path")
	}
	if viper.IsSet("gazetteer.format") {
		c.Gazetteer.Format = viper.GetString("gazetteer.format")
	}
	if viper.IsSet("gazetteer.encoding") {
		c.Gazetteer.Encoding = viper.GetString("gazetteer.encoding")
	}
	if viper.IsSet("gazetteer.use_embedded") {
		c.Gazetteer.UseEmbedded = viper.GetBool("gazetteer.use_embedded")
	}
	if viper.IsSet("output.dir") {
		c.Output.Dir = viper.GetString("output.dir")
	}
	if viper.IsSet("output.formats") {
		c.Output.Formats = viper.GetStringSlice("output.formats")
	}
	if viper.IsSet("output.color") {
		c.Output.Color = viper.GetString("output.color")
	}
	if viper.GetBool("no_color") {
		c.Output.Color = "never"
	}
	if viper.IsSet("audit.fail_on_leak") {
		c.Audit.FailOnLeak = viper.GetBool("audit.fail_on_leak")
	}
	if viper.IsSet("archive.enabled") {
		c.Archive.Enabled = viper.GetBool("archive.enabled")
	}
	if viper.IsSet("archive.path") {
		c.Archive.Path = viper.GetString("archive.path")
	}
	if viper.IsSet("logging.level") {
		c.Logging.Level = viper.GetString("logging.level")
	}
	if viper.IsSet("logging.format") {
		c.Logging.Format = viper.GetString("logging.format")
	}
	if viper.IsSet("logging.observability") {
		c.Logging.Observability = viper.GetString("logging.observability")
	}
	if viper.IsSet("cache.variant_ttl") {
		c.Cache.VariantTTL = viper.GetDuration("cache.variant_ttl")
	}
}

// newLogger writes human-readable lines to a terminal and JSON everywhere else.
func newLogger(c *config.Config, w *os.File) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}

	var out io.Writer = w
	if strings.EqualFold(c.Logging.Format, "console") && isTerminal(w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: color.NoColor}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func configureColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stdout)
	}
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
