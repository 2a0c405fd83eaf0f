// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"czanon/internal/formatters"
	_ "czanon/internal/formatters/json"
	_ "czanon/internal/formatters/text"
	_ "czanon/internal/formatters/yaml"
	"czanon/internal/gazetteer"
	"czanon/internal/morph"
	"czanon/internal/output"
	"czanon/internal/parallel"
	"czanon/internal/pipeline"
	"czanon/internal/resilience"
	"czanon/internal/store"
)

// exitLeaks is returned when leaks were found and audit.fail_on_leak is set.
const exitLeaks = 2

var (
	quiet bool
	jobs  int
)

var anonymizeCmd = &cobra.Command{
	Use:     "anonymize <file>...",
	Aliases: []string{"anon"},
	Short:   "Replace personal data in documents with tags",
	Long: `Anonymize processes each document and writes, next to it or into --out-dir:

  <name>_anon.<ext>   the redacted document (.txt for PDF input)
  <name>_map.json     tag map for restoring the original values
  <name>_map.txt      grouped report of everything that was replaced

When an output file is locked by another application all names of that
document get a _YYYYMMDD_HHMMSS suffix.

Example:
  czanon anonymize smlouva.docx
  czanon anonymize --names jmena.csv --names-encoding windows-1250 *.docx
  czanon anonymize --format json,yaml --out-dir anon/ zapis.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnonymize,
}

func init() {
	rootCmd.AddCommand(anonymizeCmd)

	flags := anonymizeCmd.Flags()
	flags.String("out-dir", "", "directory for the outputs (default: next to each input)")
	flags.StringSlice("format", nil, "map formats to write: json, text, yaml (default: json,text)")
	flags.String("names", "", "first-name library (JSON or CSV)")
	flags.String("names-format", "", "format of the names file: json, csv or auto")
	flags.String("names-encoding", "", "encoding of a CSV names file, e.g. windows-1250")
	flags.Bool("embedded-names", true, "merge the built-in first-name list")
	flags.Bool("fail-on-leak", false, "exit with status 2 when the final audit finds possible leaks")
	flags.Bool("archive", false, "store the run and its tag map in the archive")
	flags.BoolVarP(&quiet, "quiet", "q", false, "print nothing but errors")
	flags.IntVarP(&jobs, "jobs", "j", 0, "documents processed at once (default: number of CPUs, at most 8)")

	_ = viper.BindPFlag("output.dir", flags.Lookup("out-dir"))
	_ = viper.BindPFlag("output.formats", flags.Lookup("format"))
	_ = viper.BindPFlag("gazetteer.path", flags.Lookup("names"))
	_ = viper.BindPFlag("gazetteer.format", flags.Lookup("names-format"))
	_ = viper.BindPFlag("gazetteer.encoding", flags.Lookup("names-encoding"))
	_ = viper.BindPFlag("gazetteer.use_embedded", flags.Lookup("embedded-names"))
	_ = viper.BindPFlag("audit.fail_on_leak", flags.Lookup("fail-on-leak"))
	_ = viper.BindPFlag("archive.enabled", flags.Lookup("archive"))
}

func runAnonymize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	names, warnings := gazetteer.Load(cfg.GazetteerOptions())
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	logger.Debug().Int("names", names.Len()).Msg("gazetteer loaded")

	p := pipeline.New(pipeline.Options{
		Engine:    morph.NewEngine(names),
		Stoplists: cfg.Stoplists(),
		Variants:  morph.NewVariantCache(cfg.Cache.VariantTTL),
		Observer:  observer,
		Logger:    &logger,
	})

	targets, err := planTargets(args)
	if err != nil {
		return err
	}

	var archive *store.Archive
	if cfg.Archive.Enabled {
		if archive, err = store.Open(ctx, cfg.Archive.Path); err != nil {
			return pipeline.NewProcessingError(pipeline.ErrorTypeArchive, "failed to open archive", cfg.Archive.Path, "store", err)
		}
		defer archive.Close()
	}

	process := func(ctx context.Context, job *parallel.Job) (*pipeline.Result, error) {
		return anonymizeFile(ctx, p, archive, job.FilePath, targets[job.Index])
	}
	processor := parallel.NewParallelProcessor(jobs, process, observer)
	results, stats, err := processor.ProcessFiles(ctx, args, nil)

	out := cmd.OutOrStdout()
	if quiet {
		out = io.Discard
	}
	for i, r := range results {
		if r == nil {
			continue
		}
		if r.Error != nil {
			logger.Error().Err(r.Error).Str("file_path", r.FilePath).Msg("document not anonymised")
			continue
		}
		fmt.Fprintf(out, "Zpracováno: %s\n", r.FilePath)
		printSummary(out, targets[i], r.Output)
		for j := range r.Output.Leaks {
			r.Output.Leaks[j].Clear()
		}
	}
	logger.Debug().Int("files", stats.TotalFiles).Int("workers", stats.WorkerCount).
		Int64("duration_ms", stats.TotalDuration.Milliseconds()).Msg("batch finished")

	if err != nil {
		return err
	}
	if stats.FailedFiles > 0 {
		return fmt.Errorf("%d of %d documents failed", stats.FailedFiles, stats.TotalFiles)
	}
	if stats.TotalLeaks > 0 && cfg.Audit.FailOnLeak {
		return &exitError{code: exitLeaks, msg: fmt.Sprintf("final audit found %d possible leaks", stats.TotalLeaks)}
	}
	return nil
}

// planTargets names the outputs of every input up front so two inputs never
// write the same file.
func planTargets(inputs []string) ([]output.Targets, error) {
	planner := output.NewPlanner(cfg.Output.Dir, observer)
	owner := map[string]string{}
	targets := make([]output.Targets, len(inputs))
	for i, input := range inputs {
		t, err := planner.Plan(input, cfg.Output.Formats)
		if err != nil {
			return nil, pipeline.NewProcessingError(pipeline.ErrorTypeConfiguration, "cannot name outputs", input, "output", err)
		}
		if t.Timestamped {
			logger.Warn().Str("file_path", input).Msg("output files are open in another application, writing timestamped copies")
		}
		paths := []string{t.Document}
		for _, path := range t.Maps {
			paths = append(paths, path)
		}
		for _, path := range paths {
			if other, ok := owner[path]; ok {
				return nil, fmt.Errorf("%s and %s would both write %s", other, input, path)
			}
			owner[path] = input
		}
		targets[i] = t
	}
	return targets, nil
}

func anonymizeFile(ctx context.Context, p *pipeline.Pipeline, archive *store.Archive, input string, targets output.Targets) (*pipeline.Result, error) {
	if _, err := os.Stat(input); err != nil {
		return nil, pipeline.NewProcessingError(pipeline.ErrorTypeDocumentRead, "file not found", input, "cli", err)
	}
	started := time.Now()

	res, err := p.ProcessFile(input, targets.Document)
	if err != nil {
		return nil, err
	}

	report := formatters.Report{TagMap: res.TagMap()}
	if err := output.WriteMaps(targets, report, formatters.FormatterOptions{}); err != nil {
		return nil, pipeline.NewProcessingError(pipeline.ErrorTypeDocumentWrite, "failed to write tag maps", input, "output", err)
	}

	if archive != nil {
		run := &store.Run{
			Input:   input,
			Output:  targets.Document,
			Started: started,
			Persons: res.Stats.Persons,
			Tags:    res.Stats.Tags,
			Leaks:   res.Stats.Leaks,
		}
		err := resilience.RetryWithBackoff(ctx, resilience.ArchiveRetryConfig(), func(ctx context.Context) error {
			return archive.Save(ctx, run, report.TagMap)
		})
		if err != nil {
			// the outputs are already written, a missing archive entry is not fatal
			logger.Error().Err(pipeline.NewProcessingError(pipeline.ErrorTypeArchive, "failed to archive run", input, "store", err)).Msg("run not archived")
		} else {
			logger.Info().Str("run_id", run.ID).Str("file_path", input).Msg("run archived")
		}
	}
	return res, nil
}

func printSummary(w io.Writer, t output.Targets, res *pipeline.Result) {
	good := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w, good.Sprint("Výstupy:"))
	fmt.Fprintf(w, " - %s\n", t.Document)
	formats := make([]string, 0, len(t.Maps))
	for name := range t.Maps {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	for _, name := range formats {
		fmt.Fprintf(w, " - %s\n", t.Maps[name])
	}

	fmt.Fprintln(w, good.Sprint("Statistiky:"))
	fmt.Fprintf(w, " - Nalezeno osob: %d\n", res.Stats.Persons)
	fmt.Fprintf(w, " - Celkem tagů: %d\n", res.Stats.Tags)
	if res.Stats.Failed > 0 {
		fmt.Fprintf(w, " - Nezpracované odstavce: %d\n", res.Stats.Failed)
	}

	if len(res.Leaks) > 0 {
		fmt.Fprintln(w, warn.Sprint("VAROVÁNÍ: závěrečná kontrola našla možné úniky:"))
		for _, msg := range res.Warnings() {
			fmt.Fprintf(w, "   - %s\n", msg)
		}
		fmt.Fprintln(w, warn.Sprint("Doporučuji zkontrolovat výstupní dokument!"))
	}
	fmt.Fprintln(w)
}
