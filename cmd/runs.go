// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"czanon/internal/formatters"
	"czanon/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived runs",
	Long: `Runs lists documents anonymised with --archive, newest first. The archive
holds the original values of every tag, so keep it as safe as the documents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ctx context.Context, archive *store.Archive) error {
			runs, err := archive.Runs(ctx, runsLimit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Archiv je prázdný.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tZAHÁJENO\tOSOBY\tTAGY\tÚNIKY\tVSTUP")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
					r.ID, r.Started.Local().Format("2006-01-02 15:04:05"), r.Persons, r.Tags, r.Leaks, r.Input)
			}
			return tw.Flush()
		})
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id|latest>",
	Short: "Print the grouped report of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ctx context.Context, archive *store.Archive) error {
			run, err := archive.Run(ctx, args[0])
			if err != nil {
				return err
			}
			tagMap, err := archive.TagMap(ctx, run.ID)
			if err != nil {
				return err
			}
			report, err := formatters.Export("text", formatters.Report{TagMap: tagMap},
				formatters.FormatterOptions{NoColor: color.NoColor})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n\n%s", run.ID, run.Input, run.Output, report)
			return nil
		})
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Remove runs and their tag values from the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(ctx context.Context, archive *store.Archive) error {
			for _, id := range args {
				if err := archive.Delete(ctx, id); err != nil {
					return err
				}
				logger.Info().Str("run_id", id).Msg("run deleted")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd, runsDeleteCmd)

	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to list, 0 for all")
}

func withArchive(cmd *cobra.Command, fn func(ctx context.Context, archive *store.Archive) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	archive, err := store.Open(ctx, cfg.Archive.Path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	if err := fn(ctx, archive); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w in %s", err, cfg.Archive.Path)
		}
		return err
	}
	return nil
}
