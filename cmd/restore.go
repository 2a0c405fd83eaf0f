// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"czanon/internal/document"
	jsonformat "czanon/internal/formatters/json"
	"czanon/internal/restore"
	"czanon/internal/store"
)

var (
	restoreMap string
	restoreRun string
	restoreOut string
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Put the original values back into an anonymised document",
	Long: `Restore replaces every [[CATEGORY_N]] tag with the first value recorded for
it: the canonical name for persons, the original text for everything else.
Passwords and API keys were never recorded and come back as ********.

The tag map comes from a JSON map written by anonymize (--map) or from a run
in the archive (--run, "latest" for the newest one).

Example:
  czanon restore smlouva_anon.docx --map smlouva_map.json
  czanon restore smlouva_anon.docx --run latest`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().StringVar(&restoreMap, "map", "", "JSON tag map written by anonymize")
	restoreCmd.Flags().StringVar(&restoreRun, "run", "", "archived run id, or latest")
	restoreCmd.Flags().StringVarP(&restoreOut, "output", "o", "", "output path (default: <name>_restored.<ext> next to the input)")
	restoreCmd.MarkFlagsMutuallyExclusive("map", "run")
	restoreCmd.MarkFlagsOneRequired("map", "run")
}

func runRestore(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tagMap, err := loadTagMap(ctx)
	if err != nil {
		return err
	}

	doc, err := document.Open(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	out := restoreOut
	if out == "" {
		out = restoredPath(input, doc.Format())
	}

	finishTiming := observer.StartTiming("restore", "document", input)
	stats := restore.Document(doc, tagMap)
	if err := doc.Save(out); err != nil {
		finishTiming(false, nil)
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	finishTiming(true, map[string]interface{}{"match_count": stats.Replaced})

	if len(stats.Unknown) > 0 {
		logger.Warn().Strs("tags", stats.Unknown).Msg("tags missing from the map were left in place")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Obnoveno tagů: %d\n - %s\n", stats.Replaced, out)
	return nil
}

func loadTagMap(ctx context.Context) (map[string][]string, error) {
	if restoreMap != "" {
		data, err := os.ReadFile(filepath.Clean(restoreMap))
		if err != nil {
			return nil, fmt.Errorf("failed to read tag map: %w", err)
		}
		return jsonformat.Parse(data)
	}

	archive, err := store.Open(ctx, cfg.Archive.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	run, err := archive.Run(ctx, restoreRun)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("run %q is not in the archive %s", restoreRun, cfg.Archive.Path)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("run_id", run.ID).Str("file_path", run.Input).Msg("restoring from archived run")
	return archive.TagMap(ctx, run.ID)
}

// restoredPath turns dir/name_anon.docx into dir/name_restored.docx.
func restoredPath(input string, format document.Format) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	base = strings.TrimSuffix(base, "_anon")
	return filepath.Join(filepath.Dir(input), base+"_restored"+format.OutputExtension())
}
