// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"czanon/internal/audit"
	"czanon/internal/document"
)

var auditCmd = &cobra.Command{
	Use:   "audit <file>",
	Short: "Check an anonymised document for values that look like personal data",
	Long: `Audit runs the final leak check on a document that was already anonymised,
for example after it was edited by hand. Text inside [[...]] tags is ignored.

The exit status is 2 when possible leaks were found.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	path := args[0]
	finishTiming := observer.StartTiming("audit", "scan", path)

	doc, err := document.Open(path)
	if err != nil {
		finishTiming(false, nil)
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	leaks := audit.Scan(strings.Join(document.Texts(doc), "\n"))
	finishTiming(true, map[string]interface{}{"match_count": len(leaks)})

	out := cmd.OutOrStdout()
	if len(leaks) == 0 {
		fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen, color.Bold).Sprint("OK:"), path)
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", color.New(color.FgYellow, color.Bold).Sprint("Možné úniky:"), path)
	for _, msg := range audit.Messages(leaks) {
		fmt.Fprintf(out, "   - %s\n", msg)
	}
	for i := range leaks {
		leaks[i].Clear()
	}
	return &exitError{code: exitLeaks, msg: fmt.Sprintf("%d possible leaks in %s", len(leaks), path)}
}
