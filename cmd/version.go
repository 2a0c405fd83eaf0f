// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"czanon/internal/version"
)

var (
	versionShort bool
	versionYAML  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// no configuration needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		b := version.Get()
		switch {
		case versionShort:
			fmt.Fprintln(cmd.OutOrStdout(), b.Version)
		case versionYAML:
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(b)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), b.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
	versionCmd.Flags().BoolVar(&versionYAML, "yaml", false, "print the build details as YAML")
	versionCmd.MarkFlagsMutuallyExclusive("short", "yaml")
}
