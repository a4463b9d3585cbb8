// SPDX-License-Identifier: Apache-2.0

// Package version wires the `workbench version` subcommand.
package version

import (
	"github.com/spf13/cobra"
	"github.com/workbenchlabs/workbench/internal/doctor"
	"github.com/workbenchlabs/workbench/internal/version"
)

var flagOutputFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Long:  "Show the build version, commit and Go runtime of this binary",
	Run: func(cmd *cobra.Command, args []string) {
		PrintVersion(cmd, flagOutputFormat)
	},
}

func init() {
	versionCmd.PersistentFlags().StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format (yaml|json)")
}

// GetCmd returns the version subcommand for registration on the root command.
func GetCmd() *cobra.Command {
	return versionCmd
}

// PrintVersion writes the build identity to the command's output stream. The
// root command reuses it for the --version flag.
func PrintVersion(cmd *cobra.Command, format string) {
	output, err := version.Get().Format(format)
	if err != nil {
		doctor.CheckErr(cmd.Context(), err)
	}
	cmd.Println(output)
}
