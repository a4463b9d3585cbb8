// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandLayout(t *testing.T) {
	require.Equal(t, "workbench", rootCmd.Use)

	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	require.Contains(t, names, "setup")
	require.Contains(t, names, "check")
	require.Contains(t, names, "version")

	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("output"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("version"))
}

func TestExecuteRequiresContext(t *testing.T) {
	err := Execute(nil)
	require.Error(t, err)
}
