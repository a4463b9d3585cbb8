// SPDX-License-Identifier: Apache-2.0

package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func jdkBlock() Block {
	return Block{
		Marker: "workbench:jdk",
		Lines: []string{
			`export JAVA_HOME="/opt/java/current"`,
			`export PATH="$JAVA_HOME/bin:$PATH"`,
		},
	}
}

func TestEnsureAppendsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")

	mg, err := NewManager(path, nil)
	require.NoError(t, err)

	modified, err := mg.Ensure(jdkBlock())
	require.NoError(t, err)
	require.True(t, modified)

	// a second run must not touch the file
	modified, err = mg.Ensure(jdkBlock())
	require.NoError(t, err)
	require.False(t, modified)

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(payload), "export JAVA_HOME="))
	require.Equal(t, 1, strings.Count(string(payload), "# managed by workbench (workbench:jdk)"))
}

func TestEnsurePreservesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")
	require.NoError(t, os.WriteFile(path, []byte("alias ll='ls -la'\n"), 0o644))

	mg, err := NewManager(path, nil)
	require.NoError(t, err)

	_, err = mg.Ensure(jdkBlock())
	require.NoError(t, err)

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(payload), "alias ll='ls -la'\n"))
	require.Contains(t, string(payload), "JAVA_HOME")
}

func TestEnsureValidation(t *testing.T) {
	mg, err := NewManager(filepath.Join(t.TempDir(), ".profile"), nil)
	require.NoError(t, err)

	_, err = mg.Ensure(Block{Marker: "", Lines: []string{"x"}})
	require.Error(t, err)

	_, err = mg.Ensure(Block{Marker: "workbench:empty"})
	require.Error(t, err)
}

func TestNewManagerRequiresPath(t *testing.T) {
	_, err := NewManager("", nil)
	require.Error(t, err)
}

func TestContainsOnMissingFile(t *testing.T) {
	mg, err := NewManager(filepath.Join(t.TempDir(), ".profile"), nil)
	require.NoError(t, err)

	present, err := mg.Contains(jdkBlock())
	require.NoError(t, err)
	require.False(t, present)
}
