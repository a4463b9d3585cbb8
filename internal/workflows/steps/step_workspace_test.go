package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/stretchr/testify/require"
	"github.com/workbenchlabs/workbench/internal/core"
)

func TestSetupWorkspace_CreatesDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "scratch")
	ws, err := core.NewWorkspace(core.Paths().RebaseTemp(base), nil)
	require.NoError(t, err)

	report := buildAndExecute(t, SetupWorkspace(ws))
	require.Equal(t, automa.StatusSuccess, report.Status)

	for _, dir := range ws.Paths().WorkspaceDirectories() {
		info, statErr := os.Stat(dir)
		require.NoError(t, statErr)
		require.True(t, info.IsDir())
	}
}
