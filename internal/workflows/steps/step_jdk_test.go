package steps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/stretchr/testify/require"
	"github.com/workbenchlabs/workbench/pkg/profile"
	"github.com/workbenchlabs/workbench/pkg/software"
)

func jdkTestProvider(t *testing.T, installDir, profilePath string) func() (*software.JDKInstaller, error) {
	t.Helper()

	return func() (*software.JDKInstaller, error) {
		profileManager, err := profile.NewManager(profilePath, nil)
		if err != nil {
			return nil, err
		}

		return software.NewJDKInstaller(
			software.WithJDKVersion("21.0.4"),
			software.WithJDKDownloadURL("https://example.com/temurin.tar.gz"),
			software.WithJDKChecksum(strings.Repeat("a", 64)),
			software.WithJDKDownloadDir(filepath.Join(t.TempDir(), "downloads")),
			software.WithJDKInstallDir(installDir),
			software.WithJDKProfile(profileManager),
		)
	}
}

func TestInstallJDK_SkipsWhenPresent(t *testing.T) {
	installDir := filepath.Join(t.TempDir(), "java", "current")
	require.NoError(t, os.MkdirAll(filepath.Join(installDir, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(installDir, "bin", "java"), []byte("elf"), 0o755))

	provider := jdkTestProvider(t, installDir, filepath.Join(t.TempDir(), ".bashrc"))

	report := buildAndExecute(t, installJDK(provider))
	require.Equal(t, automa.StatusSkipped, report.Status)
	require.Equal(t, "true", report.Metadata[AlreadyInstalled])
}

func TestConfigureJDK_AppendsProfileOnce(t *testing.T) {
	installDir := filepath.Join(t.TempDir(), "java", "current")
	profilePath := filepath.Join(t.TempDir(), ".bashrc")
	provider := jdkTestProvider(t, installDir, profilePath)

	report := buildAndExecute(t, configureJDK(provider))
	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, "true", report.Metadata[ConfiguredByThisStep])

	// second run sees the marker and skips
	report = buildAndExecute(t, configureJDK(provider))
	require.Equal(t, automa.StatusSkipped, report.Status)
	require.Equal(t, "true", report.Metadata[AlreadyConfigured])

	content, err := os.ReadFile(profilePath)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(content), "export JAVA_HOME"))
}
