package steps

import (
	"context"
	"strings"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/bluet/syspkg"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
	"github.com/workbenchlabs/workbench/pkg/software"
)

type fakePackage struct {
	name      string
	installed bool
}

func (p fakePackage) Name() string                            { return p.name }
func (p fakePackage) Install() (*syspkg.PackageInfo, error)   { return nil, nil }
func (p fakePackage) Uninstall() (*syspkg.PackageInfo, error) { return nil, nil }
func (p fakePackage) Upgrade() (*syspkg.PackageInfo, error)   { return nil, nil }
func (p fakePackage) Info() (*syspkg.PackageInfo, error)      { return nil, nil }
func (p fakePackage) IsInstalled() bool                       { return p.installed }

func stubMissingPackages(t *testing.T, fn func(catalog packageCatalog) ([]string, error)) {
	t.Helper()
	orig := missingPackages
	t.Cleanup(func() { missingPackages = orig })
	missingPackages = fn
}

func stubRunCmd(t *testing.T, fn func(name string, args ...string) error) {
	t.Helper()
	orig := RunCmd
	t.Cleanup(func() { RunCmd = orig })
	RunCmd = fn
}

func stubRunCmdOutput(t *testing.T, fn func(script string) (string, error)) {
	t.Helper()
	orig := RunCmdOutput
	t.Cleanup(func() { RunCmdOutput = orig })
	RunCmdOutput = fn
}

func stubLookPath(t *testing.T, fn func(program string) (string, error)) {
	t.Helper()
	orig := LookPath
	t.Cleanup(func() { LookPath = orig })
	LookPath = fn
}

func buildAndExecute(t *testing.T, b automa.Builder) *automa.Report {
	t.Helper()
	step, err := b.Build()
	require.NoError(t, err)
	return step.Execute(context.Background())
}

func TestInstallSystemPackages_SkipsWhenAllPresent(t *testing.T) {
	stubMissingPackages(t, func(catalog packageCatalog) ([]string, error) {
		return nil, nil
	})
	stubRunCmd(t, func(name string, args ...string) error {
		t.Errorf("no command should run when everything is installed, got: %s %v", name, args)
		return nil
	})

	report := buildAndExecute(t, InstallBasePackages([]string{"curl", "git"}))
	require.Equal(t, automa.StatusSkipped, report.Status)
	require.Equal(t, "true", report.Metadata[AlreadyInstalled])
}

func TestInstallSystemPackages_InstallsOnlyMissing(t *testing.T) {
	stubMissingPackages(t, func(catalog packageCatalog) ([]string, error) {
		return []string{"git"}, nil
	})

	var got string
	stubRunCmd(t, func(name string, args ...string) error {
		got = name + " " + strings.Join(args, " ")
		return nil
	})

	report := buildAndExecute(t, InstallBasePackages([]string{"curl", "git"}))
	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, "sudo apt-get install -y git", got)
	require.Equal(t, "git", report.Metadata[InstalledByThisStep])
}

func TestInstallSystemPackages_FailureAborts(t *testing.T) {
	stubMissingPackages(t, func(catalog packageCatalog) ([]string, error) {
		return []string{"curl"}, nil
	})
	stubRunCmd(t, func(name string, args ...string) error {
		return errorx.ExternalError.New("apt broke")
	})

	report := buildAndExecute(t, InstallBasePackages([]string{"curl"}))
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
}

func TestUpdatePackageIndex(t *testing.T) {
	var got string
	stubRunCmd(t, func(name string, args ...string) error {
		got = name + " " + strings.Join(args, " ")
		return nil
	})

	report := buildAndExecute(t, UpdatePackageIndex())
	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Equal(t, "sudo apt-get update -y", got)
}

func TestUpdatePackageIndex_Failure(t *testing.T) {
	stubRunCmd(t, func(name string, args ...string) error {
		return errorx.ExternalError.New("no network")
	})

	report := buildAndExecute(t, UpdatePackageIndex())
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
}

func TestMissingPackages_FiltersInstalled(t *testing.T) {
	missing, err := missingPackages(func() ([]software.Package, error) {
		return []software.Package{
			fakePackage{name: "cmake", installed: true},
			fakePackage{name: "pkg-config", installed: false},
		}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"pkg-config"}, missing)
}

func TestMissingPackages_CatalogError(t *testing.T) {
	_, err := missingPackages(func() ([]software.Package, error) {
		return nil, errorx.IllegalState.New("no package manager")
	})
	require.Error(t, err)
}
