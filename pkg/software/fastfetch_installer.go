// SPDX-License-Identifier: Apache-2.0

package software

import (
	"fmt"
	"path"

	"github.com/workbenchlabs/workbench/internal/core"
	"github.com/workbenchlabs/workbench/pkg/fsx"
)

const fastfetchSoftwareName = "fastfetch"

// FastFetchInstaller builds fastfetch from source. Download clones the pinned
// ref of the upstream repository into the scratch workspace, Install runs the
// cmake build and copies the binary into the local bin directory.
type FastFetchInstaller struct {
	fileManager fsx.Manager

	repoURL string
	ref     string

	sourceDir  string
	buildDir   string
	binaryPath string
}

type fastfetchOption func(*FastFetchInstaller)

func WithFastFetchRepo(url string) fastfetchOption {
	return func(f *FastFetchInstaller) {
		f.repoURL = url
	}
}

func WithFastFetchRef(ref string) fastfetchOption {
	return func(f *FastFetchInstaller) {
		f.ref = ref
	}
}

func WithFastFetchSourceDir(dir string) fastfetchOption {
	return func(f *FastFetchInstaller) {
		f.sourceDir = dir
	}
}

func WithFastFetchBinaryPath(p string) fastfetchOption {
	return func(f *FastFetchInstaller) {
		f.binaryPath = p
	}
}

func WithFastFetchFileManager(m fsx.Manager) fastfetchOption {
	return func(f *FastFetchInstaller) {
		f.fileManager = m
	}
}

func NewFastFetchInstaller(opts ...fastfetchOption) (*FastFetchInstaller, error) {
	f := &FastFetchInstaller{
		fileManager: fsx.NewManager(),
		sourceDir:   path.Join(core.Paths().SourcesDir, "fastfetch"),
		binaryPath:  path.Join(core.Paths().LocalBinDir, "fastfetch"),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.repoURL == "" {
		return nil, NewInstallationError(nil, fastfetchSoftwareName, f.ref)
	}

	if f.buildDir == "" {
		f.buildDir = path.Join(f.sourceDir, "build")
	}

	return f, nil
}

// Download shallow-clones the pinned ref into the scratch workspace.
// An existing clone is discarded first so the build always starts clean.
func (f *FastFetchInstaller) Download() error {
	if err := f.fileManager.RemoveAll(f.sourceDir); err != nil {
		return NewDownloadError(err, f.repoURL, 0)
	}

	args := []string{"clone", "--depth", "1"}
	if f.ref != "" {
		args = append(args, "--branch", f.ref)
	}
	args = append(args, f.repoURL, f.sourceDir)

	if err := RunCmd("git", args...); err != nil {
		return NewDownloadError(err, f.repoURL, 0)
	}

	return nil
}

// Extract is a no-op, the source arrives as a git checkout.
func (f *FastFetchInstaller) Extract() error {
	return nil
}

// Install configures and runs the cmake build, then copies the built binary
// into the local bin directory through sudo.
func (f *FastFetchInstaller) Install() error {
	configure := []string{"-S", f.sourceDir, "-B", f.buildDir, "-DCMAKE_BUILD_TYPE=Release"}
	if err := RunCmd("cmake", configure...); err != nil {
		return NewBuildError(err, fastfetchSoftwareName, "cmake configure")
	}

	if err := RunCmd("cmake", "--build", f.buildDir, "--target", "fastfetch"); err != nil {
		return NewBuildError(err, fastfetchSoftwareName, "cmake --build")
	}

	built := path.Join(f.buildDir, "fastfetch")
	if _, exists, err := f.fileManager.PathExists(built); err != nil || !exists {
		return NewFileNotFoundError(built)
	}

	if err := RunCmd("sudo", "install", "-m", "0755", built, f.binaryPath); err != nil {
		return NewInstallationError(err, fastfetchSoftwareName, f.ref)
	}

	return nil
}

// IsInstalled reports whether a fastfetch binary resolves on PATH or at the
// pinned install location.
func (f *FastFetchInstaller) IsInstalled() (bool, error) {
	if _, err := LookPath("fastfetch"); err == nil {
		return true, nil
	}

	_, exists, err := f.fileManager.PathExists(f.binaryPath)
	if err != nil {
		return false, NewFileSystemError(err)
	}

	return exists, nil
}

// Verify runs the installed binary and checks it prints a version line.
func (f *FastFetchInstaller) Verify() error {
	out, err := RunCmdOutput(f.binaryPath, "--version")
	if err != nil {
		return NewInstallationError(err, fastfetchSoftwareName, f.ref)
	}

	if out == "" {
		return NewInstallationError(fmt.Errorf("empty version output"), fastfetchSoftwareName, f.ref)
	}

	return nil
}

func (f *FastFetchInstaller) Configure() error {
	return nil
}

func (f *FastFetchInstaller) IsConfigured() (bool, error) {
	return true, nil
}
