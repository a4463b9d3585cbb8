// SPDX-License-Identifier: Apache-2.0

package software

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/workbenchlabs/workbench/internal/core"
	"github.com/workbenchlabs/workbench/pkg/fsx"
	"github.com/workbenchlabs/workbench/pkg/profile"
)

const (
	jdkSoftwareName  = "temurin-jdk"
	jdkProfileMarker = "java"
)

// JDKInstaller installs a pinned Temurin JDK release from a tarball.
// Download fetches and checksums the archive, Extract unpacks it into the
// scratch workspace, Install moves the release under the Java base directory,
// and Configure appends JAVA_HOME exports to a shell profile.
type JDKInstaller struct {
	downloader  *Downloader
	fileManager fsx.Manager
	profile     *profile.Manager

	version     string
	downloadURL string
	checksum    string // sha256, hex encoded

	downloadDir string
	stagingDir  string
	installDir  string
}

type jdkOption func(*JDKInstaller)

func WithJDKVersion(version string) jdkOption {
	return func(j *JDKInstaller) {
		j.version = version
	}
}

func WithJDKDownloadURL(url string) jdkOption {
	return func(j *JDKInstaller) {
		j.downloadURL = url
	}
}

func WithJDKChecksum(sha256Hex string) jdkOption {
	return func(j *JDKInstaller) {
		j.checksum = sha256Hex
	}
}

func WithJDKDownloadDir(dir string) jdkOption {
	return func(j *JDKInstaller) {
		j.downloadDir = dir
	}
}

func WithJDKInstallDir(dir string) jdkOption {
	return func(j *JDKInstaller) {
		j.installDir = dir
	}
}

func WithJDKDownloader(d *Downloader) jdkOption {
	return func(j *JDKInstaller) {
		j.downloader = d
	}
}

func WithJDKFileManager(m fsx.Manager) jdkOption {
	return func(j *JDKInstaller) {
		j.fileManager = m
	}
}

func WithJDKProfile(p *profile.Manager) jdkOption {
	return func(j *JDKInstaller) {
		j.profile = p
	}
}

func NewJDKInstaller(opts ...jdkOption) (*JDKInstaller, error) {
	j := &JDKInstaller{
		downloader:  NewDownloader(),
		fileManager: fsx.NewManager(),
		downloadDir: core.Paths().DownloadsDir,
		installDir:  core.Paths().JavaHomeDir,
	}

	for _, opt := range opts {
		opt(j)
	}

	if j.downloadURL == "" {
		return nil, NewInstallationError(nil, jdkSoftwareName, j.version)
	}

	if j.stagingDir == "" {
		j.stagingDir = path.Join(j.downloadDir, "jdk-staging")
	}

	return j, nil
}

// ArchivePath is where the downloaded tarball lands on disk.
func (j *JDKInstaller) ArchivePath() string {
	return path.Join(j.downloadDir, path.Base(j.downloadURL))
}

// Download fetches the pinned release tarball and verifies its checksum.
// A previously downloaded archive with a valid checksum is reused.
func (j *JDKInstaller) Download() error {
	if err := j.fileManager.CreateDirectory(j.downloadDir, true); err != nil {
		return NewDownloadError(err, j.downloadURL, 0)
	}

	archive := j.ArchivePath()
	if _, exists, err := j.fileManager.PathExists(archive); err == nil && exists {
		if err := j.downloader.VerifyChecksum(archive, j.checksum, "sha256"); err == nil {
			return nil
		}

		// stale or corrupt download, fetch again
		if err := j.fileManager.RemoveAll(archive); err != nil {
			return NewDownloadError(err, j.downloadURL, 0)
		}
	}

	if err := j.downloader.Download(j.downloadURL, archive); err != nil {
		return err
	}

	return j.downloader.VerifyChecksum(archive, j.checksum, "sha256")
}

// Extract unpacks the tarball into a staging directory inside the workspace.
func (j *JDKInstaller) Extract() error {
	if err := j.fileManager.RemoveAll(j.stagingDir); err != nil {
		return NewExtractionError(err, j.ArchivePath(), j.stagingDir)
	}

	if err := j.fileManager.CreateDirectory(j.stagingDir, true); err != nil {
		return NewExtractionError(err, j.ArchivePath(), j.stagingDir)
	}

	return j.downloader.Extract(j.ArchivePath(), j.stagingDir)
}

// extractedRoot finds the single top-level directory the tarball unpacked to.
func (j *JDKInstaller) extractedRoot() (string, error) {
	entries, err := os.ReadDir(j.stagingDir)
	if err != nil {
		return "", NewExtractionError(err, j.ArchivePath(), j.stagingDir)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	if len(dirs) != 1 {
		return "", NewExtractionError(
			fmt.Errorf("expected a single top-level directory, found %d", len(dirs)),
			j.ArchivePath(), j.stagingDir)
	}

	return path.Join(j.stagingDir, dirs[0]), nil
}

// Install moves the unpacked release into the install directory. The move
// runs through sudo since the Java base directory is root owned.
func (j *JDKInstaller) Install() error {
	root, err := j.extractedRoot()
	if err != nil {
		return err
	}

	parent := filepath.Dir(j.installDir)
	if err := RunCmd("sudo", "mkdir", "-p", parent); err != nil {
		return NewInstallationError(err, jdkSoftwareName, j.version)
	}

	if err := RunCmd("sudo", "rm", "-rf", j.installDir); err != nil {
		return NewInstallationError(err, jdkSoftwareName, j.version)
	}

	if err := RunCmd("sudo", "mv", root, j.installDir); err != nil {
		return NewInstallationError(err, jdkSoftwareName, j.version)
	}

	return nil
}

// IsInstalled reports whether the java launcher already exists under the
// install directory.
func (j *JDKInstaller) IsInstalled() (bool, error) {
	_, exists, err := j.fileManager.PathExists(path.Join(j.installDir, "bin", "java"))
	if err != nil {
		return false, NewFileSystemError(err)
	}

	return exists, nil
}

// Verify runs the installed launcher and checks it reports the pinned version.
func (j *JDKInstaller) Verify() error {
	out, err := RunCmdOutput(path.Join(j.installDir, "bin", "java"), "-version")
	if err != nil {
		return NewInstallationError(err, jdkSoftwareName, j.version)
	}

	if j.version != "" && !strings.Contains(out, j.version) {
		return NewInstallationError(
			fmt.Errorf("java reported %q, want version %s", out, j.version),
			jdkSoftwareName, j.version)
	}

	return nil
}

// ProfileBlock is the managed profile snippet exporting JAVA_HOME.
func (j *JDKInstaller) ProfileBlock() profile.Block {
	return profile.Block{
		Marker: jdkProfileMarker,
		Lines: []string{
			fmt.Sprintf("export JAVA_HOME=%q", j.installDir),
			`export PATH="$JAVA_HOME/bin:$PATH"`,
		},
	}
}

// Configure appends the JAVA_HOME exports to the shell profile, at most once.
func (j *JDKInstaller) Configure() error {
	if j.profile == nil {
		return NewConfigurationError(fmt.Errorf("no shell profile configured"), jdkSoftwareName)
	}

	if _, err := j.profile.Ensure(j.ProfileBlock()); err != nil {
		return NewConfigurationError(err, jdkSoftwareName)
	}

	return nil
}

func (j *JDKInstaller) IsConfigured() (bool, error) {
	if j.profile == nil {
		return false, nil
	}

	ok, err := j.profile.Contains(j.ProfileBlock())
	if err != nil {
		return false, NewConfigurationError(err, jdkSoftwareName)
	}

	return ok, nil
}
