// SPDX-License-Identifier: Apache-2.0

package core

import (
	"path"
	"sync"
)

// WorkbenchPaths holds every filesystem location the provisioner touches.
// A single instance is shared process-wide; tests may take a Clone and
// point it at a sandbox.
type WorkbenchPaths struct {
	// TempDir is the scratch workspace for downloads and source builds.
	// It is created at the start of a run and removed on every exit path.
	TempDir      string
	DownloadsDir string
	SourcesDir   string

	// LogsDir receives the timestamped run log files. It lives outside
	// TempDir so the log survives workspace cleanup.
	LogsDir string

	// JavaHomeDir is where the pinned JDK release is unpacked.
	JavaBaseDir string
	JavaHomeDir string

	// LocalBinDir is where source-built binaries are installed.
	LocalBinDir string
}

var (
	pathsOnce sync.Once
	paths     *WorkbenchPaths
)

// Paths returns the shared path layout for the current process.
func Paths() *WorkbenchPaths {
	pathsOnce.Do(func() {
		paths = defaultPaths()
	})

	return paths
}

func defaultPaths() *WorkbenchPaths {
	tempDir := "/tmp/workbench"
	javaBase := "/opt/java"

	return &WorkbenchPaths{
		TempDir:      tempDir,
		DownloadsDir: path.Join(tempDir, "downloads"),
		SourcesDir:   path.Join(tempDir, "sources"),
		LogsDir:      ".",
		JavaBaseDir:  javaBase,
		JavaHomeDir:  path.Join(javaBase, "current"),
		LocalBinDir:  "/usr/local/bin",
	}
}

// Clone returns a deep copy so tests can rewrite locations without
// touching the shared instance.
func (p *WorkbenchPaths) Clone() *WorkbenchPaths {
	clone := *p
	return &clone
}

// RebaseTemp moves every temp-rooted path under a new base directory.
func (p *WorkbenchPaths) RebaseTemp(base string) *WorkbenchPaths {
	clone := p.Clone()
	clone.TempDir = base
	clone.DownloadsDir = path.Join(base, "downloads")
	clone.SourcesDir = path.Join(base, "sources")
	return clone
}

// WorkspaceDirectories lists the scratch directories created at run start,
// parents before children.
func (p *WorkbenchPaths) WorkspaceDirectories() []string {
	return []string{
		p.TempDir,
		p.DownloadsDir,
		p.SourcesDir,
	}
}
