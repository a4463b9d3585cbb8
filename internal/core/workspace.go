// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sync"

	"github.com/joomcode/errorx"
	"github.com/workbenchlabs/workbench/pkg/fsx"
)

// Workspace is the scratch directory tree owned exclusively by one
// provisioning run. Cleanup removes it at most once no matter how many
// exit paths race to call it (normal return, failure, interrupt).
type Workspace struct {
	paths       *WorkbenchPaths
	fileManager fsx.Manager

	cleanupOnce sync.Once
	cleanedUp   bool
}

func NewWorkspace(paths *WorkbenchPaths, fileManager fsx.Manager) (*Workspace, error) {
	if paths == nil {
		return nil, errorx.IllegalArgument.New("paths must not be nil")
	}

	if fileManager == nil {
		fileManager = fsx.NewManager()
	}

	return &Workspace{
		paths:       paths,
		fileManager: fileManager,
	}, nil
}

func (w *Workspace) Paths() *WorkbenchPaths {
	return w.paths
}

// Create builds the scratch directory tree, parents before children.
func (w *Workspace) Create() error {
	for _, dir := range w.paths.WorkspaceDirectories() {
		if err := w.fileManager.CreateDirectory(dir, true); err != nil {
			return errorx.IllegalState.Wrap(err, "failed to create workspace directory %q", dir)
		}
	}

	return nil
}

// Cleanup removes the scratch tree. Safe to call from multiple exit paths;
// only the first call does any work.
func (w *Workspace) Cleanup() error {
	var err error
	w.cleanupOnce.Do(func() {
		err = w.fileManager.RemoveAll(w.paths.TempDir)
		w.cleanedUp = true
	})

	return err
}

// CleanedUp reports whether Cleanup has already run.
func (w *Workspace) CleanedUp() bool {
	return w.cleanedUp
}
