// SPDX-License-Identifier: Apache-2.0

// Package runlock guards against two provisioning runs mutating the same
// machine at the same time. The package manager has its own lock, but the
// profile file, the temp workspace and /opt installs do not.
package runlock

import (
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/joomcode/errorx"
)

const lockFileName = "workbench.lock"

// Lock is a file based mutual exclusion lock for a provisioning run.
type Lock struct {
	fl *flock.Flock
}

// New returns a Lock rooted in the given directory.
func New(dir string) (*Lock, error) {
	if dir == "" {
		return nil, errorx.IllegalArgument.New("lock directory cannot be empty")
	}

	return &Lock{fl: flock.New(filepath.Join(dir, lockFileName))}, nil
}

// Acquire takes the lock, failing immediately when another run holds it.
func (l *Lock) Acquire() error {
	locked, err := l.fl.TryLock()
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to acquire run lock %q", l.fl.Path())
	}

	if !locked {
		return errorx.IllegalState.New(
			"another provisioning run is already in progress (lock %q is held)", l.fl.Path())
	}

	return nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to release run lock %q", l.fl.Path())
	}

	return nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.fl.Path()
}
