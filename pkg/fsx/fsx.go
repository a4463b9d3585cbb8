// SPDX-License-Identifier: Apache-2.0

// Package fsx provides a small file system manager interface so higher level
// step logic can be exercised against a fake during tests instead of
// mutating the real machine.
package fsx

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joomcode/errorx"
)

// Manager provides an operating system independent interface for managing
// files and directories.
type Manager interface {
	// PathExists determines if the source path exists. This method does not
	// follow symlinks.
	PathExists(path string) (os.FileInfo, bool, error)
	// IsDirectory returns true if the path is a directory.
	IsDirectory(path string) bool
	// CreateDirectory creates a directory at the given path. If the path
	// already refers to a directory no action is taken. If the recursive
	// argument is true, missing parents are created as well.
	CreateDirectory(path string, recursive bool) error
	// CopyFile copies a single file. An existing destination is replaced
	// only when overwrite is true.
	CopyFile(src string, dst string, overwrite bool) error
	// ReadFile reads a whole file as long as its size is below maxFileSize.
	// A negative maxFileSize disables the size check.
	ReadFile(path string, maxFileSize int64) ([]byte, error)
	// WriteFile writes payload to a file, replacing existing contents.
	WriteFile(path string, payload []byte) error
	// AppendFile appends payload to a file, creating it when missing.
	AppendFile(path string, payload []byte) error
	// WritePermissions sets the permissions of the file at the given path.
	WritePermissions(path string, perms fs.FileMode) error
	// RemoveAll removes the path and its contents.
	RemoveAll(path string) error
}

type unixManager struct{}

// NewManager returns the default Manager backed by the local file system.
func NewManager() Manager {
	return &unixManager{}
}

func (m *unixManager) PathExists(path string) (os.FileInfo, bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errorx.ExternalError.Wrap(err, "failed to stat %q", path)
	}

	return fi, true, nil
}

func (m *unixManager) IsDirectory(path string) bool {
	fi, exists, err := m.PathExists(path)
	if err != nil || !exists {
		return false
	}

	return fi.IsDir()
}

func (m *unixManager) CreateDirectory(path string, recursive bool) error {
	fi, exists, err := m.PathExists(path)
	if err != nil {
		return err
	}

	if exists {
		if fi.IsDir() {
			return nil
		}
		return errorx.IllegalState.New("path %q exists and is not a directory", path)
	}

	if recursive {
		err = os.MkdirAll(path, 0o755)
	} else {
		err = os.Mkdir(path, 0o755)
	}
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create directory %q", path)
	}

	return nil
}

func (m *unixManager) CopyFile(src string, dst string, overwrite bool) error {
	srcInfo, exists, err := m.PathExists(src)
	if err != nil {
		return err
	}
	if !exists {
		return errorx.IllegalArgument.New("source file %q does not exist", src)
	}
	if !srcInfo.Mode().IsRegular() {
		return errorx.IllegalArgument.New("source %q is not a regular file", src)
	}

	// copying into an existing directory keeps the source file name
	if m.IsDirectory(dst) {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	if _, exists, err = m.PathExists(dst); err != nil {
		return err
	} else if exists && !overwrite {
		return errorx.IllegalState.New("destination file %q already exists", dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to open %q", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create %q", dst)
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to copy %q to %q", src, dst)
	}

	return nil
}

func (m *unixManager) ReadFile(path string, maxFileSize int64) ([]byte, error) {
	fi, exists, err := m.PathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errorx.IllegalArgument.New("file %q does not exist", path)
	}

	if maxFileSize >= 0 && fi.Size() > maxFileSize {
		return nil, errorx.IllegalState.New("file %q is larger than the %d byte read limit", path, maxFileSize)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errorx.ExternalError.Wrap(err, "failed to read %q", path)
	}

	return payload, nil
}

func (m *unixManager) WriteFile(path string, payload []byte) error {
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to write %q", path)
	}

	return nil
}

func (m *unixManager) AppendFile(path string, payload []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return errorx.ExternalError.Wrap(err, "failed to open %q for append", path)
	}
	defer f.Close()

	if _, err = f.Write(payload); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to append to %q", path)
	}

	return nil
}

func (m *unixManager) WritePermissions(path string, perms fs.FileMode) error {
	if err := os.Chmod(path, perms); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to change permissions of %q", path)
	}

	return nil
}

func (m *unixManager) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to remove %q", path)
	}

	return nil
}
