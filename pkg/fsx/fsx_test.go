// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathExists(t *testing.T) {
	mg := NewManager()
	dir := t.TempDir()

	fi, exists, err := mg.PathExists(dir)
	require.NoError(t, err)
	require.True(t, exists)
	require.True(t, fi.IsDir())

	_, exists, err = mg.PathExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestCreateDirectory(t *testing.T) {
	mg := NewManager()
	dir := t.TempDir()

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, mg.CreateDirectory(nested, true))
	require.True(t, mg.IsDirectory(nested))

	// idempotent on an existing directory
	require.NoError(t, mg.CreateDirectory(nested, true))

	// refuses to create over a regular file
	file := filepath.Join(dir, "file")
	require.NoError(t, mg.WriteFile(file, []byte("x")))
	require.Error(t, mg.CreateDirectory(file, false))

	// non-recursive creation requires an existing parent
	require.Error(t, mg.CreateDirectory(filepath.Join(dir, "x", "y"), false))
}

func TestCopyFile(t *testing.T) {
	mg := NewManager()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.txt")
	require.NoError(t, mg.WriteFile(src, []byte("payload")))

	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, mg.CopyFile(src, dst, false))

	payload, err := mg.ReadFile(dst, -1)
	require.NoError(t, err)
	require.Equal(t, "payload", string(payload))

	// existing destination without overwrite fails
	require.Error(t, mg.CopyFile(src, dst, false))
	require.NoError(t, mg.CopyFile(src, dst, true))

	// copying into a directory keeps the source name
	sub := filepath.Join(dir, "sub")
	require.NoError(t, mg.CreateDirectory(sub, false))
	require.NoError(t, mg.CopyFile(src, sub, false))
	_, exists, err := mg.PathExists(filepath.Join(sub, "src.txt"))
	require.NoError(t, err)
	require.True(t, exists)
}

func TestReadFileSizeLimit(t *testing.T) {
	mg := NewManager()
	dir := t.TempDir()

	file := filepath.Join(dir, "big.txt")
	require.NoError(t, mg.WriteFile(file, []byte("0123456789")))

	_, err := mg.ReadFile(file, 4)
	require.Error(t, err)

	payload, err := mg.ReadFile(file, 10)
	require.NoError(t, err)
	require.Len(t, payload, 10)
}

func TestAppendFile(t *testing.T) {
	mg := NewManager()
	file := filepath.Join(t.TempDir(), "profile")

	require.NoError(t, mg.AppendFile(file, []byte("line one\n")))
	require.NoError(t, mg.AppendFile(file, []byte("line two\n")))

	payload, err := mg.ReadFile(file, -1)
	require.NoError(t, err)
	require.Equal(t, "line one\nline two\n", string(payload))
}

func TestRemoveAll(t *testing.T) {
	mg := NewManager()
	dir := t.TempDir()

	nested := filepath.Join(dir, "workspace", "downloads")
	require.NoError(t, mg.CreateDirectory(nested, true))
	require.NoError(t, mg.WriteFile(filepath.Join(nested, "artifact"), []byte("x")))

	require.NoError(t, mg.RemoveAll(filepath.Join(dir, "workspace")))

	_, exists, err := mg.PathExists(filepath.Join(dir, "workspace"))
	require.NoError(t, err)
	require.False(t, exists)

	// removing a missing path is not an error
	require.NoError(t, mg.RemoveAll(filepath.Join(dir, "workspace")))
}

func TestWritePermissions(t *testing.T) {
	mg := NewManager()
	file := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, mg.WriteFile(file, []byte("#!/bin/sh\n")))

	require.NoError(t, mg.WritePermissions(file, 0o755))

	fi, err := os.Stat(file)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), fi.Mode().Perm())
}
