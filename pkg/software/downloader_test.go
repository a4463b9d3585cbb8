// SPDX-License-Identifier: Apache-2.0

package software

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	testContent := "This is test content for download"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(testContent))
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "download.txt")

	downloader := NewDownloader()
	err := downloader.Download(server.URL, destination)
	require.NoError(t, err, "Download failed")

	content, err := os.ReadFile(destination)
	require.NoError(t, err, "Failed to read downloaded file")
	require.Equal(t, testContent, string(content), "Downloaded content mismatch")
}

func TestDownloader_Download_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	downloader := NewDownloader()
	err := downloader.Download(server.URL, filepath.Join(t.TempDir(), "download.txt"))
	require.Error(t, err, "Download should fail with HTTP 404")
	require.True(t, errorx.IsOfType(err, DownloadError), "Error should be of type DownloadError")
}

func TestDownloader_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("This should timeout"))
	}))
	defer server.Close()

	downloader := NewDownloaderWithTimeout(1 * time.Second)
	err := downloader.Download(server.URL, filepath.Join(t.TempDir(), "download.txt"))
	require.Error(t, err, "Download should fail with timeout")
	require.True(t, errorx.IsOfType(err, DownloadError), "Error should be of type DownloadError")
}

func TestDownloader_VerifyChecksum(t *testing.T) {
	payload := []byte("checksummed payload")
	filePath := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(filePath, payload, 0o644))

	expected := fmt.Sprintf("%x", sha256.Sum256(payload))

	downloader := NewDownloader()
	require.NoError(t, downloader.VerifyChecksum(filePath, expected, "sha256"))

	err := downloader.VerifyChecksum(filePath, "deadbeef", "sha256")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, ChecksumError))

	err = downloader.VerifyChecksum(filePath, expected, "crc32")
	require.Error(t, err, "unsupported algorithm should be rejected")
	require.True(t, errorx.IsOfType(err, ChecksumError))
}

func TestDownloader_Extract(t *testing.T) {
	tempDir := t.TempDir()

	tarGzPath := filepath.Join(tempDir, "test.tar.gz")
	testFiles := map[string]string{
		"file1.txt":     "Content of file 1",
		"dir/file2.txt": "Content of file 2",
	}
	createTestTarGz(t, tarGzPath, testFiles)

	destDir := filepath.Join(tempDir, "extracted")
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	downloader := NewDownloader()
	require.NoError(t, downloader.Extract(tarGzPath, destDir))

	for name, want := range testFiles {
		content, err := os.ReadFile(filepath.Join(destDir, name))
		require.NoError(t, err, "Failed to read extracted file %s", name)
		require.Equal(t, want, string(content))
	}
}

func TestDownloader_Extract_RejectsPathTraversal(t *testing.T) {
	tempDir := t.TempDir()

	tarGzPath := filepath.Join(tempDir, "evil.tar.gz")
	createTestTarGz(t, tarGzPath, map[string]string{
		"../escape.txt": "should never land outside destDir",
	})

	destDir := filepath.Join(tempDir, "extracted")
	require.NoError(t, os.MkdirAll(destDir, 0o755))

	downloader := NewDownloader()
	err := downloader.Extract(tarGzPath, destDir)
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, PathTraversalError))

	_, statErr := os.Stat(filepath.Join(tempDir, "escape.txt"))
	require.True(t, os.IsNotExist(statErr))
}

func TestDownloader_Extract_MissingArchive(t *testing.T) {
	downloader := NewDownloader()
	err := downloader.Extract(filepath.Join(t.TempDir(), "nope.tar.gz"), t.TempDir())
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, FileNotFoundError))
}

func createTestTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()

	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	gz := gzip.NewWriter(out)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	for name, content := range files {
		hdr := &tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err = tw.Write([]byte(content))
		require.NoError(t, err)
	}
}
