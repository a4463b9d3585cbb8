// SPDX-License-Identifier: Apache-2.0

package software

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/workbenchlabs/workbench/internal/core"
)

// Downloader is responsible for downloading a software package and checking its integrity.
type Downloader struct {
	client  *http.Client
	timeout time.Duration
}

// NewDownloader creates a new Downloader with default settings
func NewDownloader() *Downloader {
	return NewDownloaderWithTimeout(30 * time.Minute)
}

// NewDownloaderWithTimeout creates a new Downloader with custom timeout
func NewDownloaderWithTimeout(timeout time.Duration) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Download downloads a file from the given URL to the specified destination
func (fd *Downloader) Download(url, destination string) error {
	resp, err := fd.client.Get(url)
	if err != nil {
		return NewDownloadError(err, url, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewDownloadError(nil, url, resp.StatusCode)
	}

	out, err := os.Create(destination)
	if err != nil {
		return NewDownloadError(err, url, 0)
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	if err != nil {
		return NewDownloadError(err, url, 0)
	}

	return nil
}

// checksum verifies the hash of a file
func (fd *Downloader) checksum(filePath string, expectedHash string, algorithm string, hashFunction hash.Hash) error {
	file, err := os.Open(filePath)
	if err != nil {
		return NewFileNotFoundError(filePath)
	}
	defer file.Close()

	if _, err := io.Copy(hashFunction, file); err != nil {
		return NewChecksumError(filePath, algorithm, expectedHash, "")
	}

	calculatedHash := fmt.Sprintf("%x", hashFunction.Sum(nil))
	if calculatedHash != expectedHash {
		return NewChecksumError(filePath, algorithm, expectedHash, calculatedHash)
	}

	return nil
}

// VerifyChecksum verifies the checksum of a file using the specified algorithm
func (fd *Downloader) VerifyChecksum(filePath string, expectedValue string, algorithm string) error {
	switch algorithm {
	case "md5":
		return fd.checksum(filePath, expectedValue, algorithm, md5.New())
	case "sha256":
		return fd.checksum(filePath, expectedValue, algorithm, sha256.New())
	case "sha512":
		return fd.checksum(filePath, expectedValue, algorithm, sha512.New())
	default:
		return NewChecksumError(filePath, algorithm, expectedValue, "")
	}
}

// Extract extracts a tar.gz archive into destDir. Entries that resolve outside
// destDir are rejected.
func (fd *Downloader) Extract(compressedFilePath string, destDir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), fd.timeout)
	defer cancel()

	file, err := os.Open(compressedFilePath)
	if err != nil {
		return NewFileNotFoundError(compressedFilePath)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return NewExtractionError(err, compressedFilePath, destDir)
	}
	defer gz.Close()

	tarReader := tar.NewReader(gz)
	for {
		select {
		case <-ctx.Done():
			return NewExtractionError(ctx.Err(), compressedFilePath, destDir)
		default:
			hdr, err := tarReader.Next()
			if err == io.EOF {
				return nil // End of archive
			}
			if err != nil {
				return NewExtractionError(err, compressedFilePath, destDir)
			}

			target, err := safeExtractionPath(destDir, hdr.Name)
			if err != nil {
				return err
			}

			switch hdr.Typeflag {
			case tar.TypeDir:
				if err := os.MkdirAll(target, core.DefaultDirPerm); err != nil {
					return NewExtractionError(err, compressedFilePath, destDir)
				}
			case tar.TypeReg:
				if err := extractRegularFile(tarReader, target, fs.FileMode(hdr.Mode)); err != nil {
					return NewExtractionError(err, compressedFilePath, destDir)
				}
			case tar.TypeSymlink:
				if err := os.Symlink(hdr.Linkname, target); err != nil && !os.IsExist(err) {
					return NewExtractionError(err, compressedFilePath, destDir)
				}
			default:
				return NewExtractionError(fmt.Errorf("unknown type flag: %c", hdr.Typeflag), compressedFilePath, destDir)
			}
		}
	}
}

func safeExtractionPath(destDir, entryName string) (string, error) {
	target := filepath.Join(destDir, entryName)
	cleanDest := filepath.Clean(destDir)
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", NewPathTraversalError(entryName)
	}

	return target, nil
}

func extractRegularFile(r io.Reader, target string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), core.DefaultDirPerm); err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
