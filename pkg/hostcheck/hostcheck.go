// SPDX-License-Identifier: Apache-2.0

// Package hostcheck validates host resources before provisioning starts.
package hostcheck

import (
	"os"
	"sync"

	"github.com/jaypipes/ghw"
	"github.com/joomcode/errorx"
	"golang.org/x/sys/unix"
)

var once sync.Once

func suppressGHWWarnings() {
	once.Do(func() {
		_ = os.Setenv("GHW_DISABLE_WARNINGS", "1")
	})
}

// HostProfile provides an abstraction over host resource inspection so
// preflight logic can be tested against a fake host.
type HostProfile interface {
	// TotalStorageGB returns the combined size of all block devices.
	TotalStorageGB() (uint64, error)
	// FreeSpaceGB returns the free space of the file system holding path.
	FreeSpaceGB(path string) (uint64, error)
}

type defaultHostProfile struct{}

// NewHostProfile returns the ghw backed host profile.
func NewHostProfile() HostProfile {
	suppressGHWWarnings()
	return &defaultHostProfile{}
}

func (p *defaultHostProfile) TotalStorageGB() (uint64, error) {
	block, err := ghw.Block()
	if err != nil {
		return 0, errorx.ExternalError.Wrap(err, "failed to read block device info")
	}

	return block.TotalPhysicalBytes / (1 << 30), nil
}

func (p *defaultHostProfile) FreeSpaceGB(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, errorx.ExternalError.Wrap(err, "failed to statfs %q", path)
	}

	return st.Bavail * uint64(st.Bsize) / (1 << 30), nil
}

// ValidateTotalStorage returns an error when the host's combined block
// device capacity is below minGB gigabytes.
func ValidateTotalStorage(p HostProfile, minGB uint64) error {
	total, err := p.TotalStorageGB()
	if err != nil {
		return err
	}

	if total < minGB {
		return errorx.IllegalState.New(
			"insufficient total storage: %dGB found, %dGB required", total, minGB)
	}

	return nil
}

// ValidateFreeSpace returns an error when the file system holding path has
// less than minGB gigabytes available for downloads and builds.
func ValidateFreeSpace(p HostProfile, path string, minGB uint64) error {
	free, err := p.FreeSpaceGB(path)
	if err != nil {
		return err
	}

	if free < minGB {
		return errorx.IllegalState.New(
			"insufficient disk space on %q: %dGB free, %dGB required", path, free, minGB)
	}

	return nil
}
