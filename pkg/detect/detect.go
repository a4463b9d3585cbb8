// SPDX-License-Identifier: Apache-2.0

// Package detect gathers host operating system information and validates it
// against the set of OS families the provisioner supports.
package detect

import (
	"runtime"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/zcalusic/sysinfo"
)

// OS vendors the provisioner is allowed to run on.
const (
	VendorUbuntu = "ubuntu"
	VendorDebian = "debian"
)

// OSInfo describes the detected host operating system.
type OSInfo struct {
	Type         string `yaml:"type" json:"type"`
	Vendor       string `yaml:"vendor" json:"vendor"`
	Version      string `yaml:"version" json:"version"`
	Architecture string `yaml:"arch" json:"arch"`
	Kernel       string `yaml:"kernel" json:"kernel"`
}

// Detector provides host OS detection. The interface exists so that step
// logic can be tested with a stubbed detector instead of the real host.
type Detector interface {
	ScanOS() (*OSInfo, error)
}

type sysinfoDetector struct{}

func (d *sysinfoDetector) ScanOS() (*OSInfo, error) {
	if runtime.GOOS != "linux" {
		return nil, errorx.UnsupportedOperation.New("OS detection is only supported on linux, got %q", runtime.GOOS)
	}

	var si sysinfo.SysInfo
	si.GetSysInfo()

	info := &OSInfo{
		Type:         runtime.GOOS,
		Vendor:       strings.ToLower(si.OS.Vendor),
		Version:      si.OS.Version,
		Architecture: si.OS.Architecture,
		Kernel:       si.Kernel.Release,
	}

	if info.Vendor == "" {
		return nil, errorx.IllegalState.New("failed to detect OS vendor from /etc/os-release")
	}

	return info, nil
}

// NewDetector returns the default sysinfo backed detector.
func NewDetector() Detector {
	return &sysinfoDetector{}
}

// IsSupported reports whether the vendor belongs to a supported OS family.
func (o *OSInfo) IsSupported() bool {
	switch o.Vendor {
	case VendorUbuntu, VendorDebian:
		return true
	}
	return false
}

// Validate returns an error when the detected OS is not allow-listed.
func (o *OSInfo) Validate() error {
	if !o.IsSupported() {
		return errorx.UnsupportedOperation.New(
			"unsupported operating system %q %s; supported families: %s, %s",
			o.Vendor, o.Version, VendorUbuntu, VendorDebian)
	}

	return nil
}
