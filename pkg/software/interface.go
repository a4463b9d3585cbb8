// SPDX-License-Identifier: Apache-2.0

package software

import "github.com/bluet/syspkg"

// Package is a system package managed through the host's native package manager.
type Package interface {
	Name() string
	Install() (*syspkg.PackageInfo, error)
	Uninstall() (*syspkg.PackageInfo, error)
	Upgrade() (*syspkg.PackageInfo, error)
	Info() (*syspkg.PackageInfo, error)
	IsInstalled() bool
}

// Software is a tool installed outside the native package manager, either from
// a release archive or built from source.
type Software interface {
	Download() error

	Extract() error

	Install() error

	Verify() error

	IsInstalled() (bool, error)

	Configure() error

	IsConfigured() (bool, error)
}
