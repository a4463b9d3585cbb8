// SPDX-License-Identifier: Apache-2.0

package software

import "github.com/bluet/syspkg/manager"

func newAptPackage(name string) (Package, error) {
	return NewPackageInstaller(WithPackageName(name), WithPackageOptions(manager.Options{AssumeYes: true}))
}

func catalog(names ...string) ([]Package, error) {
	pkgs := make([]Package, 0, len(names))
	for _, name := range names {
		pkg, err := newAptPackage(name)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}

	return pkgs, nil
}

// BasePackages returns the common workstation toolchain packages in install order.
func BasePackages(names []string) ([]Package, error) {
	return catalog(names...)
}

// DockerEnginePackages returns the Docker engine packages published by the
// vendor apt repository, in install order.
func DockerEnginePackages() ([]Package, error) {
	return catalog(
		"docker-ce",
		"docker-ce-cli",
		"containerd.io",
		"docker-buildx-plugin",
		"docker-compose-plugin",
	)
}

// SourceBuildPackages returns the packages needed to build software from source.
func SourceBuildPackages() ([]Package, error) {
	return catalog("cmake", "pkg-config")
}
