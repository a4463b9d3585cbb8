// SPDX-License-Identifier: Apache-2.0

// Package principal resolves the identity the provisioner is running as and
// the identity that invoked it. The two differ when the process is launched
// through sudo, which is exactly the situation the privilege precondition
// rejects.
package principal

import (
	"os"
	"os/user"

	"github.com/joomcode/errorx"
)

// User identifies a system account.
type User struct {
	Name    string
	Uid     string
	HomeDir string
}

// IsSuperuser reports whether the current process runs with elevated
// privileges.
func IsSuperuser() bool {
	return os.Geteuid() == 0
}

// Current returns the user the process is running as.
func Current() (User, error) {
	u, err := user.Current()
	if err != nil {
		return User{}, errorx.IllegalState.Wrap(err, "failed to resolve current user")
	}

	return User{Name: u.Username, Uid: u.Uid, HomeDir: u.HomeDir}, nil
}

// Invoking returns the account that launched the provisioner. When running
// under sudo this is the account named by SUDO_USER rather than root.
func Invoking() (User, error) {
	if name := os.Getenv("SUDO_USER"); name != "" && name != "root" {
		u, err := user.Lookup(name)
		if err != nil {
			return User{}, errorx.IllegalState.Wrap(err, "failed to look up invoking user %q", name)
		}

		return User{Name: u.Username, Uid: u.Uid, HomeDir: u.HomeDir}, nil
	}

	return Current()
}
