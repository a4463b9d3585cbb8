// SPDX-License-Identifier: Apache-2.0

package software

import (
	"os/exec"
	"strings"

	"github.com/joomcode/errorx"
)

// RunCmd runs a command and returns an error if it fails
var RunCmd = func(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	return cmd.Run()
}

// RunCmdOutput runs a command and returns its trimmed output or an error
var RunCmdOutput = func(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", errorx.IllegalState.Wrap(err, "failed to execute command: %s %s", name, strings.Join(args, " "))
	}

	return strings.TrimSpace(string(out)), nil
}

// LookPath reports where a program resolves on PATH, if anywhere
var LookPath = func(program string) (string, error) {
	return exec.LookPath(program)
}
