// SPDX-License-Identifier: Apache-2.0

package principal

import (
	"os"
	"os/user"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	u, err := Current()
	require.NoError(t, err)
	require.NotEmpty(t, u.Name)
	require.NotEmpty(t, u.Uid)
}

func TestIsSuperuser(t *testing.T) {
	require.Equal(t, os.Geteuid() == 0, IsSuperuser())
}

func TestInvokingWithoutSudo(t *testing.T) {
	t.Setenv("SUDO_USER", "")

	invoking, err := Invoking()
	require.NoError(t, err)

	current, err := Current()
	require.NoError(t, err)
	require.Equal(t, current.Name, invoking.Name)
}

func TestInvokingWithSudo(t *testing.T) {
	current, err := user.Current()
	require.NoError(t, err)
	if current.Username == "root" {
		t.Skip("cannot distinguish sudo invoker when running as root")
	}

	t.Setenv("SUDO_USER", current.Username)

	invoking, err := Invoking()
	require.NoError(t, err)
	require.Equal(t, current.Username, invoking.Name)
	require.Equal(t, current.Uid, invoking.Uid)
}
