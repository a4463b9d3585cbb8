// SPDX-License-Identifier: Apache-2.0

package exit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeString(t *testing.T) {
	require.Equal(t, "0", NormalTermination.String())
	require.Equal(t, "1", GeneralError.String())
	require.Equal(t, "80", PreconditionFailure.String())
}

func TestCodeInt(t *testing.T) {
	require.Equal(t, 78, ConfigurationError.Int())
	require.Equal(t, 81, StepFailure.Int())
}

func TestCodeIs(t *testing.T) {
	require.True(t, GeneralError.Is(1))
	require.False(t, GeneralError.Is(0))
}

func TestCodeBounds(t *testing.T) {
	require.GreaterOrEqual(t, PreconditionFailure.Int(), MinValidExitCode.Int())
	require.LessOrEqual(t, StepFailure.Int(), MaxValidExitCode.Int())
}
