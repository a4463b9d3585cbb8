package steps

import (
	"strings"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
	"github.com/workbenchlabs/workbench/internal/config"
)

func nodeTestConfig() config.NodeConfig {
	return config.NodeConfig{
		Major:          "22",
		SetupScriptURL: "https://deb.nodesource.com/setup_22.x",
	}
}

func TestInstallNode_SkipsWhenPresent(t *testing.T) {
	stubLookPath(t, func(program string) (string, error) {
		return "/usr/bin/node", nil
	})

	report := buildAndExecute(t, InstallNode(nodeTestConfig()))
	require.Equal(t, automa.StatusSkipped, report.Status)
	require.Equal(t, "true", report.Metadata[AlreadyInstalled])
}

func TestInstallNode_RunsVendorSetupThenInstalls(t *testing.T) {
	stubLookPath(t, func(program string) (string, error) {
		return "", errorx.IllegalState.New("not found")
	})

	var setupScript string
	stubRunCmdOutput(t, func(script string) (string, error) {
		setupScript = script
		return "", nil
	})

	var installCmd string
	stubRunCmd(t, func(name string, args ...string) error {
		installCmd = name + " " + strings.Join(args, " ")
		return nil
	})

	report := buildAndExecute(t, InstallNode(nodeTestConfig()))
	require.Equal(t, automa.StatusSuccess, report.Status)
	require.Contains(t, setupScript, "https://deb.nodesource.com/setup_22.x")
	require.Contains(t, setupScript, "sudo -E bash -")
	require.Equal(t, "sudo apt-get install -y nodejs", installCmd)
}

func TestInstallNode_SetupFailureAborts(t *testing.T) {
	stubLookPath(t, func(program string) (string, error) {
		return "", errorx.IllegalState.New("not found")
	})
	stubRunCmdOutput(t, func(script string) (string, error) {
		return "", errorx.ExternalError.New("curl failed")
	})
	stubRunCmd(t, func(name string, args ...string) error {
		t.Errorf("apt install should not run after setup failure")
		return nil
	})

	report := buildAndExecute(t, InstallNode(nodeTestConfig()))
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
}
