package steps

import (
	"context"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
)

// versionProbe describes how to read one tool's version string.
type versionProbe struct {
	Tool   string
	Script string
}

var versionProbes = []versionProbe{
	{Tool: "gcc", Script: "gcc --version | head -1"},
	{Tool: "git", Script: "git --version"},
	{Tool: "docker", Script: "docker --version"},
	{Tool: "node", Script: "node --version"},
	{Tool: "java", Script: "java -version 2>&1 | head -1"},
	{Tool: "fastfetch", Script: "fastfetch --version"},
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// parseVersion pulls a semantic version out of a tool's version banner.
func parseVersion(banner string) (string, bool) {
	raw := versionPattern.FindString(banner)
	if raw == "" {
		return "", false
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw, false
	}

	return v.String(), true
}

// VerifyInstallation reports the installed versions of the provisioned tools.
// It is informational only and never fails the run.
func VerifyInstallation() automa.Builder {
	return automa.NewStepBuilder().WithId("verify-tools").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			meta := map[string]string{}

			for _, probe := range versionProbes {
				banner, err := RunCmdOutput(probe.Script)
				if err != nil {
					meta[probe.Tool] = "not installed"
					logx.As().Warn().Str("tool", probe.Tool).Msg("Tool is not installed")
					continue
				}

				version, parsed := parseVersion(banner)
				if !parsed && version == "" {
					version = banner
				}
				meta[probe.Tool] = version

				logx.As().Info().
					Str("tool", probe.Tool).
					Str("version", version).
					Msg("Verified tool version")
			}

			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Verifying installed tool versions")
			return ctx, nil
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Verification summary complete")
		})
}
