package steps

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/workbenchlabs/workbench/internal/config"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
)

// InstallNode adds the NodeSource repository for the configured release line
// and installs nodejs from it.
func InstallNode(cfg config.NodeConfig) automa.Builder {
	return automa.NewStepBuilder().WithId("install-node").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if _, err := LookPath("node"); err == nil {
				return automa.SkippedReport(stp,
					automa.WithDetail("node is already installed"),
					automa.WithMetadata(map[string]string{AlreadyInstalled: "true"}))
			}

			setup := fmt.Sprintf("curl -fsSL %s | sudo -E bash -", cfg.SetupScriptURL)
			if _, err := RunCmdOutput(setup); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to set up the NodeSource repository")))
			}

			if err := RunCmd("sudo", "apt-get", "install", "-y", "nodejs"); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to install nodejs")))
			}

			return automa.SuccessReport(stp,
				automa.WithMetadata(map[string]string{InstalledByThisStep: "true"}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing Node.js %s.x", cfg.Major)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Node.js installation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "Node.js present")
		})
}
