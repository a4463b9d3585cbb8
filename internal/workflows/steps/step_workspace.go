package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/workbenchlabs/workbench/internal/core"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
)

// SetupWorkspace creates the scratch directory tree used for downloads and
// source builds. The matching cleanup happens at process exit, not here, so
// later steps can inspect build artifacts when something goes wrong.
func SetupWorkspace(workspace *core.Workspace) automa.Builder {
	return automa.NewStepBuilder().WithId("setup-workspace").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := workspace.Create(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Creating scratch workspace")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to create scratch workspace")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Scratch workspace ready")
		})
}
