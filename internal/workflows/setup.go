// SPDX-License-Identifier: Apache-2.0

// Package workflows assembles the provisioning workflows from individual
// steps. Each workflow is a fail-fast ordered sequence.
package workflows

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/workbenchlabs/workbench/internal/config"
	"github.com/workbenchlabs/workbench/internal/core"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
	"github.com/workbenchlabs/workbench/internal/workflows/steps"
)

// NewSetupWorkflow creates the full provisioning workflow. Steps run in
// order and the first failure aborts the rest.
func NewSetupWorkflow(workspace *core.Workspace, cfg config.Config) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().
		WithId("setup").Steps(
		NewPreflightWorkflow(),
		steps.SetupWorkspace(workspace),
		steps.UpdatePackageIndex(),
		steps.InstallBasePackages(cfg.Packages.Base),
		steps.SetupDocker(cfg.Docker),
		steps.InstallNode(cfg.Node),
		steps.SetupJDK(steps.NewJDKProvider(cfg.JDK)),
		steps.SetupFastFetch(cfg.FastFetch),
		steps.VerifyInstallation(),
	).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting workstation setup")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Workstation setup failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Workstation setup completed successfully")
		})
}

// NewCheckWorkflow creates the read-only workflow behind the check command.
// It validates preconditions and reports installed tool versions without
// changing the host.
func NewCheckWorkflow() *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().
		WithId("check").Steps(
		NewPreflightWorkflow(),
		steps.VerifyInstallation(),
	).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting workstation check")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Workstation check failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Workstation check completed successfully")
		})
}
