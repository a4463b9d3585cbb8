// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/workbenchlabs/workbench/internal/doctor"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
	"github.com/workbenchlabs/workbench/pkg/detect"
	"github.com/workbenchlabs/workbench/pkg/hostcheck"
	"github.com/workbenchlabs/workbench/pkg/principal"
)

// Minimum free space on the root file system for downloads and source
// builds, and minimum combined block device capacity for a workstation
// worth provisioning.
const (
	minFreeSpaceGB    = 10
	minTotalStorageGB = 64
)

// Stubbed in tests.
var (
	osDetector  detect.Detector       = detect.NewDetector()
	hostProfile hostcheck.HostProfile = hostcheck.NewHostProfile()
	isSuperuser                       = principal.IsSuperuser
)

// CheckPrivilegesStep validates that the process is not running with elevated
// privileges. Individual steps escalate through sudo only where needed, so a
// root invocation would scatter root-owned files through the invoking user's
// home directory.
func CheckPrivilegesStep() automa.Builder {
	return automa.NewStepBuilder().WithId("validate-privileges").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if isSuperuser() {
				return automa.FailureReport(stp,
					automa.WithError(
						errorx.IllegalState.New("must not run with superuser privileges").
							WithProperty(doctor.ErrPropertyResolution,
								"Run the command as a regular user without 'sudo'. Individual steps escalate on their own where required.")))
			}

			logx.As().Info().Msg("Running as a regular user")
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting privilege validation")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Privilege validation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Privilege validation step completed successfully")
		})
}

// CheckOSStep validates that the host runs a supported OS family.
func CheckOSStep() automa.Builder {
	return automa.NewStepBuilder().WithId("validate-os").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			info, err := osDetector.ScanOS()
			if err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.Wrap(err, "failed to detect host OS")))
			}

			if err := info.Validate(); err != nil {
				if ex := errorx.Cast(err); ex != nil {
					err = ex.WithProperty(doctor.ErrPropertyResolution,
						"Run the provisioner on an Ubuntu or Debian host.")
				}
				return automa.FailureReport(stp, automa.WithError(err))
			}

			logx.As().Info().
				Str("vendor", info.Vendor).
				Str("version", info.Version).
				Str("arch", info.Architecture).
				Msg("OS requirements validated")
			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"vendor":  info.Vendor,
				"version": info.Version,
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting OS validation")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "OS validation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "OS validation step completed successfully")
		})
}

// CheckDiskSpaceStep validates free space on the root file system.
func CheckDiskSpaceStep() automa.Builder {
	return automa.NewStepBuilder().WithId("validate-disk-space").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := hostcheck.ValidateTotalStorage(hostProfile, minTotalStorageGB); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.EnsureStackTrace(err)))
			}

			if err := hostcheck.ValidateFreeSpace(hostProfile, "/", minFreeSpaceGB); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.EnsureStackTrace(err)))
			}

			logx.As().Info().Msg("Disk space validated")
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting disk space validation")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Disk space validation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Disk space validation step completed successfully")
		})
}

// NewPreflightWorkflow creates the workflow that gates every command.
func NewPreflightWorkflow() *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().
		WithId("preflight").Steps(
		CheckPrivilegesStep(),
		CheckOSStep(),
		CheckDiskSpaceStep(),
	).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting preflight checks")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Preflight checks failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Preflight checks completed successfully")
		})
}
