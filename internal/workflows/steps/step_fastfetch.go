package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/workbenchlabs/workbench/internal/config"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
	"github.com/workbenchlabs/workbench/pkg/software"
)

// NewFastFetchProvider builds an installer for the pinned fastfetch ref.
func NewFastFetchProvider(cfg config.FastFetchConfig) func() (*software.FastFetchInstaller, error) {
	return func() (*software.FastFetchInstaller, error) {
		return software.NewFastFetchInstaller(
			software.WithFastFetchRepo(cfg.RepoURL),
			software.WithFastFetchRef(cfg.Ref),
		)
	}
}

// SetupFastFetch installs the fastfetch build dependencies and builds the
// pinned ref from source.
func SetupFastFetch(cfg config.FastFetchConfig) automa.Builder {
	return automa.NewWorkflowBuilder().WithId("setup-fastfetch").Steps(
		InstallBuildDependencies(),
		installFastFetch(NewFastFetchProvider(cfg)),
	)
}

func installFastFetch(provider func() (*software.FastFetchInstaller, error)) automa.Builder {
	return automa.NewStepBuilder().WithId("install-fastfetch").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			installer, err := provider()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			installed, err := installer.IsInstalled()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if installed {
				return automa.SkippedReport(stp,
					automa.WithDetail("fastfetch is already installed"),
					automa.WithMetadata(map[string]string{AlreadyInstalled: "true"}))
			}

			if err := installer.Download(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := installer.Install(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp,
				automa.WithMetadata(map[string]string{InstalledByThisStep: "true"}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Building fastfetch from source")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "fastfetch installation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "fastfetch present")
		})
}
