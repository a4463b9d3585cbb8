package steps

import (
	"context"
	"path/filepath"

	"github.com/automa-saga/automa"
	"github.com/workbenchlabs/workbench/internal/config"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
	"github.com/workbenchlabs/workbench/pkg/principal"
	"github.com/workbenchlabs/workbench/pkg/profile"
	"github.com/workbenchlabs/workbench/pkg/software"
)

// NewJDKProvider builds a JDK installer for the pinned release. The shell
// profile of the invoking user receives the JAVA_HOME exports.
func NewJDKProvider(cfg config.JDKConfig) func() (*software.JDKInstaller, error) {
	return func() (*software.JDKInstaller, error) {
		user, err := principal.Invoking()
		if err != nil {
			return nil, err
		}

		profileManager, err := profile.NewManager(filepath.Join(user.HomeDir, ".bashrc"), nil)
		if err != nil {
			return nil, err
		}

		return software.NewJDKInstaller(
			software.WithJDKVersion(cfg.Version),
			software.WithJDKDownloadURL(cfg.URL),
			software.WithJDKChecksum(cfg.Checksum),
			software.WithJDKInstallDir(cfg.InstallDir),
			software.WithJDKProfile(profileManager),
		)
	}
}

// SetupJDK downloads, installs and configures the pinned JDK release.
func SetupJDK(provider func() (*software.JDKInstaller, error)) automa.Builder {
	return automa.NewWorkflowBuilder().WithId("setup-jdk").Steps(
		installJDK(provider),
		configureJDK(provider),
	)
}

func installJDK(provider func() (*software.JDKInstaller, error)) automa.Builder {
	return automa.NewStepBuilder().WithId("install-jdk").
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
					automa.WithDetail("jdk is already installed"),
					automa.WithMetadata(map[string]string{AlreadyInstalled: "true"}))
			}

			if err := installer.Download(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := installer.Extract(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := installer.Install(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp,
				automa.WithMetadata(map[string]string{InstalledByThisStep: "true"}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing JDK")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "JDK installation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "JDK present")
		})
}

func configureJDK(provider func() (*software.JDKInstaller, error)) automa.Builder {
	return automa.NewStepBuilder().WithId("configure-jdk").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			installer, err := provider()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			configured, err := installer.IsConfigured()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if configured {
				return automa.SkippedReport(stp,
					automa.WithDetail("shell profile already exports JAVA_HOME"),
					automa.WithMetadata(map[string]string{AlreadyConfigured: "true"}))
			}

			if err := installer.Configure(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp,
				automa.WithMetadata(map[string]string{ConfiguredByThisStep: "true"}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Configuring JAVA_HOME in shell profile")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "JDK configuration failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "JAVA_HOME configured")
		})
}
