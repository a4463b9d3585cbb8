package steps

import (
	"context"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
	"github.com/workbenchlabs/workbench/pkg/software"
)

// UpdatePackageIndex refreshes the apt package index.
func UpdatePackageIndex() automa.Builder {
	return automa.NewStepBuilder().WithId("update-package-index").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := RunCmd("sudo", "apt-get", "update", "-y"); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to update package index")))
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Updating package index")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Package index update failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "Package index updated")
		})
}

// packageCatalog produces the package set a step is responsible for.
type packageCatalog func() ([]software.Package, error)

// missingPackages re-evaluates which packages from the catalog are absent.
// The check runs inside Execute so the result is never stale.
var missingPackages = func(catalog packageCatalog) ([]string, error) {
	pkgs, err := catalog()
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, pkg := range pkgs {
		if !pkg.IsInstalled() {
			missing = append(missing, pkg.Name())
		}
	}

	return missing, nil
}

// InstallSystemPackages installs the catalog's packages through apt, skipping
// the whole step when every package is already present.
func InstallSystemPackages(id, title string, catalog packageCatalog) automa.Builder {
	return automa.NewStepBuilder().WithId(id).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			missing, err := missingPackages(catalog)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if len(missing) == 0 {
				return automa.SkippedReport(stp,
					automa.WithDetail("all packages are already installed"),
					automa.WithMetadata(map[string]string{AlreadyInstalled: "true"}))
			}

			logx.As().Info().Strs("packages", missing).Msg("Installing system packages")

			args := append([]string{"apt-get", "install", "-y"}, missing...)
			if err := RunCmd("sudo", args...); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err,
						"failed to install packages: %s", strings.Join(missing, " "))))
			}

			return automa.SuccessReport(stp,
				automa.WithMetadata(map[string]string{InstalledByThisStep: strings.Join(missing, ",")}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing %s", title)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "System package installation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "System packages present")
		})
}

// InstallBasePackages installs the configured base toolchain packages.
func InstallBasePackages(names []string) automa.Builder {
	return InstallSystemPackages("install-base-packages", "base packages", func() ([]software.Package, error) {
		return software.BasePackages(names)
	})
}

// InstallBuildDependencies installs the packages needed to compile software
// from source.
func InstallBuildDependencies() automa.Builder {
	return InstallSystemPackages("install-build-deps", "build dependencies", software.SourceBuildPackages)
}
