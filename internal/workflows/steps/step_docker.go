package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/workbenchlabs/workbench/internal/config"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
	"github.com/workbenchlabs/workbench/pkg/principal"
	"github.com/workbenchlabs/workbench/pkg/software"
	"github.com/workbenchlabs/workbench/pkg/systemd"
)

const dockerKeyringPath = "/etc/apt/keyrings/docker.gpg"

// systemd calls are stubbed in unit tests
var (
	isServiceActive = systemd.IsServiceActive
	enableService   = systemd.EnableService
	startService    = systemd.StartService
)

// SetupDocker installs the Docker engine from the vendor apt repository,
// adds the invoking user to the docker group and starts the service.
func SetupDocker(cfg config.DockerConfig) automa.Builder {
	return automa.NewWorkflowBuilder().WithId("setup-docker").Steps(
		installDockerEngine(cfg),
		addUserToDockerGroup(),
		enableAndStartDocker(),
	)
}

func installDockerEngine(cfg config.DockerConfig) automa.Builder {
	return automa.NewStepBuilder().WithId("install-docker").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if _, err := LookPath("docker"); err == nil {
				return automa.SkippedReport(stp,
					automa.WithDetail("docker is already installed"),
					automa.WithMetadata(map[string]string{AlreadyInstalled: "true"}))
			}

			missing, err := missingPackages(software.DockerEnginePackages)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			if len(missing) == 0 {
				return automa.SkippedReport(stp,
					automa.WithDetail("docker engine packages are already installed"),
					automa.WithMetadata(map[string]string{AlreadyInstalled: "true"}))
			}

			// vendor signing key and repository
			scripts := []string{
				"sudo install -m 0755 -d /etc/apt/keyrings",
				fmt.Sprintf("curl -fsSL %s | sudo gpg --dearmor --yes -o %s", cfg.GPGKeyURL, dockerKeyringPath),
				fmt.Sprintf(`echo "deb [arch=$(dpkg --print-architecture) signed-by=%s] %s $(lsb_release -cs) stable" | sudo tee /etc/apt/sources.list.d/docker.list > /dev/null`,
					dockerKeyringPath, cfg.RepoURL),
				"sudo apt-get update -y",
			}

			for _, script := range scripts {
				if _, err := RunCmdOutput(script); err != nil {
					return automa.FailureReport(stp,
						automa.WithError(errorx.ExternalError.Wrap(err, "failed to set up docker repository")))
				}
			}

			args := append([]string{"apt-get", "install", "-y"}, missing...)
			if err := RunCmd("sudo", args...); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to install docker engine packages")))
			}

			return automa.SuccessReport(stp,
				automa.WithMetadata(map[string]string{InstalledByThisStep: strings.Join(missing, ",")}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing Docker engine")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Docker engine installation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "Docker engine present")
		})
}

func addUserToDockerGroup() automa.Builder {
	return automa.NewStepBuilder().WithId("docker-group").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			user, err := principal.Invoking()
			if err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.Wrap(err, "failed to resolve invoking user")))
			}

			groups, err := RunCmdOutput("id -nG " + user.Name)
			if err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to list groups for %s", user.Name)))
			}

			for _, group := range strings.Fields(groups) {
				if group == "docker" {
					return automa.SkippedReport(stp,
						automa.WithDetail("user is already in the docker group"),
						automa.WithMetadata(map[string]string{AlreadyMember: "true"}))
				}
			}

			if err := RunCmd("sudo", "usermod", "-aG", "docker", user.Name); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to add %s to the docker group", user.Name)))
			}

			logx.As().Info().Str("user", user.Name).
				Msg("Added user to docker group, a re-login is needed for it to take effect")
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Adding invoking user to the docker group")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Docker group membership failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "Docker group membership ensured")
		})
}

func enableAndStartDocker() automa.Builder {
	return automa.NewStepBuilder().WithId("enable-start-docker").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			active, err := isServiceActive(ctx, "docker")
			if err == nil && active {
				return automa.SkippedReport(stp,
					automa.WithDetail("docker service is already active"),
					automa.WithMetadata(map[string]string{AlreadyActive: "true"}))
			}

			if err := enableService(ctx, "docker"); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to enable docker service")))
			}

			if err := startService(ctx, "docker"); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.ExternalError.Wrap(err, "failed to start docker service")))
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Enabling and starting docker service")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Docker service activation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			completeOrSkip(ctx, stp, rpt, "Docker service active")
		})
}
