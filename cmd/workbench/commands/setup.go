package commands

import (
	"context"
	"fmt"
	"os"
	"path"
	"syscall"
	"time"

	"github.com/automa-saga/logx"
	"github.com/spf13/cobra"
	"github.com/workbenchlabs/workbench/internal/config"
	"github.com/workbenchlabs/workbench/internal/core"
	"github.com/workbenchlabs/workbench/internal/doctor"
	"github.com/workbenchlabs/workbench/internal/workflows"
	"github.com/workbenchlabs/workbench/internal/workflows/steps"
	"github.com/workbenchlabs/workbench/pkg/exit"
	"github.com/workbenchlabs/workbench/pkg/runlock"
	"github.com/workbenchlabs/workbench/pkg/sys"
)

func createSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Installs the developer toolchain on this workstation",
		Long:  "Installs the base packages, Docker Engine, Node.js, OpenJDK and FastFetch on this workstation",
		Run: func(cmd *cobra.Command, args []string) {
			runSetup(cmd.Context())
		},
	}
}

func runSetup(ctx context.Context) {
	lock, err := runlock.New(os.TempDir())
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
	if err := lock.Acquire(); err != nil {
		doctor.CheckErr(ctx, err)
	}
	defer func() { _ = lock.Release() }()

	workspace, err := core.NewWorkspace(core.Paths(), nil)
	if err != nil {
		_ = lock.Release()
		doctor.CheckErr(ctx, err)
	}
	defer func() { _ = workspace.Cleanup() }()

	// The workspace must go away on interrupt as well as on normal exit.
	// Cleanup is once-guarded, so racing with the deferred call is safe.
	handler, shutdown := sys.NewSignalHandler()
	defer shutdown()
	for _, sig := range []os.Signal{syscall.SIGINT, syscall.SIGTERM} {
		_ = handler.Register(sig, func(s os.Signal) {
			logx.As().Warn().Str("signal", s.String()).Msg("Interrupted, cleaning up workspace")
			_ = workspace.Cleanup()
			_ = lock.Release()
			exit.GeneralError.TerminateProcess()
		})
	}

	wb, err := workflows.NewSetupWorkflow(workspace, config.Get()).Build()
	if err != nil {
		_ = workspace.Cleanup()
		_ = lock.Release()
		doctor.CheckErr(ctx, err)
	}

	report := wb.Execute(ctx)
	if report.Error != nil {
		instructions := doctor.GetInstructionsFromReport(report)
		_ = workspace.Cleanup()
		_ = lock.Release()
		doctor.CheckErr(ctx, report.Error, instructions)
	}

	logx.As().Info().Msg("Workstation setup completed successfully")

	timestamp := time.Now().Format("20060102_150405")
	reportPath := path.Join(core.Paths().LogsDir, fmt.Sprintf("setup_report_%s.yaml", timestamp))
	steps.PrintWorkflowReport(report)
	if err := steps.SaveWorkflowReport(reportPath, report); err != nil {
		logx.As().Warn().Err(err).Msg("Failed to save setup report")
		return
	}

	logx.As().Info().Str("report_path", reportPath).Msg("Setup report saved")
}
