package commands

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/spf13/cobra"
	"github.com/workbenchlabs/workbench/internal/doctor"
	"github.com/workbenchlabs/workbench/internal/workflows"
	"github.com/workbenchlabs/workbench/internal/workflows/steps"
)

func createCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validates preconditions and reports installed tool versions",
		Long:  "Validates host preconditions and reports installed tool versions without changing the system",
		Run: func(cmd *cobra.Command, args []string) {
			runCheck(cmd.Context())
		},
	}
}

func runCheck(ctx context.Context) {
	wb, err := workflows.NewCheckWorkflow().Build()
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	report := wb.Execute(ctx)
	if report.Error != nil {
		instructions := doctor.GetInstructionsFromReport(report)
		doctor.CheckErr(ctx, report.Error, instructions)
	}

	logx.As().Info().Msg("Workstation check completed")
	steps.PrintWorkflowReport(report)
}
