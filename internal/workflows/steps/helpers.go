package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/workbenchlabs/workbench/internal/workflows/notify"
)

// completeOrSkip routes the completion callback to the skip handler when the
// step's check predicate found nothing to do.
func completeOrSkip(ctx context.Context, stp automa.Step, rpt *automa.Report, msg string) {
	if rpt.Status == automa.StatusSkipped {
		notify.As().StepSkip(ctx, stp, rpt, msg)
		return
	}

	notify.As().StepCompletion(ctx, stp, rpt, msg)
}
