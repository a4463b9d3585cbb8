// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
	"github.com/workbenchlabs/workbench/internal/doctor"
	"github.com/workbenchlabs/workbench/pkg/detect"

	"github.com/automa-saga/automa"
)

type fakeDetector struct {
	info *detect.OSInfo
	err  error
}

func (d *fakeDetector) ScanOS() (*detect.OSInfo, error) {
	return d.info, d.err
}

type fakeHostProfile struct {
	totalGB uint64
	freeGB  uint64
}

func (p *fakeHostProfile) TotalStorageGB() (uint64, error) {
	return p.totalGB, nil
}

func (p *fakeHostProfile) FreeSpaceGB(path string) (uint64, error) {
	return p.freeGB, nil
}

func failedStepError(report *automa.Report) error {
	for _, rpt := range report.StepReports {
		if rpt.Status == automa.StatusFailed && rpt.Error != nil {
			return rpt.Error
		}
	}
	return report.Error
}

func stubPreflight(t *testing.T, superuser bool, vendor string, freeGB uint64) {
	t.Helper()

	origDetector := osDetector
	origProfile := hostProfile
	origSuperuser := isSuperuser
	t.Cleanup(func() {
		osDetector = origDetector
		hostProfile = origProfile
		isSuperuser = origSuperuser
	})

	osDetector = &fakeDetector{info: &detect.OSInfo{
		Type:         "linux",
		Vendor:       vendor,
		Version:      "24.04",
		Architecture: "amd64",
	}}
	hostProfile = &fakeHostProfile{totalGB: 500, freeGB: freeGB}
	isSuperuser = func() bool { return superuser }
}

func TestPreflightWorkflow_Passes(t *testing.T) {
	stubPreflight(t, false, detect.VendorUbuntu, 100)

	wf, err := NewPreflightWorkflow().Build()
	require.NoError(t, err)

	report := wf.Execute(context.Background())
	require.Equal(t, automa.StatusSuccess, report.Status)
	require.NoError(t, report.Error)
	require.Len(t, report.StepReports, 3)
}

func TestPreflightWorkflow_RejectsSuperuser(t *testing.T) {
	stubPreflight(t, true, detect.VendorUbuntu, 100)

	wf, err := NewPreflightWorkflow().Build()
	require.NoError(t, err)

	report := wf.Execute(context.Background())
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)

	stepErr := failedStepError(report)
	require.Error(t, stepErr)

	hint, ok := errorx.ExtractProperty(stepErr, doctor.ErrPropertyResolution)
	require.True(t, ok)
	require.Contains(t, hint.(string), "regular user")
}

func TestPreflightWorkflow_RejectsUnsupportedOS(t *testing.T) {
	stubPreflight(t, false, "fedora", 100)

	wf, err := NewPreflightWorkflow().Build()
	require.NoError(t, err)

	report := wf.Execute(context.Background())
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
	require.Contains(t, failedStepError(report).Error(), "fedora")
}

func TestPreflightWorkflow_RejectsLowDiskSpace(t *testing.T) {
	stubPreflight(t, false, detect.VendorDebian, 2)

	wf, err := NewPreflightWorkflow().Build()
	require.NoError(t, err)

	report := wf.Execute(context.Background())
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
	require.Contains(t, failedStepError(report).Error(), "insufficient disk space")
}

func TestPreflightWorkflow_RejectsLowTotalStorage(t *testing.T) {
	stubPreflight(t, false, detect.VendorDebian, 100)
	hostProfile = &fakeHostProfile{totalGB: 16, freeGB: 100}

	wf, err := NewPreflightWorkflow().Build()
	require.NoError(t, err)

	report := wf.Execute(context.Background())
	require.Equal(t, automa.StatusFailed, report.Status)
	require.Error(t, report.Error)
	require.Contains(t, failedStepError(report).Error(), "insufficient total storage")
}
