package steps

import (
	"fmt"
	"os"

	"github.com/automa-saga/automa"
	"github.com/workbenchlabs/workbench/internal/core"
	"gopkg.in/yaml.v3"
)

// PrintWorkflowReport prints the workflow execution report in YAML format
var PrintWorkflowReport = func(report *automa.Report) {
	b, err := yaml.Marshal(report)
	if err != nil {
		fmt.Printf("Failed to marshal report: %v\n", err)
		return
	}
	fmt.Printf("Workflow Execution Report:\n%s\n", b)
}

// SaveWorkflowReport writes the workflow execution report to a YAML file.
var SaveWorkflowReport = func(path string, report *automa.Report) error {
	b, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, core.DefaultFilePerm)
}
