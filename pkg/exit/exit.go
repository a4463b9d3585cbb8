// SPDX-License-Identifier: Apache-2.0

package exit

import (
	"fmt"
	"os"
)

type Code int

func (ec Code) String() string {
	return fmt.Sprintf("%d", ec)
}

func (ec Code) Int() int {
	return int(ec)
}

func (ec Code) TerminateProcess() {
	os.Exit(int(ec))
}

func (ec Code) Is(other int) bool {
	return int(ec) == other
}

const MinValidExitCode Code = 0
const MaxValidExitCode Code = 255

// POSIX standard exit code definitions.

const NormalTermination Code = 0
const GeneralError Code = 1
const UsageError Code = 64
const DataFormatError Code = 65
const MissingInputError Code = 66
const ServiceUnavailable Code = 69
const InternalError Code = 70
const SystemError Code = 71
const TemporaryFailure Code = 75
const PermissionDenied Code = 77
const ConfigurationError Code = 78

// Application specific exit code definitions.
//
// The process itself always terminates with GeneralError on any failure;
// the finer grained codes are recorded in step reports and diagnostics.

const PreconditionFailure Code = 80
const StepFailure Code = 81
