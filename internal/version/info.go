// SPDX-License-Identifier: Apache-2.0

package version

import (
	"encoding/json"
	"runtime"
	"strings"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

// Supported output formats for the version subcommand.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Info is the build identity reported by `workbench version` and attached to
// error diagnostics.
type Info struct {
	Number    string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	GoVersion string `json:"go" yaml:"go"`
}

var versionInfo = Info{
	Number:    Number(),
	Commit:    Commit(),
	GoVersion: runtime.Version(),
}

// Get returns the build identity captured at process start.
func Get() Info {
	return versionInfo
}

// Format renders the info as yaml or json. The format name is matched
// case-insensitively.
func (v Info) Format(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		out, err := json.Marshal(v)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to render version info as json")
		}
		return string(out), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to render version info as yaml")
		}
		return string(out), nil
	default:
		return "", errorx.IllegalFormat.New("unsupported format: %s", format)
	}
}
