// SPDX-License-Identifier: Apache-2.0

// Package profile appends environment export blocks to a user's shell
// profile. Blocks are identified by a marker comment so repeated runs never
// duplicate them.
package profile

import (
	"fmt"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/workbenchlabs/workbench/pkg/fsx"
)

const maxProfileSize = 1 << 20 // a shell profile larger than 1MB is suspect

// Block is a named group of export lines managed in a shell profile.
type Block struct {
	// Marker uniquely identifies the block, e.g. "workbench:jdk".
	Marker string
	// Lines are the shell statements of the block, without trailing newlines.
	Lines []string
}

func (b Block) markerComment() string {
	return fmt.Sprintf("# managed by workbench (%s)", b.Marker)
}

// Render returns the full block text including the marker comment.
func (b Block) Render() string {
	var sb strings.Builder
	sb.WriteString(b.markerComment())
	sb.WriteString("\n")
	for _, line := range b.Lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Manager writes managed blocks to a shell profile file.
type Manager struct {
	fileManager fsx.Manager
	path        string
}

// NewManager returns a Manager for the profile file at path.
func NewManager(path string, fileManager fsx.Manager) (*Manager, error) {
	if path == "" {
		return nil, errorx.IllegalArgument.New("profile path cannot be empty")
	}

	if fileManager == nil {
		fileManager = fsx.NewManager()
	}

	return &Manager{fileManager: fileManager, path: path}, nil
}

// Contains reports whether the profile already carries the block's marker.
func (m *Manager) Contains(b Block) (bool, error) {
	_, exists, err := m.fileManager.PathExists(m.path)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	payload, err := m.fileManager.ReadFile(m.path, maxProfileSize)
	if err != nil {
		return false, err
	}

	return strings.Contains(string(payload), b.markerComment()), nil
}

// Ensure appends the block to the profile unless its marker is already
// present. It reports whether the profile was modified.
func (m *Manager) Ensure(b Block) (bool, error) {
	if b.Marker == "" {
		return false, errorx.IllegalArgument.New("profile block marker cannot be empty")
	}
	if len(b.Lines) == 0 {
		return false, errorx.IllegalArgument.New("profile block %q has no lines", b.Marker)
	}

	present, err := m.Contains(b)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	if err := m.fileManager.AppendFile(m.path, []byte("\n"+b.Render())); err != nil {
		return false, err
	}

	return true, nil
}
