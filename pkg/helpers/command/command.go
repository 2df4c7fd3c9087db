// ModBridge
// Copyright (c) 2026 The ModBridge Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of ModBridge.
//
// ModBridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ModBridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ModBridge.  If not, see <http://www.gnu.org/licenses/>.

// Package command provides an abstraction over exec.Command for testability.
package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/modbridge/modbridge/pkg/errs"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the
// process itself is gone, e.g. when wine children keep stdout open.
const waitDelay = 5 * time.Second

// Executor provides an abstraction over exec.Command for testability.
// This allows commands to be mocked in tests without executing real system commands.
type Executor interface {
	// Run executes a command and waits for it to complete.
	// Returns an error if the command fails to start or exits with non-zero status.
	Run(ctx context.Context, name string, args ...string) error

	// Output runs a command and returns its standard output. On a non-zero
	// exit the returned error is an *exec.ExitError carrying stderr.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// CombinedOutput runs a command and returns stdout and stderr interleaved.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath resolves a command name against PATH.
	LookPath(name string) (string, error)
}

// RealExecutor uses actual exec.Command to execute system commands.
// This is the production implementation used in normal operation.
type RealExecutor struct{}

func (*RealExecutor) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)
	return cmd
}

// Run executes a system command using exec.CommandContext.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (e *RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return e.command(ctx, name, args...).Run()
}

// Output runs a command and returns its standard output.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (e *RealExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return e.command(ctx, name, args...).Output()
}

// CombinedOutput runs a command and returns its merged stdout and stderr.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (e *RealExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return e.command(ctx, name, args...).CombinedOutput()
}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// ExitCode extracts the exit status from a command error. The second result
// is false when err does not describe a process that ran and exited.
func ExitCode(err error) (int, bool) {
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

// Stderr returns the captured stderr of a failed Output call, if any.
func Stderr(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(exitErr.Stderr)
	}
	return ""
}

// IsNotFound reports whether err means the executable does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// ToolError classifies a failed run of tool. A missing executable is a
// NotFound carrying remedy; a deadline or non-zero exit is an ExternalTool
// failure holding the captured output.
func ToolError(ctx context.Context, tool, remedy string, out []byte, err error) error {
	if IsNotFound(err) {
		return errs.NotFound(tool, remedy, err)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errs.ExternalTool(tool, -1, string(out), fmt.Errorf("timed out: %w", ctx.Err()))
	}
	code, _ := ExitCode(err)
	output := strings.TrimSpace(string(out) + "\n" + Stderr(err))
	return errs.ExternalTool(tool, code, output, err)
}
