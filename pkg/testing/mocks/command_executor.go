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

package mocks

import (
	"context"
	"strconv"

	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for command.Executor.
// It allows testing code that executes system commands without actually running them.
type MockCommandExecutor struct {
	mock.Mock
}

// Run mocks the execution of a system command.
// Use On() to set expectations and Return() to control the mock behavior.
//
// Example:
//
//	mockCmd := &MockCommandExecutor{}
//	mockCmd.On("Run", mock.Anything, "7z", mock.Anything).Return(nil)
func (m *MockCommandExecutor) Run(ctx context.Context, name string, args ...string) error {
	called := m.Called(ctx, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

// Output mocks a command whose stdout is consumed by the caller.
func (m *MockCommandExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	out, _ := called.Get(0).([]byte)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return out, called.Error(1)
}

// CombinedOutput mocks a command whose merged output is kept as diagnostics.
func (m *MockCommandExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	out, _ := called.Get(0).([]byte)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return out, called.Error(1)
}

// LookPath mocks PATH resolution. Return the name itself for "found".
func (m *MockCommandExecutor) LookPath(name string) (string, error) {
	called := m.Called(name)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.String(0), called.Error(1)
}

// ExitError is a stand-in for *exec.ExitError, which tests cannot build.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) ExitCode() int {
	return e.Code
}
