// RipperMod Launcher
// Copyright (c) 2026 The RipperMod Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of RipperMod Launcher.
//
// RipperMod Launcher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// RipperMod Launcher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RipperMod Launcher.  If not, see <http://www.gnu.org/licenses/>.

package mocks

import (
	"github.com/rippermod/rippermod-launcher/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for command.Executor.
// It allows testing code that starts processes without actually running them.
//
// Example:
//
//	mockCmd := &MockCommandExecutor{}
//	mockCmd.On("Start", mock.Anything, `C:\Games\bin\x64\Cyberpunk2077.exe`, []string{"-modded"}).Return(1234, nil)
type MockCommandExecutor struct {
	mock.Mock
}

var _ command.Executor = (*MockCommandExecutor)(nil)

// Start mocks starting a process. Note that args is matched as a []string.
func (m *MockCommandExecutor) Start(opts command.StartOptions, name string, args ...string) (int, error) {
	called := m.Called(opts, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Int(0), called.Error(1)
}
