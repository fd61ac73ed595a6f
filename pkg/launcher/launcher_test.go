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

package launcher

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rippermod/rippermod-launcher/pkg/helpers/command"
	"github.com/rippermod/rippermod-launcher/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	installRoot = "/games/Cyberpunk 2077"
	exeRel      = "bin/x64/Cyberpunk2077.exe"
)

func setupInstall(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(installRoot, exeRel), []byte("MZ"), 0o644))
	return fs
}

func TestLaunch_StartsDetachedInExeDir(t *testing.T) {
	t.Parallel()

	fs := setupInstall(t)
	exe := filepath.Join(installRoot, exeRel)

	mockCmd := &mocks.MockCommandExecutor{}
	mockCmd.On("Start", command.StartOptions{
		Dir:      filepath.Dir(exe),
		Detached: true,
	}, exe, []string{"-modded", "--launcher-skip"}).Return(4242, nil)

	l := NewLauncher(fs, mockCmd)
	err := l.Launch(installRoot, exeRel, []string{"-modded", "--launcher-skip"})

	require.NoError(t, err)
	mockCmd.AssertExpectations(t)
}

func TestLaunch_NoArgs(t *testing.T) {
	t.Parallel()

	fs := setupInstall(t)

	mockCmd := &mocks.MockCommandExecutor{}
	mockCmd.On("Start", mock.Anything, filepath.Join(installRoot, exeRel), []string(nil)).Return(1, nil)

	require.NoError(t, NewLauncher(fs, mockCmd).Launch(installRoot, exeRel, nil))
	mockCmd.AssertExpectations(t)
}

func TestLaunch_MissingExecutable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		install string
		exe     string
	}{
		{name: "install removed", install: "/games/gone", exe: exeRel},
		{name: "wrong relative path", install: installRoot, exe: "bin/x64/missing.exe"},
		{name: "points at a directory", install: installRoot, exe: "bin/x64"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockCmd := &mocks.MockCommandExecutor{}
			err := NewLauncher(setupInstall(t), mockCmd).Launch(tt.install, tt.exe, nil)

			require.ErrorIs(t, err, ErrExecutableNotFound)
			assert.Contains(t, err.Error(), filepath.Join(tt.install, tt.exe))
			mockCmd.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLaunch_SpawnFailure(t *testing.T) {
	t.Parallel()

	fs := setupInstall(t)
	startErr := errors.New("access is denied")

	mockCmd := &mocks.MockCommandExecutor{}
	mockCmd.On("Start", mock.Anything, mock.Anything, mock.Anything).Return(0, startErr)

	err := NewLauncher(fs, mockCmd).Launch(installRoot, exeRel, nil)

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, "access is denied", spawnErr.Reason)
	require.ErrorIs(t, err, startErr)
	assert.NotErrorIs(t, err, ErrExecutableNotFound)
}
