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

// Package launcher starts the game executable of a detected installation.
package launcher

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rippermod/rippermod-launcher/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrExecutableNotFound is returned when the requested executable is not a
// file inside the installation. Nothing is started in that case.
var ErrExecutableNotFound = errors.New("game executable not found")

// SpawnError reports that the operating system refused to create the game
// process.
type SpawnError struct {
	Err    error
	Reason string
}

func (e *SpawnError) Error() string {
	return "failed to start game: " + e.Reason
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Launcher starts the game and forgets about it. The game's lifetime is
// independent of the launcher.
type Launcher struct {
	fs   afero.Fs
	exec command.Executor
}

func NewLauncher(fs afero.Fs, exec command.Executor) *Launcher {
	return &Launcher{fs: fs, exec: exec}
}

// Launch re-validates installPath/exeRelPath and starts it detached, with
// the executable's directory as working directory. Arguments are passed as
// discrete tokens with no shell in between.
func (l *Launcher) Launch(installPath, exeRelPath string, args []string) error {
	exe := filepath.Join(installPath, exeRelPath)

	// The install may have moved or been removed since it was detected.
	info, err := l.fs.Stat(exe)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, exe)
	}

	opts := command.StartOptions{
		Dir:      filepath.Dir(exe),
		Detached: true,
	}

	pid, err := l.exec.Start(opts, exe, args...)
	if err != nil {
		log.Error().Err(err).Str("exe", exe).Msg("failed to start game")
		return &SpawnError{Reason: err.Error(), Err: err}
	}

	log.Info().Str("exe", exe).Strs("args", args).Int("pid", pid).Msg("game started")
	return nil
}
