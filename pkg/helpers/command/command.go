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

// Package command wraps os/exec process creation behind an interface so the
// game launcher can be tested without spawning real processes.
package command

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/rs/zerolog/log"
)

// StartOptions configures how a process is started.
type StartOptions struct {
	// Dir is the working directory of the new process. Empty means the
	// launcher's own working directory.
	Dir string

	// Env is appended to the launcher's environment.
	Env []string

	// HideWindow prevents a console window from appearing (Windows-only).
	HideWindow bool

	// Detached starts the process in its own session/process group so it
	// survives the launcher exiting.
	Detached bool
}

// SysProcAttr returns the platform process attributes for these options.
func (o StartOptions) SysProcAttr() *syscall.SysProcAttr {
	return sysProcAttr(o)
}

// Executor provides an abstraction over exec.Command for testability.
type Executor interface {
	// Start starts a command and returns its PID without waiting for it.
	// The caller keeps no handle to the started process.
	Start(opts StartOptions, name string, args ...string) (int, error)
}

// RealExecutor uses actual exec.Command to execute system commands.
type RealExecutor struct {
	// release frees the started process handle; nil means os.Process.Release.
	release func(*os.Process) error
}

// Compile-time interface implementation check.
var _ Executor = (*RealExecutor)(nil)

// Start starts a command and releases it. No context is attached because
// the started process must outlive any request that triggered it.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (e *RealExecutor) Start(opts StartOptions, name string, args ...string) (int, error) {
	//nolint:gosec // arguments are passed as discrete tokens, no shell involved
	cmd := exec.Command(name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}
	cmd.SysProcAttr = opts.SysProcAttr()

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	release := e.release
	if release == nil {
		release = (*os.Process).Release
	}

	// The process is already running; a release failure is not a start failure.
	pid := cmd.Process.Pid
	if err := release(cmd.Process); err != nil {
		log.Warn().Err(err).Int("pid", pid).Str("name", name).Msg("failed to release started process")
	}
	return pid, nil
}
