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

package sidecar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/rippermod/rippermod-launcher/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

const (
	// maxLineSize bounds a single relayed output line.
	maxLineSize = 1024 * 1024

	// outputWaitDelay is how long output is still read after the worker
	// exits while something else holds its pipes open.
	outputWaitDelay = time.Second
)

// OutputKind classifies an OutputEvent.
type OutputKind int

const (
	OutputStdout OutputKind = iota
	OutputStderr
	OutputTerminated
	OutputError
)

// OutputEvent is one item from a running worker's output stream.
// Terminated and Error are always the last event on the channel.
type OutputEvent struct {
	Err error
	// ExitCode is set on Terminated when the process exited normally.
	ExitCode *int
	Line     string
	Kind     OutputKind
}

// Process is a started worker.
type Process interface {
	Pid() int
	Kill() error
}

// Command describes the worker process to start.
type Command struct {
	Path string
	Dir  string
	Args []string
	// Env is appended to the launcher's environment.
	Env []string
}

// Starter starts worker processes with captured output.
type Starter interface {
	Start(c Command) (Process, <-chan OutputEvent, error)
}

// ExecStarter starts workers with os/exec.
type ExecStarter struct{}

var _ Starter = ExecStarter{}

func (ExecStarter) Start(c Command) (Process, <-chan OutputEvent, error) {
	//nolint:gosec // worker path comes from config or sits next to the launcher
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(cmd.Environ(), c.Env...)
	cmd.SysProcAttr = command.StartOptions{HideWindow: true}.SysProcAttr()

	// Children of the worker can inherit its output handles. Wait stops
	// copying from them once WaitDelay has passed after the worker exits.
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	cmd.WaitDelay = outputWaitDelay

	if err := cmd.Start(); err != nil {
		_ = stdoutW.Close()
		_ = stderrW.Close()
		return nil, nil, fmt.Errorf("start %s: %w", c.Path, err)
	}

	out := make(chan OutputEvent, 64)

	var readers sync.WaitGroup
	readers.Add(2)
	go scanLines(stdoutR, OutputStdout, out, &readers)
	go scanLines(stderrR, OutputStderr, out, &readers)

	go func() {
		ev := exitEvent(cmd.Wait())
		_ = stdoutW.Close()
		_ = stderrW.Close()
		readers.Wait()
		out <- ev
		close(out)
	}()

	return &execProcess{cmd: cmd}, out, nil
}

func scanLines(r io.Reader, kind OutputKind, out chan<- OutputEvent, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		out <- OutputEvent{Kind: kind, Line: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		log.Debug().Err(err).Msg("worker output stream ended with error")
		// keep the writer side unblocked until the worker is gone
		_, _ = io.Copy(io.Discard, r)
	}
}

func exitEvent(err error) OutputEvent {
	if err == nil {
		code := 0
		return OutputEvent{Kind: OutputTerminated, ExitCode: &code}
	}

	// Output was cut off after a clean exit.
	if errors.Is(err, exec.ErrWaitDelay) {
		code := 0
		return OutputEvent{Kind: OutputTerminated, ExitCode: &code}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 means killed by a signal; there is no code to report.
		if code := exitErr.ExitCode(); code >= 0 {
			return OutputEvent{Kind: OutputTerminated, ExitCode: &code}
		}
		return OutputEvent{Kind: OutputTerminated}
	}

	return OutputEvent{Kind: OutputError, Err: fmt.Errorf("wait for worker: %w", err)}
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Kill() error {
	if err := p.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("kill worker: %w", err)
	}
	return nil
}
