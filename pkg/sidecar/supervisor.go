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

// Package sidecar supervises the backend worker process.
//
// The supervisor starts at most one worker, relays its output to the log,
// polls its health endpoint until it reports ready, and reports a crash
// when the worker exits. It never restarts the worker.
package sidecar

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rippermod/rippermod-launcher/pkg/config"
	"github.com/rippermod/rippermod-launcher/pkg/events"
	"github.com/rippermod/rippermod-launcher/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/afero"
)

// ErrAlreadyRunning is returned by Spawn while a worker is held.
var ErrAlreadyRunning = errors.New("backend already running")

// Options are the supervisor's tunables, normally taken from config.
type Options struct {
	// Binary overrides the worker path. Empty means next to the launcher.
	Binary             string
	HealthAddr         string
	HealthPath         string
	PollAttempts       int
	PollInterval       time.Duration
	ReadTimeout        time.Duration
	StartupFailedDelay time.Duration
}

// DefaultOptions returns the built-in supervisor settings.
func DefaultOptions() Options {
	return Options{
		HealthAddr:         "127.0.0.1:8425",
		HealthPath:         "/health",
		PollAttempts:       60,
		PollInterval:       500 * time.Millisecond,
		ReadTimeout:        2 * time.Second,
		StartupFailedDelay: 2 * time.Second,
	}
}

// OptionsFromConfig reads the [sidecar] section of cfg.
func OptionsFromConfig(cfg *config.Instance) Options {
	return Options{
		Binary:             cfg.SidecarBinary(),
		HealthAddr:         cfg.HealthAddr(),
		HealthPath:         cfg.HealthPath(),
		PollAttempts:       cfg.PollAttempts(),
		PollInterval:       cfg.PollInterval(),
		ReadTimeout:        cfg.ReadTimeout(),
		StartupFailedDelay: cfg.StartupFailedDelay(),
	}
}

type healthFunc func(ctx context.Context, addr, path string, timeout time.Duration) (bool, error)

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithClock replaces the clock used for poll and grace delays.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Supervisor) {
		s.clock = clock
	}
}

// WithStarter replaces how the worker process is started.
func WithStarter(starter Starter) Option {
	return func(s *Supervisor) {
		s.starter = starter
	}
}

// WithFs replaces the filesystem used to locate the worker binary.
func WithFs(fs afero.Fs) Option {
	return func(s *Supervisor) {
		s.fs = fs
	}
}

// Supervisor owns the single worker handle. It is safe for concurrent use.
type Supervisor struct {
	clock   clockwork.Clock
	starter Starter
	fs      afero.Fs
	sink    events.Sink
	proc    Process
	health  healthFunc
	dataDir func() string
	exeDir  func() string
	opts    Options
	wg      sync.WaitGroup
	mu      syncutil.Mutex
	state   State
}

func NewSupervisor(opts Options, sink events.Sink, options ...Option) *Supervisor {
	s := &Supervisor{
		opts:    opts,
		sink:    sink,
		clock:   clockwork.NewRealClock(),
		starter: ExecStarter{},
		fs:      afero.NewOsFs(),
		health:  checkHealth,
		dataDir: ResolveDataDir,
		exeDir:  executableDir,
		state:   StateNotStarted,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Start spawns the worker. A spawn failure is logged and, after the grace
// delay, reported as backend-startup-failed so a GUI that is still
// loading does not miss it.
func (s *Supervisor) Start(ctx context.Context) {
	err := s.Spawn(ctx)
	if err == nil {
		return
	}

	log.Error().Err(err).Msg("failed to start backend")
	if errors.Is(err, ErrAlreadyRunning) {
		return
	}

	reason := err.Error()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.clock.Sleep(s.opts.StartupFailedDelay)
		events.BackendStartupFailed(s.sink, reason)
	}()
}

// Spawn starts the worker and the output relay and health poll goroutines.
func (s *Supervisor) Spawn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("spawn cancelled: %w", err)
	}

	var held bool
	if err := syncutil.Guard(&s.mu, func() {
		held = s.proc != nil || s.state == StateSpawning
		if !held {
			s.state = StateSpawning
		}
	}); err != nil {
		log.Error().Err(err).Msg("failed to read backend handle")
	}
	if held {
		return ErrAlreadyRunning
	}

	bin, err := resolveBinary(s.fs, s.opts.Binary, s.exeDir())
	if err != nil {
		s.setState(StateStartupFailed)
		return err
	}

	dataDir := s.dataDir()
	log.Info().Str("binary", bin).Str("dataDir", dataDir).Msg("starting backend")

	proc, output, err := s.starter.Start(Command{
		Path: bin,
		Dir:  filepath.Dir(bin),
		Env:  []string{config.DataDirEnv + "=" + dataDir},
	})
	if err != nil {
		s.setState(StateStartupFailed)
		return fmt.Errorf("failed to spawn backend: %w", err)
	}

	if err := syncutil.Guard(&s.mu, func() {
		s.proc = proc
		s.state = StateRunning
	}); err != nil {
		log.Error().Err(err).Msg("failed to store backend handle")
	}
	log.Info().Int("pid", proc.Pid()).Msg("backend started")

	// Polling outlives the caller's context; only its values are kept.
	pollCtx := context.WithoutCancel(ctx)

	s.wg.Add(2)
	go s.relay(proc, output)
	go s.pollHealth(pollCtx)

	return nil
}

// Terminate kills the held worker, if any. The kill result is ignored and
// repeated calls are no-ops.
func (s *Supervisor) Terminate() {
	var proc Process
	if err := syncutil.Guard(&s.mu, func() {
		proc = s.proc
		s.proc = nil
		if proc != nil {
			s.state = StateTerminated
		}
	}); err != nil {
		log.Error().Err(err).Msg("failed to take backend handle")
		return
	}

	if proc == nil {
		return
	}

	log.Info().Int("pid", proc.Pid()).Msg("terminating backend")
	if err := proc.Kill(); err != nil {
		log.Debug().Err(err).Msg("backend kill failed")
	}
}

// Wait blocks until the relay, poll and grace-delay goroutines finish.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}

func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PID returns the held worker's process id, or 0.
func (s *Supervisor) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return 0
	}
	return s.proc.Pid()
}

// Running reports whether the held worker's process still exists.
func (s *Supervisor) Running() bool {
	pid := s.PID()
	if pid <= 0 {
		return false
	}
	exists, err := process.PidExists(int32(pid)) //nolint:gosec // pids fit in int32
	if err != nil {
		log.Debug().Err(err).Int("pid", pid).Msg("failed to check backend process")
		return false
	}
	return exists
}

// Status reports the current state, the held pid and whether that process
// still exists.
func (s *Supervisor) Status() Status {
	return Status{
		State:   s.State(),
		PID:     s.PID(),
		Running: s.Running(),
	}
}

func (s *Supervisor) setState(state State) {
	if err := syncutil.Guard(&s.mu, func() {
		s.state = state
	}); err != nil {
		log.Error().Err(err).Msg("failed to update backend state")
	}
}

// advance moves from one state to another only if the supervisor is still
// in the expected state, so a late poll result cannot overwrite a crash or
// a termination.
func (s *Supervisor) advance(from, to State) {
	if err := syncutil.Guard(&s.mu, func() {
		if s.state == from {
			s.state = to
		}
	}); err != nil {
		log.Error().Err(err).Msg("failed to update backend state")
	}
}

func (s *Supervisor) relay(proc Process, output <-chan OutputEvent) {
	defer s.wg.Done()

	for ev := range output {
		switch ev.Kind {
		case OutputStdout, OutputStderr:
			log.Info().Str("stream", streamName(ev.Kind)).Msg(ev.Line)
		case OutputTerminated:
			if ev.ExitCode != nil {
				log.Warn().Int("exitCode", *ev.ExitCode).Msg("backend exited")
			} else {
				log.Warn().Msg("backend exited without an exit code")
			}
			s.released(proc)
			events.BackendCrashed(s.sink, ev.ExitCode)
			return
		case OutputError:
			log.Error().Err(ev.Err).Msg("backend output error")
			return
		}
	}
}

// released drops the handle after the worker exited on its own. A handle
// already taken by Terminate, or replaced by a newer spawn, is left alone.
func (s *Supervisor) released(proc Process) {
	if err := syncutil.Guard(&s.mu, func() {
		if s.proc != proc {
			return
		}
		s.proc = nil
		s.state = StateCrashed
	}); err != nil {
		log.Error().Err(err).Msg("failed to release backend handle")
	}
}

func (s *Supervisor) pollHealth(ctx context.Context) {
	defer s.wg.Done()

	for attempt := 1; attempt <= s.opts.PollAttempts; attempt++ {
		s.clock.Sleep(s.opts.PollInterval)

		ok, err := s.health(ctx, s.opts.HealthAddr, s.opts.HealthPath, s.opts.ReadTimeout)
		if ok {
			log.Info().Int("attempt", attempt).Msg("backend is ready")
			s.advance(StateRunning, StateReady)
			events.BackendReady(s.sink)
			return
		}
		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Msg("backend health check failed")
		}
	}

	log.Error().Int("attempts", s.opts.PollAttempts).Msg("backend did not become healthy")
	s.advance(StateRunning, StateStartupFailed)
	events.BackendStartupFailed(s.sink, "health check timed out")
}

func streamName(kind OutputKind) string {
	if kind == OutputStderr {
		return "stderr"
	}
	return "stdout"
}
