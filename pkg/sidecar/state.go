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

import "github.com/rs/zerolog"

// State is the supervisor's view of the worker lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateSpawning
	StateRunning
	StateReady
	StateStartupFailed
	StateCrashed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateReady:
		return "ready"
	case StateStartupFailed:
		return "startup-failed"
	case StateCrashed:
		return "crashed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Status is a snapshot of the supervised worker for diagnostics.
type Status struct {
	State   State
	PID     int
	Running bool
}

func (s Status) MarshalZerologObject(e *zerolog.Event) {
	e.Str("state", s.State.String()).Int("pid", s.PID).Bool("running", s.Running)
}
