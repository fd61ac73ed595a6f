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

package detect

import "errors"

// RegistryRoot selects a predefined registry hive.
type RegistryRoot int

const (
	CurrentUser RegistryRoot = iota
	LocalMachine
)

func (r RegistryRoot) String() string {
	switch r {
	case CurrentUser:
		return "HKCU"
	case LocalMachine:
		return "HKLM"
	default:
		return "HK?"
	}
}

// ErrKeyNotFound is returned by RegistryReader implementations when a key or
// value does not exist.
var ErrKeyNotFound = errors.New("registry key not found")

// RegistryReader is the read-only slice of the Windows registry the scanners
// need. Paths use backslash separators relative to the root.
type RegistryReader interface {
	StringValue(root RegistryRoot, path, name string) (string, error)
	SubKeyNames(root RegistryRoot, path string) ([]string, error)
}
