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

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// Prober checks candidate directories for the game executable.
type Prober struct {
	fs afero.Fs
}

func NewProber(fs afero.Fs) *Prober {
	return &Prober{fs: fs}
}

// ExecutablePath returns where the game executable lives under root.
func ExecutablePath(root string) string {
	return filepath.Join(root, "bin", "x64", GameExecutable)
}

// IsValidInstallation reports whether root/bin/x64/Cyberpunk2077.exe is a
// readable regular file. Any I/O error counts as "not an installation".
func (p *Prober) IsValidInstallation(root string) bool {
	if root == "" {
		return false
	}

	exe := ExecutablePath(root)
	info, err := p.fs.Stat(exe)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	f, err := p.fs.Open(exe)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
