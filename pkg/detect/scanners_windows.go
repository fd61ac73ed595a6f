//go:build windows

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

import "github.com/spf13/afero"

func platformScanners(fs afero.Fs, probe *Prober, opts Options) []Scanner {
	reg := WindowsRegistry{}

	manifestDir := opts.EpicManifestDir
	if manifestDir == "" {
		manifestDir = DefaultEpicManifestDir
	}

	return []Scanner{
		NewSteamScanner(fs, reg, probe),
		NewStorefrontScanner(reg, probe),
		NewManifestScanner(fs, manifestDir, probe),
	}
}
