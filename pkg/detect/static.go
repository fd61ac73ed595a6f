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

// commonPaths are conventional install locations probed on every platform.
var commonPaths = []string{
	`C:\Program Files (x86)\Steam\steamapps\common\Cyberpunk 2077`,
	`C:\Program Files\Steam\steamapps\common\Cyberpunk 2077`,
	`C:\GOG Games\Cyberpunk 2077`,
	`D:\SteamLibrary\steamapps\common\Cyberpunk 2077`,
	`D:\Games\Cyberpunk 2077`,
	`E:\SteamLibrary\steamapps\common\Cyberpunk 2077`,
	`E:\Games\Cyberpunk 2077`,
	`G:\SteamLibrary\steamapps\common\Cyberpunk 2077`,
}

// StaticScanner probes the built-in common paths, then any extra paths from
// the user's config.
type StaticScanner struct {
	probe *Prober
	paths []string
}

func NewStaticScanner(probe *Prober, extra []string) *StaticScanner {
	paths := make([]string, 0, len(commonPaths)+len(extra))
	paths = append(paths, commonPaths...)
	paths = append(paths, extra...)
	return &StaticScanner{probe: probe, paths: paths}
}

func (*StaticScanner) Name() string {
	return "static-paths"
}

func (s *StaticScanner) Scan() []Installation {
	var results []Installation
	for _, p := range s.paths {
		if s.probe.IsValidInstallation(p) {
			results = append(results, Installation{Path: p, Source: SourceStaticPath})
		}
	}
	return results
}
