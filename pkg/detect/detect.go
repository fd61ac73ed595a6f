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

// Package detect finds local Cyberpunk 2077 installations.
//
// Each storefront is covered by its own Scanner. A scanner never returns an
// error: missing registry keys, unreadable files and malformed manifests all
// degrade to "no candidates from this source". The Resolver runs the
// scanners for the current platform in a fixed order, then the static
// common-path scanner, and drops duplicate paths.
package detect

const (
	// GameExecutable is the marker file, found under bin/x64 of an install.
	GameExecutable = "Cyberpunk2077.exe"
	// GameDirName is the folder Steam installs the game into.
	GameDirName = "Cyberpunk 2077"
	// SteamAppID identifies the game in Steam app manifests.
	SteamAppID = 1091500

	titleKeyword = "cyberpunk"
	titleNumber  = "2077"
)

// Source identifies which discovery mechanism produced an Installation.
// The values are the labels shown by the GUI.
type Source string

const (
	SourceSteam            Source = "Steam"
	SourceStorefront       Source = "GOG"
	SourceLauncherManifest Source = "Epic"
	SourceStaticPath       Source = "Common Path"
)

// Installation is a candidate install directory.
type Installation struct {
	Path   string `json:"path"`
	Source Source `json:"source"`
}

// Scanner produces zero or more candidates from one discovery mechanism.
type Scanner interface {
	Name() string
	Scan() []Installation
}
