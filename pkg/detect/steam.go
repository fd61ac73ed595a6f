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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const steamRegistryPath = `Software\Valve\Steam`

// SteamScanner finds the game in the primary Steam library and every
// secondary library listed in libraryfolders.vdf.
type SteamScanner struct {
	fs    afero.Fs
	reg   RegistryReader
	probe *Prober
}

func NewSteamScanner(fs afero.Fs, reg RegistryReader, probe *Prober) *SteamScanner {
	return &SteamScanner{fs: fs, reg: reg, probe: probe}
}

func (*SteamScanner) Name() string {
	return "steam"
}

func (s *SteamScanner) Scan() []Installation {
	steamPath, err := s.reg.StringValue(CurrentUser, steamRegistryPath, "SteamPath")
	if err != nil {
		log.Debug().Err(err).Msg("steam install path not found in registry")
		return nil
	}

	var results []Installation
	for _, root := range s.libraryRoots(steamPath) {
		if dir, ok := s.findInLibrary(root); ok {
			results = append(results, Installation{Path: dir, Source: SourceSteam})
		}
	}
	return results
}

// libraryRoots returns the primary root followed by any secondary roots from
// libraryfolders.vdf. An unreadable manifest leaves only the primary root.
func (s *SteamScanner) libraryRoots(steamPath string) []string {
	roots := []string{steamPath}

	manifest := filepath.Join(steamPath, "steamapps", "libraryfolders.vdf")
	data, err := afero.ReadFile(s.fs, manifest)
	if err != nil {
		log.Debug().Err(err).Str("path", manifest).Msg("failed to read steam library folders")
		return roots
	}

	roots = appendLibraryRoots(roots, string(data))
	log.Debug().Strs("roots", roots).Msg("steam library roots")
	return roots
}

func (s *SteamScanner) findInLibrary(root string) (string, bool) {
	steamApps := filepath.Join(root, "steamapps")

	gameDir := filepath.Join(steamApps, "common", GameDirName)
	if s.probe.IsValidInstallation(gameDir) {
		return gameDir, true
	}

	// The install folder can differ from the default name, in which case
	// the app manifest records the real one.
	installDir, ok := s.manifestInstallDir(steamApps)
	if !ok || strings.EqualFold(installDir, GameDirName) {
		return "", false
	}

	gameDir = filepath.Join(steamApps, "common", installDir)
	if s.probe.IsValidInstallation(gameDir) {
		return gameDir, true
	}
	return "", false
}

func (s *SteamScanner) manifestInstallDir(steamApps string) (string, bool) {
	path := filepath.Join(steamApps, fmt.Sprintf("appmanifest_%d.acf", SteamAppID))

	f, err := s.fs.Open(path)
	if err != nil {
		return "", false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing app manifest")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to parse app manifest")
		return "", false
	}
	m = normalizeVDFKeys(m)

	appState, ok := m["appstate"].(map[string]any)
	if !ok {
		return "", false
	}

	installDir, ok := appState["installdir"].(string)
	if !ok || installDir == "" {
		return "", false
	}

	// installdir is a bare folder name; anything else is not trusted.
	if filepath.Base(installDir) != installDir || installDir == ".." {
		log.Warn().Str("installdir", installDir).Msg("ignoring app manifest installdir with path components")
		return "", false
	}
	return installDir, true
}
