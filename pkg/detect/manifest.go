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
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DefaultEpicManifestDir is where the Epic Games Launcher keeps one .item
// JSON manifest per installed title.
const DefaultEpicManifestDir = `C:\ProgramData\Epic\EpicGamesLauncher\Data\Manifests`

const manifestExt = ".item"

type launcherManifest struct {
	DisplayName     string `mapstructure:"DisplayName"`
	InstallLocation string `mapstructure:"InstallLocation"`
}

// ManifestScanner finds installs described by launcher JSON manifests.
type ManifestScanner struct {
	fs    afero.Fs
	probe *Prober
	dir   string
}

func NewManifestScanner(fs afero.Fs, dir string, probe *Prober) *ManifestScanner {
	return &ManifestScanner{fs: fs, dir: dir, probe: probe}
}

func (*ManifestScanner) Name() string {
	return "launcher-manifest"
}

func (s *ManifestScanner) Scan() []Installation {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		log.Debug().Err(err).Str("dir", s.dir).Msg("launcher manifest directory not readable")
		return nil
	}

	var results []Installation
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), manifestExt) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		m, ok := s.readManifest(path)
		if !ok || !matchesTitle(m.DisplayName) || m.InstallLocation == "" {
			continue
		}

		if s.probe.IsValidInstallation(m.InstallLocation) {
			results = append(results, Installation{Path: m.InstallLocation, Source: SourceLauncherManifest})
		}
	}

	return results
}

func (s *ManifestScanner) readManifest(path string) (launcherManifest, bool) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to read launcher manifest")
		return launcherManifest{}, false
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("skipping malformed launcher manifest")
		return launcherManifest{}, false
	}

	var m launcherManifest
	if err := mapstructure.Decode(raw, &m); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("skipping launcher manifest with unexpected fields")
		return launcherManifest{}, false
	}
	return m, true
}
