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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestManifestScanner(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	createInstall(t, fs, "/epic/Cyberpunk2077")

	writeFile(t, fs, "/manifests/A1B2.item", `{
		"FormatVersion": 0,
		"DisplayName": "Cyberpunk 2077",
		"InstallLocation": "/epic/Cyberpunk2077",
		"AppName": "Ginger"
	}`)
	writeFile(t, fs, "/manifests/broken.item", `{"DisplayName": "Cyberpunk 2077", `)
	writeFile(t, fs, "/manifests/wrongtype.item", `{"DisplayName": 2077, "InstallLocation": "/epic/Cyberpunk2077"}`)
	writeFile(t, fs, "/manifests/other.item", `{"DisplayName": "Fortnite", "InstallLocation": "/epic/Fortnite"}`)
	writeFile(t, fs, "/manifests/missing.item", `{"DisplayName": "Cyberpunk 2077", "InstallLocation": "/epic/gone"}`)
	writeFile(t, fs, "/manifests/notes.txt", `{"DisplayName": "Cyberpunk 2077", "InstallLocation": "/epic/Cyberpunk2077"}`)
	createInstall(t, fs, "/manifests/dir.item")

	s := NewManifestScanner(fs, "/manifests", NewProber(fs))
	got := s.Scan()

	assert.Equal(t, []Installation{
		{Path: "/epic/Cyberpunk2077", Source: SourceLauncherManifest},
	}, got)
}

func TestManifestScanner_MissingDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := NewManifestScanner(fs, "/does/not/exist", NewProber(fs))
	assert.Empty(t, s.Scan())
}
