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

func TestStaticScanner(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	createInstall(t, fs, "/opt/games/cp2077")

	s := NewStaticScanner(NewProber(fs), []string{"/opt/games/cp2077", "/opt/games/missing"})
	got := s.Scan()

	assert.Equal(t, []Installation{
		{Path: "/opt/games/cp2077", Source: SourceStaticPath},
	}, got)
}

func TestStaticScanner_CommonPathsFirst(t *testing.T) {
	t.Parallel()

	s := NewStaticScanner(NewProber(afero.NewMemMapFs()), []string{"/extra"})

	assert.Len(t, s.paths, len(commonPaths)+1)
	assert.Equal(t, commonPaths[0], s.paths[0])
	assert.Equal(t, "/extra", s.paths[len(s.paths)-1])
}
