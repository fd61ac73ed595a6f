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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProber_IsValidInstallation(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	createInstall(t, fs, "/games/Cyberpunk 2077")
	require.NoError(t, fs.MkdirAll("/games/empty/bin/x64", 0o755))
	require.NoError(t, fs.MkdirAll(ExecutablePath("/games/dir-not-file"), 0o755))
	writeFile(t, fs, "/games/wrong-exe/bin/x64/witcher3.exe", "MZ")

	p := NewProber(fs)

	tests := []struct {
		name string
		root string
		want bool
	}{
		{name: "valid install", root: "/games/Cyberpunk 2077", want: true},
		{name: "missing executable", root: "/games/empty", want: false},
		{name: "root does not exist", root: "/nowhere", want: false},
		{name: "executable is a directory", root: "/games/dir-not-file", want: false},
		{name: "different game", root: "/games/wrong-exe", want: false},
		{name: "empty root", root: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.IsValidInstallation(tt.root))
		})
	}
}

func TestProber_RealFilesystem(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	p := NewProber(afero.NewOsFs())
	assert.False(t, p.IsValidInstallation(root))

	fs := afero.NewOsFs()
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "bin", "x64"), 0o750))
	createInstall(t, fs, root)
	assert.True(t, p.IsValidInstallation(root))
}

func TestMatchesTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "exact", input: "Cyberpunk 2077", want: true},
		{name: "upper case", input: "CYBERPUNK 2077", want: true},
		{name: "with expansion", input: "Cyberpunk 2077: Phantom Liberty", want: true},
		{name: "tokens in any order", input: "2077 - cyberpunk edition", want: true},
		{name: "keyword only", input: "Cyberpunk Red", want: false},
		{name: "number only", input: "Year 2077", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchesTitle(tt.input))
		})
	}
}
