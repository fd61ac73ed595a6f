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

package sidecar

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDataDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fromEnv  string
		dataHome string
		want     string
	}{
		{
			name:     "env_wins",
			fromEnv:  "/srv/rmm",
			dataHome: "/home/v/.local/share",
			want:     "/srv/rmm",
		},
		{
			name:     "per_user_dir",
			dataHome: "/home/v/.local/share",
			want:     filepath.Join("/home/v/.local/share", "com.rippermod.app"),
		},
		{
			name: "fallback_when_unknown",
			want: filepath.Join(".", "data"),
		},
		{
			name:     "fallback_when_relative",
			dataHome: ".local/share",
			want:     filepath.Join(".", "data"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resolveDataDir(tt.fromEnv, tt.dataHome))
		})
	}
}

func TestResolveBinary(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sibling := filepath.Join("/opt/rmm", BinaryName())
	require.NoError(t, afero.WriteFile(fs, sibling, []byte{0x7f}, 0o755))
	require.NoError(t, afero.WriteFile(fs, "/custom/backend", []byte{0x7f}, 0o755))
	require.NoError(t, fs.MkdirAll(filepath.Join("/opt/dir", BinaryName()), 0o755))

	t.Run("next_to_launcher", func(t *testing.T) {
		t.Parallel()
		got, err := resolveBinary(fs, "", "/opt/rmm")
		require.NoError(t, err)
		assert.Equal(t, sibling, got)
	})

	t.Run("override", func(t *testing.T) {
		t.Parallel()
		got, err := resolveBinary(fs, "/custom/backend", "/opt/rmm")
		require.NoError(t, err)
		assert.Equal(t, "/custom/backend", got)
	})

	t.Run("missing_override_does_not_fall_back", func(t *testing.T) {
		t.Parallel()
		_, err := resolveBinary(fs, "/custom/missing", "/opt/rmm")
		require.ErrorIs(t, err, ErrBinaryNotFound)
		assert.Contains(t, err.Error(), "/custom/missing")
	})

	t.Run("missing_sibling", func(t *testing.T) {
		t.Parallel()
		_, err := resolveBinary(fs, "", "/opt/empty")
		require.ErrorIs(t, err, ErrBinaryNotFound)
	})

	t.Run("sibling_is_directory", func(t *testing.T) {
		t.Parallel()
		_, err := resolveBinary(fs, "", "/opt/dir")
		require.ErrorIs(t, err, ErrBinaryNotFound)
	})

	t.Run("launcher_dir_unknown", func(t *testing.T) {
		t.Parallel()
		_, err := resolveBinary(fs, "", "")
		require.ErrorIs(t, err, ErrBinaryNotFound)
	})
}
