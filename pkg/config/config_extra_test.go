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

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestSidecarAccessors_ConcurrentAccess runs readers against a writer. With
// -tags=deadlock a recursive lock in any accessor panics here.
func TestSidecarAccessors_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cfg := &Instance{vals: BaseDefaults}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		i := i
		go func() {
			for j := 0; j < 100; j++ {
				if i == 0 {
					cfg.SetSidecarEnabled(!cfg.SidecarEnabled())
					continue
				}
				_ = cfg.HealthAddr()
				_ = cfg.PollInterval()
				_ = cfg.ExtraPaths()
			}
			done <- struct{}{}
		}()
	}

	for j := 0; j < 10; j++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("concurrent access deadlocked")
		}
	}
}

func TestExtraPaths_ReturnsCopy(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	cfg.vals.Detection.ExtraPaths = []string{`F:\Games\Cyberpunk 2077`}

	paths := cfg.ExtraPaths()
	paths[0] = "mutated"

	assert.Equal(t, []string{`F:\Games\Cyberpunk 2077`}, cfg.ExtraPaths())
}

func TestNewConfigFile_ExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom", "rmm.toml")
	cfg, err := NewConfigFile(path, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.FileExists(t, path)
}

// TestPropertyExtraPathsSurviveReload checks that Windows and POSIX style
// install paths are written and read back unchanged.
func TestPropertyExtraPathsSurviveReload(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		paths := rapid.SliceOfN(
			rapid.StringMatching(`([A-Z]:\\|/)[a-zA-Z0-9 _().'\\/-]{0,40}`), 0, 5,
		).Draw(rt, "paths")

		defaults := BaseDefaults
		defaults.Detection.ExtraPaths = paths

		cfgPath := filepath.Join(t.TempDir(), CfgFile)
		cfg, err := NewConfigFile(cfgPath, defaults)
		if err != nil {
			rt.Fatalf("create config: %v", err)
		}

		reloaded, err := NewConfigFile(cfg.Path(), BaseDefaults)
		if err != nil {
			rt.Fatalf("reload config: %v", err)
		}

		got := reloaded.ExtraPaths()
		if len(got) != len(paths) {
			rt.Fatalf("expected %d paths, got %d", len(paths), len(got))
		}
		for i := range paths {
			if got[i] != paths[i] {
				rt.Fatalf("path %d: expected %q, got %q", i, paths[i], got[i])
			}
		}
	})
}
