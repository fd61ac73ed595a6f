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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/rippermod/rippermod-launcher/pkg/config"
	"github.com/spf13/afero"
)

// BackendName is the worker executable's base name.
const BackendName = "rippermod-backend"

// ErrBinaryNotFound is returned when no worker executable can be located.
var ErrBinaryNotFound = errors.New("backend binary not found")

// fallbackDataDir is used when the per-user data directory is unknown.
var fallbackDataDir = filepath.Join(".", "data")

// BinaryName returns the worker executable name for the current platform.
func BinaryName() string {
	if runtime.GOOS == "windows" {
		return BackendName + ".exe"
	}
	return BackendName
}

// ResolveDataDir returns the directory handed to the worker in
// RMM_DATA_DIR. A value already set in the environment wins.
func ResolveDataDir() string {
	return resolveDataDir(os.Getenv(config.DataDirEnv), xdg.DataHome)
}

func resolveDataDir(fromEnv, dataHome string) string {
	if fromEnv != "" {
		return fromEnv
	}
	if dataHome == "" || !filepath.IsAbs(dataHome) {
		return fallbackDataDir
	}
	return filepath.Join(dataHome, config.AppID)
}

// resolveBinary returns the override if set, else the platform worker
// binary inside exeDir. Either must be an existing regular file.
func resolveBinary(fs afero.Fs, override, exeDir string) (string, error) {
	path := override
	if path == "" {
		if exeDir == "" {
			return "", fmt.Errorf("%w: launcher directory unknown", ErrBinaryNotFound)
		}
		path = filepath.Join(exeDir, BinaryName())
	}

	info, err := fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, path)
	}
	return path, nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}
