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

	"github.com/adrg/xdg"
)

var AppVersion = "DEVELOPMENT"

const (
	AppName    = "rippermod-launcher"
	AppID      = "com.rippermod.app"
	LogFile    = "launcher.log"
	CfgFile    = "launcher.toml"
	CfgEnv     = "RMM_LAUNCHER_CFG"
	DataDirEnv = "RMM_DATA_DIR"
)

// ConfigDir is the per-user directory holding the launcher config file.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppID)
}

// LogDir is the per-user directory holding the rotating launcher log.
func LogDir() string {
	return filepath.Join(xdg.StateHome, AppID, "logs")
}
