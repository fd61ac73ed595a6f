//go:build windows

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
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// WindowsRegistry reads the live Windows registry.
type WindowsRegistry struct{}

var _ RegistryReader = WindowsRegistry{}

func hive(root RegistryRoot) registry.Key {
	if root == LocalMachine {
		return registry.LOCAL_MACHINE
	}
	return registry.CURRENT_USER
}

func openKey(root RegistryRoot, path string, access uint32) (registry.Key, error) {
	key, err := registry.OpenKey(hive(root), path, access)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, fmt.Errorf("%s\\%s: %w", root, path, ErrKeyNotFound)
		}
		return 0, fmt.Errorf("failed to open %s\\%s: %w", root, path, err)
	}
	return key, nil
}

func closeKey(key registry.Key) {
	if err := key.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing registry key")
	}
}

func (WindowsRegistry) StringValue(root RegistryRoot, path, name string) (string, error) {
	key, err := openKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer closeKey(key)

	value, _, err := key.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf("%s\\%s\\%s: %w", root, path, name, ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed to read %s\\%s\\%s: %w", root, path, name, err)
	}
	return value, nil
}

func (WindowsRegistry) SubKeyNames(root RegistryRoot, path string) ([]string, error) {
	key, err := openKey(root, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, err
	}
	defer closeKey(key)

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s\\%s: %w", root, path, err)
	}
	return names, nil
}
