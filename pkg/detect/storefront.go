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

import "github.com/rs/zerolog/log"

// Both the native and the 32-bit compatibility views of the uninstall list.
var uninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// StorefrontScanner finds installs registered in the Windows uninstall list,
// which is where GOG Galaxy records its games.
type StorefrontScanner struct {
	reg   RegistryReader
	probe *Prober
}

func NewStorefrontScanner(reg RegistryReader, probe *Prober) *StorefrontScanner {
	return &StorefrontScanner{reg: reg, probe: probe}
}

func (*StorefrontScanner) Name() string {
	return "storefront"
}

func (s *StorefrontScanner) Scan() []Installation {
	var results []Installation

	for _, base := range uninstallKeys {
		names, err := s.reg.SubKeyNames(LocalMachine, base)
		if err != nil {
			log.Debug().Err(err).Str("key", base).Msg("uninstall key not readable")
			continue
		}

		for _, name := range names {
			sub := base + `\` + name

			displayName, err := s.reg.StringValue(LocalMachine, sub, "DisplayName")
			if err != nil || !matchesTitle(displayName) {
				continue
			}

			location, err := s.reg.StringValue(LocalMachine, sub, "InstallLocation")
			if err != nil {
				log.Debug().Err(err).Str("key", sub).Msg("matching uninstall entry has no install location")
				continue
			}

			if s.probe.IsValidInstallation(location) {
				results = append(results, Installation{Path: location, Source: SourceStorefront})
			}
		}
	}

	return results
}
