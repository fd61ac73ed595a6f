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
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Options tunes the default scanner set.
type Options struct {
	// EpicManifestDir overrides DefaultEpicManifestDir.
	EpicManifestDir string
	// ExtraPaths are probed after the built-in common paths.
	ExtraPaths []string
}

// Resolver runs a fixed sequence of scanners and merges their results.
type Resolver struct {
	scanners []Scanner
}

func NewResolver(scanners ...Scanner) *Resolver {
	return &Resolver{scanners: scanners}
}

// DefaultScanners returns the scanners for the current platform followed by
// the static common-path scanner.
func DefaultScanners(fs afero.Fs, opts Options) []Scanner {
	probe := NewProber(fs)
	scanners := platformScanners(fs, probe, opts)
	return append(scanners, NewStaticScanner(probe, opts.ExtraPaths))
}

// ScanAll runs every scanner in order and returns the deduplicated results.
// It never fails; a broken source simply contributes nothing.
func (r *Resolver) ScanAll() []Installation {
	var all []Installation
	for _, s := range r.scanners {
		found := runScanner(s)
		log.Debug().Str("scanner", s.Name()).Int("found", len(found)).Msg("scanner finished")
		all = append(all, found...)
	}

	results := Dedup(all)
	log.Info().Int("installations", len(results)).Msg("installation scan complete")
	return results
}

func runScanner(s Scanner) (found []Installation) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("scanner", s.Name()).Interface("panic", r).Msg("scanner panicked")
			found = nil
		}
	}()
	return s.Scan()
}

// Dedup keeps the first installation for each normalized path. The source
// is not part of the key.
func Dedup(in []Installation) []Installation {
	return dedup(in, filepath.Separator)
}

func dedup(in []Installation, sep rune) []Installation {
	seen := make(map[string]struct{}, len(in))
	out := make([]Installation, 0, len(in))
	for _, inst := range in {
		key := normalizeKey(inst.Path, sep)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, inst)
	}
	return out
}

// normalizeKey converts forward slashes to sep, then lower-cases.
func normalizeKey(path string, sep rune) string {
	return strings.ToLower(strings.ReplaceAll(path, "/", string(sep)))
}
