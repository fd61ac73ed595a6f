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

import "strings"

// ExtractVDFValue returns the value of a `"key"  "value"` line from a Valve
// KeyValues text file. It takes the text between the last two quotes on the
// line, so a line opening a nested object yields nothing, and collapses the
// escaped `\\` separators Steam writes into single backslashes. Lines with
// fewer than two quoted tokens, or an empty value, return false.
func ExtractVDFValue(line string) (string, bool) {
	quotes := make([]int, 0, 4)
	for i := 0; i < len(line); i++ {
		if line[i] == '"' {
			quotes = append(quotes, i)
		}
	}

	if len(quotes) < 4 {
		return "", false
	}

	start := quotes[len(quotes)-2] + 1
	end := quotes[len(quotes)-1]
	if start >= end {
		return "", false
	}

	return strings.ReplaceAll(line[start:end], `\\`, `\`), true
}

// appendLibraryRoots scans libraryfolders.vdf content for "path" entries and
// appends each one not already in roots (compared case-insensitively).
func appendLibraryRoots(roots []string, content string) []string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, `"path"`) {
			continue
		}

		value, ok := ExtractVDFValue(trimmed)
		if !ok {
			continue
		}

		known := false
		for _, root := range roots {
			if strings.EqualFold(root, value) {
				known = true
				break
			}
		}
		if !known {
			roots = append(roots, value)
		}
	}
	return roots
}

// normalizeVDFKeys recursively lowercases all keys in a parsed VDF tree.
// KeyValues keys are case-insensitive but Go maps are not.
func normalizeVDFKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeVDFKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}
