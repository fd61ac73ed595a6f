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
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// fakeRegistry is an in-memory RegistryReader keyed by "HIVE\path".
type fakeRegistry struct {
	values  map[string]map[string]string
	subkeys map[string][]string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		values:  make(map[string]map[string]string),
		subkeys: make(map[string][]string),
	}
}

func regKey(root RegistryRoot, path string) string {
	return strings.ToLower(root.String() + `\` + path)
}

func (r *fakeRegistry) setValue(root RegistryRoot, path, name, value string) {
	k := regKey(root, path)
	if r.values[k] == nil {
		r.values[k] = make(map[string]string)
	}
	r.values[k][name] = value
}

// addUninstallEntry registers a subkey under base with the given values.
func (r *fakeRegistry) addUninstallEntry(base, name string, values map[string]string) {
	k := regKey(LocalMachine, base)
	r.subkeys[k] = append(r.subkeys[k], name)
	for n, v := range values {
		r.setValue(LocalMachine, base+`\`+name, n, v)
	}
}

func (r *fakeRegistry) StringValue(root RegistryRoot, path, name string) (string, error) {
	vals, ok := r.values[regKey(root, path)]
	if !ok {
		return "", ErrKeyNotFound
	}
	v, ok := vals[name]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (r *fakeRegistry) SubKeyNames(root RegistryRoot, path string) ([]string, error) {
	names, ok := r.subkeys[regKey(root, path)]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return names, nil
}

func createInstall(t *testing.T, fs afero.Fs, root string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, ExecutablePath(root), []byte("MZ"), 0o644))
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

// staticScanner returns fixed results, for resolver tests.
type staticResults struct {
	name    string
	results []Installation
}

func (s staticResults) Name() string         { return s.name }
func (s staticResults) Scan() []Installation { return s.results }

type panickingScanner struct{}

func (panickingScanner) Name() string         { return "broken" }
func (panickingScanner) Scan() []Installation { panic("corrupt source") }
