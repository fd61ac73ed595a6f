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

package syncutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	t.Run("runs_function_under_lock", func(t *testing.T) {
		t.Parallel()

		var mu Mutex
		ran := false
		err := Guard(&mu, func() { ran = true })

		require.NoError(t, err)
		assert.True(t, ran)
		assert.True(t, mu.TryLock(), "lock must be released")
	})

	t.Run("recovers_panic_and_releases_lock", func(t *testing.T) {
		t.Parallel()

		var mu Mutex
		err := Guard(&mu, func() { panic("boom") })

		require.ErrorIs(t, err, ErrPoisoned)
		assert.Contains(t, err.Error(), "boom")
		assert.True(t, mu.TryLock(), "lock must be released after panic")
	})

	t.Run("works_with_rwmutex", func(t *testing.T) {
		t.Parallel()

		var mu RWMutex
		require.NoError(t, Guard(&mu, func() {}))
	})
}
