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
	"errors"
	"fmt"
	"sync"
)

// ErrPoisoned is returned by Guard when the guarded function panicked.
var ErrPoisoned = errors.New("critical section panicked")

// Guard runs fn while holding l and always releases it. A panic raised by
// fn is recovered and reported as an error wrapping ErrPoisoned, so a
// failed bookkeeping step degrades to a logged no-op instead of unwinding
// the caller with the lock held.
func Guard(l sync.Locker, fn func()) (err error) {
	l.Lock()
	defer l.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPoisoned, r)
		}
	}()
	fn()
	return nil
}
