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
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

const (
	healthOKStatus = "200"
	healthOKBody   = "healthy"
)

// checkHealth sends a single GET to the worker over a raw TCP connection and
// reports whether the response contains both the status and body tokens.
// Any connection or read failure is returned as an error.
func checkHealth(ctx context.Context, addr, path string, timeout time.Duration) (healthy bool, err error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		closeErr := conn.Close()
		if closeErr == nil {
			return
		}
		// The response is already read; a close failure does not change it.
		if err == nil {
			log.Debug().Err(closeErr).Str("addr", addr).Msg("failed to close health connection")
			return
		}
		err = multierr.Append(err, closeErr)
	}()

	if err = conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return false, fmt.Errorf("failed to set deadline: %w", err)
	}

	req := "GET " + path + " HTTP/1.1\r\nHost: " + addr + "\r\nConnection: close\r\n\r\n"
	if _, err = io.WriteString(conn, req); err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	text := string(resp)
	return strings.Contains(text, healthOKStatus) && strings.Contains(text, healthOKBody), nil
}
