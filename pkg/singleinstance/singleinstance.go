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

// Package singleinstance keeps one launcher running per user. The first
// instance listens on a loopback port; later instances hand their
// command-line arguments to it and exit. Deep links (nxm://) found in
// forwarded arguments are published as nxm-link notifications.
package singleinstance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rippermod/rippermod-launcher/pkg/events"
	"github.com/rs/zerolog/log"
)

const (
	// NXMScheme prefixes mod manager deep links.
	NXMScheme = "nxm://"

	argsPath        = "/args"
	maxBodyBytes    = 64 * 1024
	forwardTimeout  = 5 * time.Second
	shutdownTimeout = 2 * time.Second
)

// ErrAlreadyRunning is returned by Acquire when the port is taken,
// normally by another launcher instance.
var ErrAlreadyRunning = errors.New("another launcher instance is running")

// Server is the primary instance's argument receiver.
type Server struct {
	srv  *http.Server
	done chan struct{}
	addr string
}

func address(port int) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
}

// Acquire claims the single-instance port and starts serving forwarded
// arguments. Call Close on shutdown.
func Acquire(port int, sink events.Sink) (*Server, error) {
	l, err := net.Listen("tcp", address(port))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlreadyRunning, err)
	}

	s := &Server{
		srv: &http.Server{
			Handler:           NewRouter(sink),
			ReadHeaderTimeout: forwardTimeout,
		},
		done: make(chan struct{}),
		addr: l.Addr().String(),
	}

	go func() {
		defer close(s.done)
		if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("single instance server stopped")
		}
	}()

	log.Info().Str("addr", s.addr).Msg("single instance lock acquired")
	return s, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// Close stops the server and releases the port.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	<-s.done
	if err != nil {
		return fmt.Errorf("failed to stop single instance server: %w", err)
	}
	return nil
}

// NewRouter returns the handler served by the primary instance.
func NewRouter(sink events.Sink) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Post(argsPath, func(w http.ResponseWriter, r *http.Request) {
		var args []string
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&args); err != nil {
			log.Warn().Err(err).Msg("invalid forwarded arguments")
			http.Error(w, "expected a JSON array of strings", http.StatusBadRequest)
			return
		}

		log.Info().Strs("args", args).Msg("received arguments from another instance")
		HandleArgs(sink, args)
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

// HandleArgs publishes an nxm-link notification for every deep link in
// args and returns how many were found.
func HandleArgs(sink events.Sink, args []string) int {
	n := 0
	for _, arg := range args {
		if len(arg) < len(NXMScheme) || !strings.EqualFold(arg[:len(NXMScheme)], NXMScheme) {
			continue
		}
		events.NXMLink(sink, arg)
		n++
	}
	return n
}

// Forward sends args to the instance listening on port.
func Forward(ctx context.Context, port int, args []string) error {
	return forward(ctx, &http.Client{Timeout: forwardTimeout}, "http://"+address(port)+argsPath, args)
}

func forward(ctx context.Context, client *http.Client, url string, args []string) error {
	if args == nil {
		args = []string{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to forward arguments: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing forward response body")
		}
	}()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("running instance rejected arguments: %s", resp.Status)
	}
	return nil
}
