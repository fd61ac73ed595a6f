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

// Package events is the one-way notification channel from the launcher core
// to the GUI shell. Publishers never wait for an acknowledgement.
package events

import (
	"encoding/json"
	"io"

	"github.com/rippermod/rippermod-launcher/pkg/helpers/syncutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Topic names a notification the GUI shell can subscribe to.
type Topic string

const (
	TopicBackendReady         Topic = "backend-ready"
	TopicBackendCrashed       Topic = "backend-crashed"
	TopicBackendStartupFailed Topic = "backend-startup-failed"
	TopicNXMLink              Topic = "nxm-link"
)

// Notification is a single published event with an optional payload.
type Notification struct {
	Payload any   `json:"payload,omitempty"`
	Topic   Topic `json:"topic"`
}

// Sink receives notifications. Implementations must not block the caller
// for longer than it takes to hand the notification off.
type Sink interface {
	Emit(topic Topic, payload any)
}

// ChanSink delivers notifications on a buffered channel. When the buffer is
// full the notification is dropped and logged rather than blocking the
// publisher.
type ChanSink struct {
	ch chan Notification
}

// NewChanSink creates a ChanSink with the given buffer size.
func NewChanSink(size int) *ChanSink {
	return &ChanSink{ch: make(chan Notification, size)}
}

// C returns the receive side for subscribers.
func (s *ChanSink) C() <-chan Notification {
	return s.ch
}

func (s *ChanSink) Emit(topic Topic, payload any) {
	select {
	case s.ch <- Notification{Topic: topic, Payload: payload}:
	default:
		log.Warn().Str("topic", string(topic)).Msg("notification buffer full, dropping event")
	}
}

// WriterSink writes each notification as one JSON line, for a host GUI that
// reads the launcher's stdout.
type WriterSink struct {
	w  io.Writer
	mu syncutil.Mutex
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(topic Topic, payload any) {
	data, err := json.Marshal(Notification{Topic: topic, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("topic", string(topic)).Msg("failed to encode notification")
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(data); err != nil {
		log.Error().Err(err).Str("topic", string(topic)).Msg("failed to write notification")
	}
}

// LogSink records notifications in the launcher log so a session can be
// reconstructed after the GUI has gone away.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) LogSink {
	return LogSink{logger: logger}
}

func (s LogSink) Emit(topic Topic, payload any) {
	ev := s.logger.Info().Str("topic", string(topic))
	if payload != nil {
		ev = ev.Interface("payload", payload)
	}
	ev.Msg("notification")
}

// Fanout emits every notification to each of its sinks in order.
type Fanout []Sink

func (f Fanout) Emit(topic Topic, payload any) {
	for _, s := range f {
		s.Emit(topic, payload)
	}
}

func BackendReady(s Sink) {
	s.Emit(TopicBackendReady, nil)
}

// BackendCrashed reports that the worker process exited. exitCode is nil
// when the exit status could not be determined.
func BackendCrashed(s Sink, exitCode *int) {
	if exitCode == nil {
		s.Emit(TopicBackendCrashed, nil)
		return
	}
	s.Emit(TopicBackendCrashed, *exitCode)
}

func BackendStartupFailed(s Sink, reason string) {
	s.Emit(TopicBackendStartupFailed, reason)
}

func NXMLink(s Sink, uri string) {
	s.Emit(TopicNXMLink, uri)
}
