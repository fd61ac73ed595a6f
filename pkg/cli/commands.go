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

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rippermod/rippermod-launcher/pkg/config"
	"github.com/rippermod/rippermod-launcher/pkg/detect"
	"github.com/rippermod/rippermod-launcher/pkg/events"
	"github.com/rippermod/rippermod-launcher/pkg/launcher"
	"github.com/rippermod/rippermod-launcher/pkg/sidecar"
	"github.com/rippermod/rippermod-launcher/pkg/singleinstance"
	"github.com/rs/zerolog/log"
)

// RunCmd is the long-running shell: it owns the single-instance port,
// supervises the backend and writes notifications to stdout until
// interrupted.
type RunCmd struct {
	Args []string `arg:"" optional:"" help:"Launch arguments, such as nxm:// links."`
}

func (c *RunCmd) Run(env *Env) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, env)
}

func (c *RunCmd) run(ctx context.Context, env *Env) error {
	sink := events.Fanout{
		events.NewWriterSink(env.Stdout),
		events.NewLogSink(log.Logger),
	}

	if port := env.Cfg.SingleInstancePort(); port > 0 {
		guard, err := singleinstance.Acquire(port, sink)
		if err == nil {
			defer func() {
				if err := guard.Close(); err != nil {
					log.Warn().Err(err).Msg("error releasing single instance port")
				}
			}()
		} else {
			fwdErr := singleinstance.Forward(ctx, port, c.Args)
			if fwdErr == nil {
				log.Info().Int("port", port).Msg("handed arguments to running instance")
				return nil
			}
			log.Warn().Err(err).AnErr("forward", fwdErr).
				Msg("single instance port unavailable, continuing without it")
		}
	}

	singleinstance.HandleArgs(sink, c.Args)

	var sup *sidecar.Supervisor
	if env.Cfg.SidecarEnabled() {
		sup = sidecar.NewSupervisor(sidecar.OptionsFromConfig(env.Cfg), sink)
		sup.Start(ctx)
	} else {
		log.Info().Msg("backend supervision disabled")
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if sup != nil {
		log.Info().Object("backend", sup.Status()).Msg("backend status at shutdown")
		sup.Terminate()
	}
	return nil
}

// ScanCmd prints every detected installation.
type ScanCmd struct {
	Pretty bool `help:"Indent the JSON output."`
}

func (c *ScanCmd) Run(env *Env) error {
	r := detect.NewResolver(detect.DefaultScanners(env.Fs, detect.Options{
		EpicManifestDir: env.Cfg.EpicManifestDir(),
		ExtraPaths:      env.Cfg.ExtraPaths(),
	})...)

	enc := json.NewEncoder(env.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r.ScanAll()); err != nil {
		return fmt.Errorf("failed to write installations: %w", err)
	}
	return nil
}

// LaunchCmd starts the game from an installation directory.
type LaunchCmd struct {
	Path string   `required:"" help:"Installation directory." type:"path"`
	Exe  string   `default:"bin/x64/Cyberpunk2077.exe" help:"Executable path relative to the installation."`
	Args []string `arg:"" optional:"" help:"Arguments passed to the game."`
}

func (c *LaunchCmd) Run(env *Env) error {
	l := launcher.NewLauncher(env.Fs, env.Exec)
	if err := l.Launch(c.Path, c.Exe, c.Args); err != nil {
		var spawnErr *launcher.SpawnError
		if errors.As(err, &spawnErr) {
			return fmt.Errorf("could not start the game: %w", err)
		}
		return fmt.Errorf("could not launch from %s: %w", c.Path, err)
	}
	return nil
}

type VersionCmd struct{}

func (*VersionCmd) Run(env *Env) error {
	_, err := fmt.Fprintf(env.Stdout, "%s %s\n", config.AppName, config.AppVersion)
	if err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}
	return nil
}
