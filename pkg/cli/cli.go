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

// Package cli is the launcher's command-line front end.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rippermod/rippermod-launcher/internal/telemetry"
	"github.com/rippermod/rippermod-launcher/pkg/config"
	"github.com/rippermod/rippermod-launcher/pkg/helpers"
	"github.com/rippermod/rippermod-launcher/pkg/helpers/command"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Globals are flags shared by every command.
type Globals struct {
	Config    string `help:"Path to launcher.toml." type:"path" env:"RMM_LAUNCHER_CFG"`
	Debug     bool   `help:"Enable debug logging."`
	NoSidecar bool   `help:"Do not start the backend worker." name:"no-sidecar"`
}

// CLI is the launcher's command tree.
type CLI struct {
	Run     RunCmd     `cmd:"" default:"withargs" help:"Supervise the backend and stream notifications as JSON lines (default)."`
	Scan    ScanCmd    `cmd:"" help:"Print detected game installations as JSON."`
	Launch  LaunchCmd  `cmd:"" help:"Start the game from an installation directory."`
	Version VersionCmd `cmd:"" help:"Print the launcher version."`
	Globals
}

// Env carries the process-level dependencies commands run against.
type Env struct {
	Stdout io.Writer
	Fs     afero.Fs
	Exec   command.Executor
	Cfg    *config.Instance
}

// Parse builds the kong parser and parses args.
func Parse(c *CLI, args []string) (*kong.Context, error) {
	parser, err := kong.New(c,
		kong.Name(config.AppName),
		kong.Description("RipperMod launcher: finds Cyberpunk 2077 and supervises the RipperMod backend."),
		kong.UsageOnError(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build command line parser: %w", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return kctx, nil
}

// loadDotEnv loads .env from the working directory without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Setup initializes logging, the user config and error reporting.
func Setup(g *Globals, defaults config.Values, writers []io.Writer) (*config.Instance, error) {
	err := helpers.InitLogging(config.LogDir(), writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	var cfg *config.Instance
	if g.Config != "" {
		cfg, err = config.NewConfigFile(g.Config, defaults)
	} else {
		cfg, err = config.NewConfig(config.ConfigDir(), defaults)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if g.NoSidecar {
		cfg.SetSidecarEnabled(false)
	}

	if cfg.DebugLogging() || g.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := telemetry.Init(telemetry.Options{
		Enabled:   cfg.ErrorReporting(),
		InstallID: cfg.InstallID(),
		Version:   config.AppVersion,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	log.Info().Str("version", config.AppVersion).Str("config", cfg.Path()).Msg("launcher starting")
	return cfg, nil
}

// Main runs the launcher with the given arguments and returns the process
// exit code.
func Main(args []string) int {
	if err := loadDotEnv(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	var c CLI
	kctx, err := Parse(&c, args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if kctx.Command() == "version" {
		return exitCode(kctx.Run(&c.Globals, &Env{Stdout: os.Stdout}))
	}

	cfg, err := Setup(&c.Globals, config.BaseDefaults, []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer telemetry.Close()

	env := &Env{
		Stdout: os.Stdout,
		Fs:     afero.NewOsFs(),
		Exec:   &command.RealExecutor{},
		Cfg:    cfg,
	}
	return exitCode(kctx.Run(&c.Globals, env))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	log.Error().Err(err).Msg("command failed")
	_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
