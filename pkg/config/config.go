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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rippermod/rippermod-launcher/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

const SchemaVersion = 1

type Values struct {
	InstallID      string    `toml:"install_id"`
	Detection      Detection `toml:"detection,omitempty"`
	Sidecar        Sidecar   `toml:"sidecar"`
	Service        Service   `toml:"service"`
	ConfigSchema   int       `toml:"config_schema"`
	DebugLogging   bool      `toml:"debug_logging"`
	ErrorReporting bool      `toml:"error_reporting"`
}

type Sidecar struct {
	// Binary overrides the worker executable. Empty means the bundled
	// worker next to the launcher executable.
	Binary               string `toml:"binary,omitempty"`
	HealthAddr           string `toml:"health_addr" validate:"required,hostname_port"`
	HealthPath           string `toml:"health_path" validate:"required,startswith=/"`
	PollAttempts         int    `toml:"poll_attempts" validate:"min=1,max=10000"`
	PollIntervalMS       int    `toml:"poll_interval_ms" validate:"min=1"`
	ReadTimeoutMS        int    `toml:"read_timeout_ms" validate:"min=1"`
	StartupFailedDelayMS int    `toml:"startup_failed_delay_ms" validate:"min=0"`
	Enabled              bool   `toml:"enabled"`
}

type Detection struct {
	EpicManifestDir string   `toml:"epic_manifest_dir,omitempty"`
	ExtraPaths      []string `toml:"extra_paths,omitempty,multiline"`
}

type Service struct {
	// SingleInstancePort is the loopback port used to forward a second
	// launch's arguments to the running instance. 0 disables the guard.
	SingleInstancePort int `toml:"single_instance_port" validate:"min=0,max=65535"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Sidecar: Sidecar{
		Enabled:              true,
		HealthAddr:           "127.0.0.1:8425",
		HealthPath:           "/health",
		PollAttempts:         60,
		PollIntervalMS:       500,
		ReadTimeoutMS:        2000,
		StartupFailedDelayMS: 2000,
	},
	Service: Service{
		SingleInstancePort: 8426,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig loads the config from configDir, writing the defaults to disk
// first if no file exists yet. The RMM_LAUNCHER_CFG environment variable
// overrides the file location.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	return NewConfigFile(cfgPath, defaults)
}

// NewConfigFile is NewConfig for an explicit file path.
//
//nolint:gocritic // config struct copied for immutability
func NewConfigFile(cfgPath string, defaults Values) (*Instance, error) {
	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	//nolint:gosec // Safe: reads the launcher's own config file
	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields missing from the file keep their default values.
	newVals := c.defaults
	newVals.Detection.ExtraPaths = slices.Clone(c.defaults.Detection.ExtraPaths)
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := validate.Struct(&newVals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	if c.vals.InstallID == "" {
		c.vals.InstallID = uuid.New().String()
		log.Info().Msgf("generated new install id: %s", c.vals.InstallID)
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) ErrorReporting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.ErrorReporting
}

func (c *Instance) InstallID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.InstallID
}

func (c *Instance) SidecarEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Sidecar.Enabled
}

func (c *Instance) SetSidecarEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Sidecar.Enabled = enabled
}

func (c *Instance) SidecarBinary() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Sidecar.Binary
}

func (c *Instance) HealthAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Sidecar.HealthAddr
}

func (c *Instance) HealthPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Sidecar.HealthPath
}

func (c *Instance) PollAttempts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Sidecar.PollAttempts
}

func (c *Instance) PollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Sidecar.PollIntervalMS) * time.Millisecond
}

func (c *Instance) ReadTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Sidecar.ReadTimeoutMS) * time.Millisecond
}

func (c *Instance) StartupFailedDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Sidecar.StartupFailedDelayMS) * time.Millisecond
}

// ExtraPaths returns a copy of the user-configured install locations probed
// after the built-in common paths.
func (c *Instance) ExtraPaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.vals.Detection.ExtraPaths...)
}

func (c *Instance) EpicManifestDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Detection.EpicManifestDir
}

func (c *Instance) SingleInstancePort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Service.SingleInstancePort
}
