// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/snapgraph/internal/validation"
)

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if verr := validation.ValidateStruct(c); verr != nil {
		errs = append(errs, verr)
	}

	errs = append(errs,
		c.validateDiscovery(),
		c.validateStore(),
		c.validateServer(),
		c.validateBackup(),
	)

	return errors.Join(errs...)
}

// validateDiscovery runs the engine's own settings checks, so a config that
// loads is one the engine accepts.
func (c *Config) validateDiscovery() error {
	if err := c.Discovery.Settings().Validate(); err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return errors.New("store: path is required unless in_memory is set")
	}
	return nil
}

func (c *Config) validateServer() error {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "" {
			return errors.New("server: cors_origins must not contain empty entries")
		}
	}
	if c.Server.Host == "" {
		return errors.New("server: host is required")
	}
	return nil
}

// validateBackup checks the backup section only when the service will run.
func (c *Config) validateBackup() error {
	if !c.Backup.Enabled {
		return nil
	}
	cfg := c.Backup.ManagerConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}
