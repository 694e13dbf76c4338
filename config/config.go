// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Director configuration loading from ~/.config/b3/config.{json,yaml,toml}
//
// Grounded on texelation's config/config.go (same "load from
// ~/.config/<app>/config.*, log at INFO, fall back to defaults on a
// missing file" shape), generalized from a single-field, hand-rolled
// encoding/json loader to github.com/spf13/viper so the director can
// accept JSON, YAML, or TOML without adding a second loader — Viper is
// the config library the wider retrieval pack already leans on
// (bnema-dumber, DimaJoyti-AIOS, other_examples all depend on it).
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds tunables for the director that spec.md leaves as
// implementation choices rather than hard invariants.
type Config struct {
	// DefaultWorkspace is the id used to create a monitor's first
	// workspace when none exists yet.
	DefaultWorkspace string `mapstructure:"defaultWorkspace"`
	// DefaultSplitHorizontal is loaded and defaulted here but not read
	// by any other package: workspace.AddWin always splits a single-leaf
	// root HORIZONTALLY when a second window lands on it.
	DefaultSplitHorizontal bool `mapstructure:"defaultSplitHorizontal"`
	// RollingNeighbourDefault is the rolling flag move_active_win uses
	// for its in-workspace swap. set_active_win_by_direction does not
	// read it: its first pass always uses rolling=false and its retry
	// rolling=true.
	RollingNeighbourDefault bool `mapstructure:"rollingNeighbourDefault"`
	// LogVerbose turns on INFO-level nominal-transition logging (§7);
	// SEVERE-level subsystem-failure logging always happens.
	LogVerbose bool `mapstructure:"logVerbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultWorkspace:        "1",
		DefaultSplitHorizontal:  true,
		RollingNeighbourDefault: false,
		LogVerbose:              true,
	}
}

// Load loads configuration from ~/.config/b3/config.{json,yaml,toml}.
// If no such file exists, it returns the defaults unchanged — this is
// the expected, nominal path for a fresh install, not an error.
func Load() (*Config, error) {
	cfg := Default()

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Config: failed to get user config dir: %v", err)
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(configDir, "b3"))
	v.SetDefault("defaultWorkspace", cfg.DefaultWorkspace)
	v.SetDefault("defaultSplitHorizontal", cfg.DefaultSplitHorizontal)
	v.SetDefault("rollingNeighbourDefault", cfg.RollingNeighbourDefault)
	v.SetDefault("logVerbose", cfg.LogVerbose)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Config: no config file under %s, using defaults", filepath.Join(configDir, "b3"))
			return cfg, nil
		}
		return nil, err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	log.Printf("Config: loaded from %s", v.ConfigFileUsed())
	return cfg, nil
}
