// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the TOML config file. Every field is optional;
// command-line flags always win.
type fileConfig struct {
	Port     string `toml:"port"`
	Baud     int    `toml:"baud"`
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Timeout  string `toml:"timeout"`
}

// configPath returns the config file location, honoring XDG_CONFIG_HOME.
func configPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ardu88", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ardu88", "config.toml")
}

// loadConfig parses the config file at path. A missing file is not an
// error; a malformed one is.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// applyConfigDefaults fills flag values from the config file for any flag
// the user left unset.
func applyConfigDefaults() {
	cfg, err := loadConfig(configPath())
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring malformed config file")
		return
	}

	flags := rootCmd.PersistentFlags()
	if cfg.Port != "" && !flags.Changed("port") {
		portName = cfg.Port
	}
	if cfg.Baud > 0 && !flags.Changed("baud") {
		baudRate = cfg.Baud
	}
	if cfg.URL != "" && !flags.Changed("url") {
		wsURL = cfg.URL
	}
	if cfg.Username != "" && !flags.Changed("username") {
		wsUsername = cfg.Username
	}
	if cfg.Timeout != "" && !flags.Changed("timeout") {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil && d > 0 {
			readTimeout = d
		}
	}
}
