// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/crosstalklabs/ardu88/pkg/ardu88"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Engine flags
	readTimeout time.Duration
	verbose     bool

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "ardu88",
	Short: "Ardui88 bus-interface board control",
	Long: `ardu88 - host-side driver and CLI for the Ardui88 bus-interface board.

The Ardui88 board exposes an 8088 CPU's pin and bus state over a serial
link. This tool issues the board's fixed-format commands: load and store
register snapshots, single-step bus cycles, inspect address/status/8288
lines, and record cycle traces.

Connection modes:
  Serial:    --port /dev/ttyACM0 [--baud 1000000]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the ARDU88_PASSWORD
environment variable, or prompted interactively if not set. Defaults for
port, baud, and URL may also be placed in a TOML config file at
$XDG_CONFIG_HOME/ardu88/config.toml.`,
	Version: "1.2.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	cobra.OnInitialize(applyConfigDefaults)

	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", ardu88.DefaultBaudRate, "Baud rate (serial only)")
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
	rootCmd.PersistentFlags().DurationVar(&readTimeout, "timeout", time.Second, "Reply read timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace wire traffic")
}

// newClient wraps an open connection in a protocol client with the CLI's
// logger attached.
func newClient(conn Connection) *ardu88.Client {
	return ardu88.New(conn, ardu88.WithLogger(logger))
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
