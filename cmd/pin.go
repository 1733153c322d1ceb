// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Read or drive CPU input pins",
	Long: `Read or drive the CPU input pins the board controls.

Pin numbers: 0=READY 1=TEST 2=INTR 3=NMI`,
}

var pinReadCmd = &cobra.Command{
	Use:   "read <pin>",
	Short: "Read the level of a CPU input pin",
	Args:  cobra.ExactArgs(1),
	RunE:  runPinRead,
}

var pinWriteCmd = &cobra.Command{
	Use:   "write <pin> <0|1>",
	Short: "Drive a CPU input pin low or high",
	Args:  cobra.ExactArgs(2),
	RunE:  runPinWrite,
}

func init() {
	pinCmd.AddCommand(pinReadCmd)
	pinCmd.AddCommand(pinWriteCmd)
	rootCmd.AddCommand(pinCmd)
}

func parsePin(arg string) (uint8, error) {
	n, err := strconv.ParseUint(arg, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid pin %q: %v", arg, err)
	}
	return uint8(n), nil
}

func runPinRead(cmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}

	conn, _, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	level, err := newClient(conn).ReadPin(pin)
	if err != nil {
		return fmt.Errorf("read pin %d: %w", pin, err)
	}
	fmt.Printf("pin %d = %d\n", pin, level)
	return nil
}

func runPinWrite(cmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	level, err := strconv.ParseUint(args[1], 0, 1)
	if err != nil {
		return fmt.Errorf("level must be 0 or 1, got %q", args[1])
	}

	conn, _, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := newClient(conn).WritePin(pin, level == 1); err != nil {
		return fmt.Errorf("write pin %d: %w", pin, err)
	}
	fmt.Printf("pin %d <- %d\n", pin, level)
	return nil
}
