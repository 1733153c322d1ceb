// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crosstalklabs/ardu88/pkg/ardu88"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Exercise the board with a full load/step/store sequence",
	Long: `Run a demonstration sequence against the board:

  1. Query firmware version
  2. Reset the CPU
  3. Load a register snapshot
  4. Step one bus cycle
  5. Read the address latch, status lines, and 8288 command/control lines
  6. Store the registers back

This is a quick end-to-end health check for the board and the link.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Connection: %s\n\n", connInfo)
	client := newClient(conn)

	name, ver, err := client.Version()
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	fmt.Printf("firmware:  %s v%d\n", name, ver)

	if err := client.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Println("reset:     ok")

	regs := ardu88.Registers{
		AX: 1, BX: 2, CX: 3, DX: 4,
		SS: 5, SP: 6, FLAGS: 7, IP: 8,
		CS: 9, DS: 10, ES: 11, BP: 12,
		SI: 13, DI: 14,
	}
	if err := client.LoadRegisters(regs); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	fmt.Println("load:      ok")

	if err := client.Cycle(); err != nil {
		return fmt.Errorf("cycle: %w", err)
	}
	fmt.Println("cycle:     ok")

	addr, err := client.ReadAddress()
	if err != nil {
		return fmt.Errorf("read address: %w", err)
	}
	fmt.Printf("address:   %05X\n", addr)

	status, err := client.ReadStatus()
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}
	fmt.Printf("status:    %s\n", ardu88.FormatStatus(status))

	cmd8288, err := client.Read8288Command()
	if err != nil {
		return fmt.Errorf("read 8288 command: %w", err)
	}
	fmt.Printf("8288 cmd:  %s\n", ardu88.Format8288Command(cmd8288))

	ctl8288, err := client.Read8288Control()
	if err != nil {
		return fmt.Errorf("read 8288 control: %w", err)
	}
	fmt.Printf("8288 ctl:  %s\n", ardu88.Format8288Control(ctl8288))

	stored, err := client.StoreRegisters()
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	fmt.Printf("\nstored registers:\n%s\n", stored)

	return nil
}
