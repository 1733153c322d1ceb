// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crosstalklabs/ardu88/pkg/ardu88"
)

var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "Store and print the CPU register snapshot",
	RunE:  runRegs,
}

var (
	loadRegs  bool
	loadAX    uint16
	loadBX    uint16
	loadCX    uint16
	loadDX    uint16
	loadSS    uint16
	loadSP    uint16
	loadFLAGS uint16
	loadIP    uint16
	loadCS    uint16
	loadDS    uint16
	loadES    uint16
	loadBP    uint16
	loadSI    uint16
	loadDI    uint16
)

func init() {
	regsCmd.Flags().BoolVar(&loadRegs, "load", false, "Load the given register values before reading back")
	regsCmd.Flags().Uint16Var(&loadAX, "ax", 0, "AX value for --load")
	regsCmd.Flags().Uint16Var(&loadBX, "bx", 0, "BX value for --load")
	regsCmd.Flags().Uint16Var(&loadCX, "cx", 0, "CX value for --load")
	regsCmd.Flags().Uint16Var(&loadDX, "dx", 0, "DX value for --load")
	regsCmd.Flags().Uint16Var(&loadSS, "ss", 0, "SS value for --load")
	regsCmd.Flags().Uint16Var(&loadSP, "sp", 0, "SP value for --load")
	regsCmd.Flags().Uint16Var(&loadFLAGS, "flags", 0, "FLAGS value for --load")
	regsCmd.Flags().Uint16Var(&loadIP, "ip", 0, "IP value for --load")
	regsCmd.Flags().Uint16Var(&loadCS, "cs", 0, "CS value for --load")
	regsCmd.Flags().Uint16Var(&loadDS, "ds", 0, "DS value for --load")
	regsCmd.Flags().Uint16Var(&loadES, "es", 0, "ES value for --load")
	regsCmd.Flags().Uint16Var(&loadBP, "bp", 0, "BP value for --load")
	regsCmd.Flags().Uint16Var(&loadSI, "si", 0, "SI value for --load")
	regsCmd.Flags().Uint16Var(&loadDI, "di", 0, "DI value for --load")
	rootCmd.AddCommand(regsCmd)
}

func runRegs(cmd *cobra.Command, args []string) error {
	conn, _, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	client := newClient(conn)

	if loadRegs {
		regs := ardu88.Registers{
			AX: loadAX, BX: loadBX, CX: loadCX, DX: loadDX,
			SS: loadSS, SP: loadSP, FLAGS: loadFLAGS, IP: loadIP,
			CS: loadCS, DS: loadDS, ES: loadES, BP: loadBP,
			SI: loadSI, DI: loadDI,
		}
		if err := client.LoadRegisters(regs); err != nil {
			return fmt.Errorf("load: %w", err)
		}
	}

	regs, err := client.StoreRegisters()
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	fmt.Println(regs)
	return nil
}
