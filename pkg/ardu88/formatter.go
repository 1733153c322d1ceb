// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import (
	"fmt"
	"strings"
)

// Status byte layout:
//
//	bit 0-2  S0-S2 bus cycle type
//	bit 6-7  QS0-QS1 queue operation
//
// 8288 command byte: one bit per command output line.
// 8288 control byte: one bit per control output line.
// The board reports asserted lines as 1 regardless of the active-low
// electrical convention.
const (
	statusCycleMask  = 0x07
	statusQueueShift = 6
)

var busCycleNames = [8]string{
	"INTA", // interrupt acknowledge
	"IOR",  // I/O read
	"IOW",  // I/O write
	"HALT",
	"CODE", // code fetch
	"MEMR", // memory read
	"MEMW", // memory write
	"PASV", // passive
}

var queueOpNames = [4]string{
	"-",  // no queue operation
	"F",  // first byte of instruction
	"E",  // queue emptied (flush)
	"S",  // subsequent byte
}

var command8288Names = []string{
	"MRDC",
	"AMWC",
	"MWTC",
	"IORC",
	"AIOWC",
	"IOWC",
	"INTA",
}

var control8288Names = []string{
	"ALE",
	"DTR",
	"MCE/PDEN",
	"DEN",
}

// BusCycleName decodes the S0-S2 bits of a status byte.
func BusCycleName(status uint8) string {
	return busCycleNames[status&statusCycleMask]
}

// QueueOpName decodes the QS0-QS1 bits of a status byte.
func QueueOpName(status uint8) string {
	return queueOpNames[status>>statusQueueShift&0x03]
}

// FormatStatus renders a status byte as "MEMR q=F (0x45)".
func FormatStatus(status uint8) string {
	return fmt.Sprintf("%s q=%s (0x%02X)", BusCycleName(status), QueueOpName(status), status)
}

// Format8288Command lists the asserted 8288 command lines, or "-" when none
// are active.
func Format8288Command(cmd uint8) string {
	return formatLines(cmd, command8288Names)
}

// Format8288Control lists the asserted 8288 control lines, or "-" when none
// are active.
func Format8288Control(ctl uint8) string {
	return formatLines(ctl, control8288Names)
}

func formatLines(bits uint8, names []string) string {
	active := []string{}
	for i, name := range names {
		if bits&(1<<i) != 0 {
			active = append(active, name)
		}
	}
	if len(active) == 0 {
		return "-"
	}
	return strings.Join(active, " ")
}

// FormatCycleState renders one line of per-cycle state for trace and step
// output.
func FormatCycleState(addr uint32, cs CycleState) string {
	return fmt.Sprintf("%05X %-4s q=%s cmd=[%s] ctl=[%s] data=%02X",
		addr, BusCycleName(cs.Status), QueueOpName(cs.Status),
		Format8288Command(cs.Command), Format8288Control(cs.Control), cs.Data)
}
