// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import "testing"

func TestCommandTable(t *testing.T) {
	tests := []struct {
		cmd        Command
		opcode     byte
		payloadLen int
		name       string
	}{
		{CmdNone, 0x00, 0, "NONE"},
		{CmdVersion, 0x01, 0, "VERSION"},
		{CmdReset, 0x02, 0, "RESET"},
		{CmdLoad, 0x03, 28, "LOAD"},
		{CmdCycle, 0x04, 0, "CYCLE"},
		{CmdReadAddress, 0x05, 0, "READ_ADDRESS"},
		{CmdReadStatus, 0x06, 0, "READ_STATUS"},
		{CmdRead8288Command, 0x07, 0, "READ_8288_COMMAND"},
		{CmdRead8288Control, 0x08, 0, "READ_8288_CONTROL"},
		{CmdReadDataBus, 0x09, 0, "READ_DATA_BUS"},
		{CmdWriteDataBus, 0x0A, 1, "WRITE_DATA_BUS"},
		{CmdFinalize, 0x0B, 0, "FINALIZE"},
		{CmdBeginStore, 0x0C, 0, "BEGIN_STORE"},
		{CmdStore, 0x0D, 0, "STORE"},
		{CmdQueueLen, 0x0E, 0, "QUEUE_LEN"},
		{CmdQueueBytes, 0x0F, 0, "QUEUE_BYTES"},
		{CmdWritePin, 0x10, 2, "WRITE_PIN"},
		{CmdReadPin, 0x11, 1, "READ_PIN"},
		{CmdGetProgramState, 0x12, 0, "GET_PROGRAM_STATE"},
		{CmdGetLastError, 0x13, 0, "GET_LAST_ERROR"},
		{CmdGetCycleStatus, 0x14, 0, "GET_CYCLE_STATUS"},
		{CmdInvalid, 0x15, 0, "INVALID"},
	}

	if len(tests) != 22 {
		t.Fatalf("command table should have 22 entries, test covers %d", len(tests))
	}

	seen := map[byte]bool{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if byte(tt.cmd) != tt.opcode {
				t.Errorf("opcode = 0x%02X, want 0x%02X", byte(tt.cmd), tt.opcode)
			}
			if got := tt.cmd.PayloadLen(); got != tt.payloadLen {
				t.Errorf("PayloadLen() = %d, want %d", got, tt.payloadLen)
			}
			if got := tt.cmd.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if !tt.cmd.Valid() {
				t.Error("Valid() = false for table command")
			}
			if seen[tt.opcode] {
				t.Errorf("duplicate opcode 0x%02X", tt.opcode)
			}
			seen[tt.opcode] = true
		})
	}
}

func TestCommandUnknown(t *testing.T) {
	c := Command(0x42)
	if c.Valid() {
		t.Error("Valid() = true for opcode outside the table")
	}
	if c.PayloadLen() != -1 {
		t.Errorf("PayloadLen() = %d, want -1", c.PayloadLen())
	}
	if got := c.String(); got != "UNKNOWN(0x42)" {
		t.Errorf("String() = %q", got)
	}
}
