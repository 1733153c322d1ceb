// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

// Package ardu88 provides a host-side driver for the Ardui88 bus-interface
// board.
//
// The board exposes an 8088 CPU's physical pin and bus state over a
// byte-oriented serial link. The host sends a one-byte opcode followed by a
// fixed-length payload; the board executes the operation and answers with a
// fixed-length reply whose final byte is a status sentinel. There is no
// length prefix, checksum, or terminator on the wire - framing is defined
// entirely by the per-command lengths both ends agree on.
package ardu88

import "time"

// Reply status sentinels. Every reply ends with exactly one of these; any
// other value means the byte stream has drifted out of frame.
const (
	StatusOK    = 0x01
	StatusError = 0x00
)

// DefaultBaudRate is the link speed the Ardui88 firmware runs at.
const DefaultBaudRate = 1_000_000

// DefaultSettleDelay is how long the client waits after detecting a
// desynchronized reply before flushing the input buffer. The gap lets the
// board finish emitting whatever it was mid-way through so both ends can
// realign on a quiet line.
const DefaultSettleDelay = 110 * time.Millisecond

// VersionNameLen is the length of the ASCII firmware name in a VERSION reply.
const VersionNameLen = 7

// QueueDepth is the size of the 8088 instruction prefetch queue.
const QueueDepth = 4

// lastErrorLen is the fixed size of the error-string payload in a
// LAST_ERROR reply (NUL-padded).
const lastErrorLen = 50

// Writable/readable CPU input pins for WRITE_PIN and READ_PIN.
const (
	PinReady = 0x00
	PinTest  = 0x01
	PinIntr  = 0x02
	PinNmi   = 0x03
)

// Program state values reported by GET_PROGRAM_STATE. They track the
// board's register load/execute/store sequencer.
const (
	StateReset = iota
	StateJumpVector
	StateLoad
	StateLoadDone
	StateExecute
	StateExecuteFinalize
	StateExecuteDone
	StateStore
	StateStoreDone
	StateDone
)

// ProgramStateName returns a human-readable name for a program state value.
func ProgramStateName(state uint8) string {
	names := []string{
		"RESET",
		"JUMP_VECTOR",
		"LOAD",
		"LOAD_DONE",
		"EXECUTE",
		"EXECUTE_FINALIZE",
		"EXECUTE_DONE",
		"STORE",
		"STORE_DONE",
		"DONE",
	}
	if int(state) < len(names) {
		return names[state]
	}
	return "UNKNOWN"
}
