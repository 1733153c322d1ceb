// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import "fmt"

// Command identifies one of the fixed operations the Ardui88 firmware
// understands. The value is the opcode byte sent on the wire.
type Command byte

// The full command set, opcodes 0x00-0x15. CmdInvalid is a real table entry
// the firmware answers with an error status; it exists so hosts can probe
// error handling.
const (
	CmdNone            Command = 0x00
	CmdVersion         Command = 0x01
	CmdReset           Command = 0x02
	CmdLoad            Command = 0x03
	CmdCycle           Command = 0x04
	CmdReadAddress     Command = 0x05
	CmdReadStatus      Command = 0x06
	CmdRead8288Command Command = 0x07
	CmdRead8288Control Command = 0x08
	CmdReadDataBus     Command = 0x09
	CmdWriteDataBus    Command = 0x0A
	CmdFinalize        Command = 0x0B
	CmdBeginStore      Command = 0x0C
	CmdStore           Command = 0x0D
	CmdQueueLen        Command = 0x0E
	CmdQueueBytes      Command = 0x0F
	CmdWritePin        Command = 0x10
	CmdReadPin         Command = 0x11
	CmdGetProgramState Command = 0x12
	CmdGetLastError    Command = 0x13
	CmdGetCycleStatus  Command = 0x14
	CmdInvalid         Command = 0x15
)

// payloadLens fixes the outbound payload size for every command. A request
// is the opcode byte followed by exactly this many bytes, nothing else.
var payloadLens = [...]int{
	CmdNone:            0,
	CmdVersion:         0,
	CmdReset:           0,
	CmdLoad:            RegistersLen,
	CmdCycle:           0,
	CmdReadAddress:     0,
	CmdReadStatus:      0,
	CmdRead8288Command: 0,
	CmdRead8288Control: 0,
	CmdReadDataBus:     0,
	CmdWriteDataBus:    1,
	CmdFinalize:        0,
	CmdBeginStore:      0,
	CmdStore:           0,
	CmdQueueLen:        0,
	CmdQueueBytes:      0,
	CmdWritePin:        2,
	CmdReadPin:         1,
	CmdGetProgramState: 0,
	CmdGetLastError:    0,
	CmdGetCycleStatus:  0,
	CmdInvalid:         0,
}

// commandNames maps commands to wire-protocol names for logging and
// diagnostics.
var commandNames = map[Command]string{
	CmdNone:            "NONE",
	CmdVersion:         "VERSION",
	CmdReset:           "RESET",
	CmdLoad:            "LOAD",
	CmdCycle:           "CYCLE",
	CmdReadAddress:     "READ_ADDRESS",
	CmdReadStatus:      "READ_STATUS",
	CmdRead8288Command: "READ_8288_COMMAND",
	CmdRead8288Control: "READ_8288_CONTROL",
	CmdReadDataBus:     "READ_DATA_BUS",
	CmdWriteDataBus:    "WRITE_DATA_BUS",
	CmdFinalize:        "FINALIZE",
	CmdBeginStore:      "BEGIN_STORE",
	CmdStore:           "STORE",
	CmdQueueLen:        "QUEUE_LEN",
	CmdQueueBytes:      "QUEUE_BYTES",
	CmdWritePin:        "WRITE_PIN",
	CmdReadPin:         "READ_PIN",
	CmdGetProgramState: "GET_PROGRAM_STATE",
	CmdGetLastError:    "GET_LAST_ERROR",
	CmdGetCycleStatus:  "GET_CYCLE_STATUS",
	CmdInvalid:         "INVALID",
}

// PayloadLen returns the exact number of payload bytes the command carries
// on the wire. Unknown commands report -1.
func (c Command) PayloadLen() int {
	if !c.Valid() {
		return -1
	}
	return payloadLens[c]
}

// Valid reports whether the opcode is in the command table.
func (c Command) Valid() bool {
	return c <= CmdInvalid
}

// String returns the protocol name of the command.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", byte(c))
}
