// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import "strings"

// Reply lengths are not part of the command table on the wire; each
// operation knows how many bytes (including the status sentinel) its
// command answers with.

// Noop sends the NONE command. The board does nothing and acknowledges;
// useful as a link liveness probe.
func (c *Client) Noop() error {
	_, err := c.exchange(CmdNone, nil, 1)
	return err
}

// Version reads the firmware identification: a 7-byte ASCII name and a
// one-byte version number.
func (c *Client) Version() (string, uint8, error) {
	reply, err := c.exchange(CmdVersion, nil, VersionNameLen+2)
	if err != nil {
		return "", 0, err
	}
	return string(reply[:VersionNameLen]), reply[VersionNameLen], nil
}

// Reset resets the CPU and the board's program sequencer.
func (c *Client) Reset() error {
	_, err := c.exchange(CmdReset, nil, 1)
	return err
}

// LoadRegisters loads a full register snapshot into the CPU.
func (c *Client) LoadRegisters(regs Registers) error {
	payload, err := regs.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = c.exchange(CmdLoad, payload, 1)
	return err
}

// Cycle steps the CPU through one bus cycle.
func (c *Client) Cycle() error {
	_, err := c.exchange(CmdCycle, nil, 1)
	return err
}

// ReadAddress reads the 20-bit address latch, returned as a 24-bit value.
func (c *Client) ReadAddress() (uint32, error) {
	reply, err := c.exchange(CmdReadAddress, nil, 4)
	if err != nil {
		return 0, err
	}
	return uint32(reply[0]) | uint32(reply[1])<<8 | uint32(reply[2])<<16, nil
}

// ReadStatus reads the CPU status lines (S0-S2 plus queue status).
// Use BusCycleName and QueueOpName to decode the value.
func (c *Client) ReadStatus() (uint8, error) {
	return c.readByte(CmdReadStatus)
}

// Read8288Command reads the 8288 bus controller command line state.
func (c *Client) Read8288Command() (uint8, error) {
	return c.readByte(CmdRead8288Command)
}

// Read8288Control reads the 8288 bus controller control line state.
func (c *Client) Read8288Control() (uint8, error) {
	return c.readByte(CmdRead8288Control)
}

// ReadDataBus reads the byte currently on the data bus.
func (c *Client) ReadDataBus() (uint8, error) {
	return c.readByte(CmdReadDataBus)
}

// WriteDataBus places a byte on the data bus, satisfying the CPU's
// pending read.
func (c *Client) WriteDataBus(b uint8) error {
	_, err := c.exchange(CmdWriteDataBus, []byte{b}, 1)
	return err
}

// Finalize tells the board the program under execution is complete and the
// store sequence may begin.
func (c *Client) Finalize() error {
	_, err := c.exchange(CmdFinalize, nil, 1)
	return err
}

// BeginStore starts the register store sequence on the board.
func (c *Client) BeginStore() error {
	_, err := c.exchange(CmdBeginStore, nil, 1)
	return err
}

// StoreRegisters reads the full register snapshot back from the CPU. The
// decode is the exact inverse of LoadRegisters' encode.
func (c *Client) StoreRegisters() (Registers, error) {
	var regs Registers
	reply, err := c.exchange(CmdStore, nil, RegistersLen+1)
	if err != nil {
		return regs, err
	}
	err = regs.UnmarshalBinary(reply)
	return regs, err
}

// QueueLen reads the number of valid bytes in the prefetch queue.
func (c *Client) QueueLen() (uint8, error) {
	return c.readByte(CmdQueueLen)
}

// QueueBytes reads the prefetch queue contents. All four slots are
// returned; QueueLen says how many are valid.
func (c *Client) QueueBytes() ([]byte, error) {
	return c.exchange(CmdQueueBytes, nil, QueueDepth+1)
}

// WritePin drives one of the CPU input pins (PinReady, PinTest, PinIntr,
// PinNmi) high or low.
func (c *Client) WritePin(pin uint8, high bool) error {
	level := byte(0)
	if high {
		level = 1
	}
	_, err := c.exchange(CmdWritePin, []byte{pin, level}, 1)
	return err
}

// ReadPin reads back the level of one of the CPU input pins.
func (c *Client) ReadPin(pin uint8) (uint8, error) {
	reply, err := c.exchange(CmdReadPin, []byte{pin}, 2)
	if err != nil {
		return 0, err
	}
	return reply[0], nil
}

// ProgramState reads the board's program sequencer state. Decode with
// ProgramStateName.
func (c *Client) ProgramState() (uint8, error) {
	return c.readByte(CmdGetProgramState)
}

// LastError reads the board's last error message, NUL-padded on the wire.
func (c *Client) LastError() (string, error) {
	reply, err := c.exchange(CmdGetLastError, nil, lastErrorLen+1)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(reply), "\x00"), nil
}

// CycleStatus reads the composite per-cycle state in one round trip:
// status lines, 8288 command and control lines, and the data bus.
func (c *Client) CycleStatus() (CycleState, error) {
	var cs CycleState
	reply, err := c.exchange(CmdGetCycleStatus, nil, 5)
	if err != nil {
		return cs, err
	}
	cs = CycleState{
		Status:  reply[0],
		Command: reply[1],
		Control: reply[2],
		Data:    reply[3],
	}
	return cs, nil
}

// Invalid sends the table's invalid sentinel opcode. The firmware always
// rejects it; useful for exercising the error path end to end.
func (c *Client) Invalid() error {
	_, err := c.exchange(CmdInvalid, nil, 1)
	return err
}

// readByte handles the common single-value reply shape.
func (c *Client) readByte(cmd Command) (uint8, error) {
	reply, err := c.exchange(cmd, nil, 2)
	if err != nil {
		return 0, err
	}
	return reply[0], nil
}

// CycleState is the decoded GET_CYCLE_STATUS reply.
type CycleState struct {
	Status  uint8
	Command uint8
	Control uint8
	Data    uint8
}
