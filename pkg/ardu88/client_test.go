// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// mockConn scripts the board side of an exchange: replies are served from
// a buffer, an empty buffer reads as a serial timeout (0, nil).
type mockConn struct {
	wrote   bytes.Buffer
	pending bytes.Buffer
	flushes int
}

func (m *mockConn) Read(p []byte) (int, error) {
	if m.pending.Len() == 0 {
		return 0, nil
	}
	return m.pending.Read(p)
}

func (m *mockConn) Write(p []byte) (int, error) {
	return m.wrote.Write(p)
}

func (m *mockConn) ResetInputBuffer() error {
	m.flushes++
	m.pending.Reset()
	return nil
}

func newTestClient(reply []byte) (*Client, *mockConn) {
	conn := &mockConn{}
	conn.pending.Write(reply)
	c := New(conn, WithSettleDelay(time.Millisecond))
	return c, conn
}

func TestUsageErrorWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		payload []byte
	}{
		{"load too short", CmdLoad, make([]byte, 27)},
		{"load too long", CmdLoad, make([]byte, 29)},
		{"reset with payload", CmdReset, []byte{0x01}},
		{"write data bus empty", CmdWriteDataBus, nil},
		{"write pin too long", CmdWritePin, []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, conn := newTestClient(nil)
			_, err := c.exchange(tt.cmd, tt.payload, 1)

			var usage *UsageError
			if !errors.As(err, &usage) {
				t.Fatalf("err = %v, want UsageError", err)
			}
			if usage.Cmd != tt.cmd || usage.Got != len(tt.payload) {
				t.Errorf("UsageError = %+v", usage)
			}
			if conn.wrote.Len() != 0 {
				t.Errorf("%d bytes written to transport, want 0", conn.wrote.Len())
			}
		})
	}
}

func TestVersion(t *testing.T) {
	// "Ardui88", version 7, success.
	c, conn := newTestClient([]byte{0x41, 0x72, 0x64, 0x75, 0x69, 0x38, 0x38, 0x07, 0x01})

	name, ver, err := c.Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if name != "Ardui88" {
		t.Errorf("name = %q, want %q", name, "Ardui88")
	}
	if ver != 7 {
		t.Errorf("version = %d, want 7", ver)
	}
	if !bytes.Equal(conn.wrote.Bytes(), []byte{0x01}) {
		t.Errorf("request = % X, want 01", conn.wrote.Bytes())
	}
}

func TestReadAddress(t *testing.T) {
	c, _ := newTestClient([]byte{0x34, 0x12, 0x00, 0x01})

	addr, err := c.ReadAddress()
	if err != nil {
		t.Fatalf("ReadAddress: %v", err)
	}
	if addr != 0x001234 {
		t.Errorf("addr = 0x%06X, want 0x001234", addr)
	}
}

func TestDeviceRejected(t *testing.T) {
	c, conn := newTestClient([]byte{StatusError})

	err := c.Reset()
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	var rejected *RejectedError
	if !errors.As(err, &rejected) || rejected.Cmd != CmdReset {
		t.Errorf("err = %#v, want RejectedError for RESET", err)
	}
	if conn.flushes != 0 {
		t.Errorf("flushes = %d, want 0 (rejection is not a desync)", conn.flushes)
	}
}

func TestOutOfSync(t *testing.T) {
	c, conn := newTestClient([]byte{0x7F})
	// Stale garbage behind the reply; the flush must discard it.
	conn.pending.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	var slept time.Duration
	c.sleep = func(d time.Duration) { slept = d }

	err := c.Reset()
	if !errors.Is(err, ErrOutOfSync) {
		t.Fatalf("err = %v, want ErrOutOfSync", err)
	}
	var sync *SyncError
	if !errors.As(err, &sync) {
		t.Fatalf("err = %#v, want SyncError", err)
	}
	if sync.Status != 0x7F {
		t.Errorf("Status = 0x%02X, want 0x7F", sync.Status)
	}
	if conn.flushes != 1 {
		t.Errorf("flushes = %d, want 1", conn.flushes)
	}
	if slept != c.settleDelay {
		t.Errorf("settle delay = %v, want %v", slept, c.settleDelay)
	}
	if conn.pending.Len() != 0 {
		t.Errorf("%d stale bytes survived the flush", conn.pending.Len())
	}

	// The next exchange starts against a freshly flushed transport.
	conn.pending.Write([]byte{StatusOK})
	if err := c.Reset(); err != nil {
		t.Errorf("Reset after resync: %v", err)
	}
}

func TestReplyTimeout(t *testing.T) {
	// Version expects 9 bytes; serve only 3.
	c, _ := newTestClient([]byte{0x41, 0x72, 0x64})

	_, _, err := c.Version()
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("err = %v, want TimeoutError", err)
	}
	if timeout.Got != 3 || timeout.Want != 9 {
		t.Errorf("TimeoutError = %+v, want Got=3 Want=9", timeout)
	}
}

func TestLoadRegistersFrame(t *testing.T) {
	c, conn := newTestClient([]byte{StatusOK})

	regs := Registers{
		AX: 1, BX: 2, CX: 3, DX: 4,
		SS: 5, SP: 6, FLAGS: 7, IP: 8,
		CS: 9, DS: 10, ES: 11, BP: 12,
		SI: 13, DI: 14,
	}
	if err := c.LoadRegisters(regs); err != nil {
		t.Fatalf("LoadRegisters: %v", err)
	}

	frame := conn.wrote.Bytes()
	if len(frame) != 1+RegistersLen {
		t.Fatalf("frame is %d bytes, want %d", len(frame), 1+RegistersLen)
	}
	if frame[0] != byte(CmdLoad) {
		t.Errorf("opcode = 0x%02X, want 0x%02X", frame[0], byte(CmdLoad))
	}
	want, _ := regs.MarshalBinary()
	if !bytes.Equal(frame[1:], want) {
		t.Errorf("payload = % X, want % X", frame[1:], want)
	}
}

func TestStoreRegisters(t *testing.T) {
	reply := []byte{
		1, 0, 2, 0, 3, 0, 4, 0,
		5, 0, 6, 0, 7, 0, 8, 0,
		9, 0, 10, 0, 11, 0, 12, 0,
		13, 0, 14, 0,
		StatusOK,
	}
	c, _ := newTestClient(reply)

	regs, err := c.StoreRegisters()
	if err != nil {
		t.Fatalf("StoreRegisters: %v", err)
	}
	want := Registers{
		AX: 1, BX: 2, CX: 3, DX: 4,
		SS: 5, SP: 6, FLAGS: 7, IP: 8,
		CS: 9, DS: 10, ES: 11, BP: 12,
		SI: 13, DI: 14,
	}
	if regs != want {
		t.Errorf("regs = %+v, want %+v", regs, want)
	}
}

func TestLoadStoreInverse(t *testing.T) {
	regs := Registers{
		AX: 0xBEEF, BX: 0xCAFE, CX: 0x0001, DX: 0x8000,
		SS: 0xF000, SP: 0xFFFE, FLAGS: 0xF046, IP: 0x0100,
		CS: 0xF000, DS: 0x0040, ES: 0xB800, BP: 0x00FF,
		SI: 0x55AA, DI: 0xAA55,
	}

	// Feed LOAD's encode output straight back through STORE's decode path.
	c, conn := newTestClient([]byte{StatusOK})
	if err := c.LoadRegisters(regs); err != nil {
		t.Fatalf("LoadRegisters: %v", err)
	}
	conn.pending.Write(conn.wrote.Bytes()[1:]) // strip opcode
	conn.pending.WriteByte(StatusOK)

	back, err := c.StoreRegisters()
	if err != nil {
		t.Fatalf("StoreRegisters: %v", err)
	}
	if back != regs {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", back, regs)
	}
}

func TestWritePinFrame(t *testing.T) {
	c, conn := newTestClient([]byte{StatusOK})
	if err := c.WritePin(PinIntr, true); err != nil {
		t.Fatalf("WritePin: %v", err)
	}
	if !bytes.Equal(conn.wrote.Bytes(), []byte{byte(CmdWritePin), PinIntr, 0x01}) {
		t.Errorf("frame = % X", conn.wrote.Bytes())
	}
}

func TestQueueBytes(t *testing.T) {
	c, _ := newTestClient([]byte{0xEA, 0x00, 0x01, 0x90, StatusOK})
	q, err := c.QueueBytes()
	if err != nil {
		t.Fatalf("QueueBytes: %v", err)
	}
	if !bytes.Equal(q, []byte{0xEA, 0x00, 0x01, 0x90}) {
		t.Errorf("queue = % X", q)
	}
}

func TestLastErrorTrimsPadding(t *testing.T) {
	reply := make([]byte, lastErrorLen+1)
	copy(reply, "bad register checksum")
	reply[lastErrorLen] = StatusOK
	c, _ := newTestClient(reply)

	msg, err := c.LastError()
	if err != nil {
		t.Fatalf("LastError: %v", err)
	}
	if msg != "bad register checksum" {
		t.Errorf("msg = %q", msg)
	}
}

func TestCycleStatus(t *testing.T) {
	c, _ := newTestClient([]byte{0x45, 0x01, 0x09, 0xEA, StatusOK})
	cs, err := c.CycleStatus()
	if err != nil {
		t.Fatalf("CycleStatus: %v", err)
	}
	want := CycleState{Status: 0x45, Command: 0x01, Control: 0x09, Data: 0xEA}
	if cs != want {
		t.Errorf("cs = %+v, want %+v", cs, want)
	}
}
