// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import (
	"bytes"
	"testing"
)

func TestRegistersMarshalOrder(t *testing.T) {
	// 14 distinct values in declared field order.
	regs := Registers{
		AX: 1, BX: 2, CX: 3, DX: 4,
		SS: 5, SP: 6, FLAGS: 7, IP: 8,
		CS: 9, DS: 10, ES: 11, BP: 12,
		SI: 13, DI: 14,
	}

	out, err := regs.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(out) != RegistersLen {
		t.Fatalf("len = %d, want %d", len(out), RegistersLen)
	}

	want := []byte{
		1, 0, 2, 0, 3, 0, 4, 0,
		5, 0, 6, 0, 7, 0, 8, 0,
		9, 0, 10, 0, 11, 0, 12, 0,
		13, 0, 14, 0,
	}
	if !bytes.Equal(out, want) {
		t.Errorf("wire bytes = % X, want % X", out, want)
	}
}

func TestRegistersLittleEndian(t *testing.T) {
	regs := Registers{AX: 0x1234}
	out, err := regs.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if out[0] != 0x34 || out[1] != 0x12 {
		t.Errorf("AX encoded as % X, want 34 12", out[:2])
	}
}

func TestRegistersRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		regs Registers
	}{
		{"zero", Registers{}},
		{"max", Registers{
			AX: 0xFFFF, BX: 0xFFFF, CX: 0xFFFF, DX: 0xFFFF,
			SS: 0xFFFF, SP: 0xFFFF, FLAGS: 0xFFFF, IP: 0xFFFF,
			CS: 0xFFFF, DS: 0xFFFF, ES: 0xFFFF, BP: 0xFFFF,
			SI: 0xFFFF, DI: 0xFFFF,
		}},
		{"mixed", Registers{
			AX: 0x0102, BX: 0xA5A5, CX: 0x8000, DX: 0x0001,
			SS: 0xF000, SP: 0xFFFE, FLAGS: 0xF002, IP: 0x7FFF,
			CS: 0xF000, DS: 0x0040, ES: 0xB800, BP: 0x1234,
			SI: 0x5678, DI: 0x9ABC,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.regs.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary: %v", err)
			}
			var back Registers
			if err := back.UnmarshalBinary(out); err != nil {
				t.Fatalf("UnmarshalBinary: %v", err)
			}
			if back != tt.regs {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", back, tt.regs)
			}
		})
	}
}

func TestRegistersUnmarshalBadLength(t *testing.T) {
	var regs Registers
	for _, n := range []int{0, 27, 29} {
		if err := regs.UnmarshalBinary(make([]byte, n)); err == nil {
			t.Errorf("UnmarshalBinary accepted %d bytes", n)
		}
	}
}
