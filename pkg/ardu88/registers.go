// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import (
	"encoding/binary"
	"fmt"
)

// RegistersLen is the wire size of a register snapshot: 14 registers,
// two bytes each, little-endian.
const RegistersLen = 28

// Registers is a full 8088 register snapshot as transferred by LOAD and
// STORE. Field order matches the wire order and never varies.
type Registers struct {
	AX    uint16
	BX    uint16
	CX    uint16
	DX    uint16
	SS    uint16
	SP    uint16
	FLAGS uint16
	IP    uint16
	CS    uint16
	DS    uint16
	ES    uint16
	BP    uint16
	SI    uint16
	DI    uint16
}

// fields returns pointers to the registers in wire order.
func (r *Registers) fields() [14]*uint16 {
	return [14]*uint16{
		&r.AX, &r.BX, &r.CX, &r.DX,
		&r.SS, &r.SP, &r.FLAGS, &r.IP,
		&r.CS, &r.DS, &r.ES, &r.BP,
		&r.SI, &r.DI,
	}
}

// MarshalBinary encodes the snapshot to its 28-byte wire form.
func (r Registers) MarshalBinary() ([]byte, error) {
	out := make([]byte, RegistersLen)
	for i, f := range r.fields() {
		binary.LittleEndian.PutUint16(out[i*2:], *f)
	}
	return out, nil
}

// UnmarshalBinary decodes a 28-byte wire snapshot. This is the exact
// inverse of MarshalBinary.
func (r *Registers) UnmarshalBinary(data []byte) error {
	if len(data) != RegistersLen {
		return fmt.Errorf("register snapshot must be %d bytes, got %d", RegistersLen, len(data))
	}
	for i, f := range r.fields() {
		*f = binary.LittleEndian.Uint16(data[i*2:])
	}
	return nil
}

// String formats the snapshot in the usual debugger layout.
func (r Registers) String() string {
	return fmt.Sprintf(
		"AX=%04X BX=%04X CX=%04X DX=%04X\n"+
			"SP=%04X BP=%04X SI=%04X DI=%04X\n"+
			"CS=%04X DS=%04X ES=%04X SS=%04X\n"+
			"IP=%04X FLAGS=%04X",
		r.AX, r.BX, r.CX, r.DX,
		r.SP, r.BP, r.SI, r.DI,
		r.CS, r.DS, r.ES, r.SS,
		r.IP, r.FLAGS)
}
