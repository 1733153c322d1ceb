// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// CycleRecord is one bus cycle's worth of board state, as captured by the
// trace subcommand. Records are written as a CBOR stream with integer keys
// to keep trace files compact.
type CycleRecord struct {
	Seq      uint32 `cbor:"0,keyasint"`
	Address  uint32 `cbor:"1,keyasint"`
	Status   uint8  `cbor:"2,keyasint"`
	Command  uint8  `cbor:"3,keyasint"`
	Control  uint8  `cbor:"4,keyasint"`
	Data     uint8  `cbor:"5,keyasint"`
	QueueLen uint8  `cbor:"6,keyasint"`
}

// String renders the record in the step/trace line format.
func (r CycleRecord) String() string {
	return FormatCycleState(r.Address, CycleState{
		Status:  r.Status,
		Command: r.Command,
		Control: r.Control,
		Data:    r.Data,
	})
}

// TraceWriter appends CycleRecords to a CBOR stream.
type TraceWriter struct {
	enc *cbor.Encoder
}

// NewTraceWriter wraps w in a trace stream encoder.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{enc: cbor.NewEncoder(w)}
}

// Write appends one record to the stream.
func (t *TraceWriter) Write(rec CycleRecord) error {
	return t.enc.Encode(rec)
}

// TraceReader reads CycleRecords back from a CBOR stream.
type TraceReader struct {
	dec *cbor.Decoder
}

// NewTraceReader wraps r in a trace stream decoder.
func NewTraceReader(r io.Reader) *TraceReader {
	return &TraceReader{dec: cbor.NewDecoder(r)}
}

// Read returns the next record, or io.EOF at end of stream.
func (t *TraceReader) Read() (CycleRecord, error) {
	var rec CycleRecord
	err := t.dec.Decode(&rec)
	return rec, err
}

// CaptureCycle steps the CPU one bus cycle and snapshots its state. The
// snapshot takes three extra round trips after the cycle itself.
func (c *Client) CaptureCycle(seq uint32) (CycleRecord, error) {
	var rec CycleRecord

	if err := c.Cycle(); err != nil {
		return rec, err
	}
	addr, err := c.ReadAddress()
	if err != nil {
		return rec, err
	}
	cs, err := c.CycleStatus()
	if err != nil {
		return rec, err
	}
	qlen, err := c.QueueLen()
	if err != nil {
		return rec, err
	}

	return CycleRecord{
		Seq:      seq,
		Address:  addr,
		Status:   cs.Status,
		Command:  cs.Command,
		Control:  cs.Control,
		Data:     cs.Data,
		QueueLen: qlen,
	}, nil
}
