// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. The concrete error values
// returned by Client operations wrap these and carry per-call detail.
var (
	// ErrRejected means the board understood the command and answered with
	// the explicit failure status byte.
	ErrRejected = errors.New("device rejected command")

	// ErrOutOfSync means the trailing status byte was neither the success
	// nor the failure marker. The client has already performed the
	// settle-and-flush recovery; the command's effect on the board is
	// unknown.
	ErrOutOfSync = errors.New("reply stream out of sync")
)

// UsageError reports a payload whose length does not match the command
// table. It is detected locally; nothing is written to the transport.
type UsageError struct {
	Cmd  Command
	Got  int
	Want int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: payload must be %d bytes, got %d", e.Cmd, e.Want, e.Got)
}

// TimeoutError reports that fewer than the expected reply bytes arrived
// before the transport timeout. The in-flight command may or may not have
// executed on the board.
type TimeoutError struct {
	Cmd  Command
	Got  int
	Want int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: reply timed out after %d of %d bytes", e.Cmd, e.Got, e.Want)
}

// RejectedError wraps ErrRejected with the command that was declined.
type RejectedError struct {
	Cmd Command
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Cmd, ErrRejected)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }

// SyncError wraps ErrOutOfSync with the command and the stray status byte
// that triggered resynchronization.
type SyncError struct {
	Cmd    Command
	Status byte
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %v (status byte 0x%02X)", e.Cmd, ErrOutOfSync, e.Status)
}

func (e *SyncError) Unwrap() error { return ErrOutOfSync }
