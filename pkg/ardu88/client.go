// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package ardu88

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Conn is the byte transport the client drives. Read must honor whatever
// read timeout the transport was configured with and return (0, nil) or an
// error once it expires; ResetInputBuffer discards any bytes the transport
// has buffered but the client has not consumed.
//
// go.bug.st/serial.Port satisfies this interface directly.
type Conn interface {
	io.ReadWriter
	ResetInputBuffer() error
}

// Client is the protocol engine for one Ardui88 board. It owns the
// transport exclusively for its lifetime and serializes commands: the
// protocol has no request identifiers, so two in-flight exchanges on the
// same link would be undefined.
//
// Every operation is a blocking round trip. The client never retries a
// command on its own; retry policy belongs to the caller.
type Client struct {
	conn        Conn
	mu          sync.Mutex
	settleDelay time.Duration
	sleep       func(time.Duration)
	log         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSettleDelay overrides the quiet period observed before flushing the
// transport during resynchronization.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.settleDelay = d
		}
	}
}

// WithLogger attaches a logger; request and reply bytes are traced at
// debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a client that owns conn. The caller must not touch conn again
// until the client is discarded.
func New(conn Conn, opts ...Option) *Client {
	if conn == nil {
		panic("ardu88: conn cannot be nil")
	}
	c := &Client{
		conn:        conn,
		settleDelay: DefaultSettleDelay,
		sleep:       time.Sleep,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// exchange performs one full command round trip: validate the payload
// against the command table, write opcode+payload, read exactly replyLen
// bytes, and gate on the trailing status byte. On success the returned
// slice is the reply minus the status byte.
func (c *Client) exchange(cmd Command, payload []byte, replyLen int) ([]byte, error) {
	if len(payload) != cmd.PayloadLen() {
		return nil, &UsageError{Cmd: cmd, Got: len(payload), Want: cmd.PayloadLen()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	frame := make([]byte, 0, 1+len(payload))
	frame = append(frame, byte(cmd))
	frame = append(frame, payload...)

	c.log.Debug().Stringer("cmd", cmd).Hex("tx", frame).Msg("request")

	if _, err := c.conn.Write(frame); err != nil {
		return nil, fmt.Errorf("%s: write: %w", cmd, err)
	}

	reply := make([]byte, replyLen)
	if err := c.readFull(cmd, reply); err != nil {
		return nil, err
	}

	c.log.Debug().Stringer("cmd", cmd).Hex("rx", reply).Msg("reply")

	switch status := reply[replyLen-1]; status {
	case StatusOK:
		return reply[:replyLen-1], nil
	case StatusError:
		return nil, &RejectedError{Cmd: cmd}
	default:
		// A stray status byte means every byte after the corruption point
		// is being misinterpreted. Let the line go quiet, then discard
		// whatever is buffered so the next command starts in frame.
		c.resync()
		return nil, &SyncError{Cmd: cmd, Status: status}
	}
}

// readFull reads len(buf) bytes, treating a zero-byte read (the serial
// timeout signal) or a transport error as a short read.
func (c *Client) readFull(cmd Command, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := c.conn.Read(buf[total:])
		total += n
		if total >= len(buf) {
			break
		}
		if err != nil || n == 0 {
			return &TimeoutError{Cmd: cmd, Got: total, Want: len(buf)}
		}
	}
	return nil
}

func (c *Client) resync() {
	c.log.Warn().Dur("settle", c.settleDelay).Msg("desynchronized, flushing input")
	c.sleep(c.settleDelay)
	if err := c.conn.ResetInputBuffer(); err != nil {
		c.log.Error().Err(err).Msg("input flush failed")
	}
}
