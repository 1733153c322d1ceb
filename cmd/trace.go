// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/crosstalklabs/ardu88/pkg/ardu88"
)

var (
	traceCycles int
	traceOut    string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Record and inspect bus cycle traces",
}

var traceRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Step cycles and record the bus state to a CBOR trace file",
	Long: `Step the CPU and append one record per bus cycle to a trace file.
Records are CBOR-encoded and can be inspected offline with "trace dump".`,
	RunE: runTraceRecord,
}

var traceDumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print a recorded trace file in human-readable form",
	Args:  cobra.ExactArgs(1),
	RunE:  runTraceDump,
}

func init() {
	traceRecordCmd.Flags().IntVarP(&traceCycles, "cycles", "n", 100, "Number of cycles to record")
	traceRecordCmd.Flags().StringVarP(&traceOut, "out", "o", "ardu88.trace", "Output file")
	traceCmd.AddCommand(traceRecordCmd)
	traceCmd.AddCommand(traceDumpCmd)
	rootCmd.AddCommand(traceCmd)
}

func runTraceRecord(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	out, err := os.Create(traceOut)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("Connection: %s\nRecording %d cycles to %s\n", connInfo, traceCycles, traceOut)

	client := newClient(conn)
	tw := ardu88.NewTraceWriter(out)

	recorded := 0
	for i := 0; i < traceCycles; i++ {
		rec, err := client.CaptureCycle(uint32(i))
		if err != nil {
			if errors.Is(err, ardu88.ErrOutOfSync) {
				logger.Warn().Int("cycle", i).Msg("desync during capture, cycle dropped")
				continue
			}
			return fmt.Errorf("cycle %d: %w", i, err)
		}
		if err := tw.Write(rec); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
		recorded++
	}

	fmt.Printf("Recorded %d cycles\n", recorded)
	return nil
}

func runTraceDump(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	tr := ardu88.NewTraceReader(in)
	for {
		rec, err := tr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read trace: %w", err)
		}
		fmt.Printf("%4d  %s q%d\n", rec.Seq, rec, rec.QueueLen)
	}
}
