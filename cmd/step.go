// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crosstalklabs/ardu88/pkg/ardu88"
)

var stepCount int

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Step bus cycles and print decoded bus state",
	Long: `Step the CPU through one or more bus cycles. After each cycle the
address latch, status lines, 8288 command/control lines, and data bus are
read back and printed as one line per cycle.`,
	RunE: runStep,
}

func init() {
	stepCmd.Flags().IntVarP(&stepCount, "count", "n", 1, "Number of cycles to step")
	rootCmd.AddCommand(stepCmd)
}

func runStep(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Connection: %s\n", connInfo)
	client := newClient(conn)

	for i := 0; i < stepCount; i++ {
		rec, err := client.CaptureCycle(uint32(i))
		if err != nil {
			// An out-of-sync cycle has already been recovered by the
			// client; report it and let the user decide whether the run
			// is still meaningful.
			if errors.Is(err, ardu88.ErrOutOfSync) {
				fmt.Printf("cycle %d: %v\n", i, err)
				continue
			}
			return fmt.Errorf("cycle %d: %w", i, err)
		}
		fmt.Printf("%4d  %s q%d\n", rec.Seq, rec, rec.QueueLen)
	}

	return nil
}
