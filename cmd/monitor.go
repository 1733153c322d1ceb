// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive TUI for single-stepping the CPU",
	Long: `Monitor the board through an interactive terminal UI.

The TUI shows the live register snapshot, the decoded bus state of the most
recent cycle, and a scrolling log of recent cycles.

Keys:
  space  step one bus cycle
  r      re-read the register snapshot
  q      quit`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	m := initialMonitorModel(newClient(conn), connInfo)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
