// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs

package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crosstalklabs/ardu88/pkg/ardu88"
)

const maxCycleLog = 12

//////////////////////////////////////////////////////////////
// Styles
//////////////////////////////////////////////////////////////

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	busStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

//////////////////////////////////////////////////////////////
// Model
//////////////////////////////////////////////////////////////

type monitorModel struct {
	client   *ardu88.Client
	connInfo string

	regs     ardu88.Registers
	haveRegs bool
	regTable table.Model

	cycles  []ardu88.CycleRecord
	nextSeq uint32

	lastErr  string
	stepping bool
	width    int
	height   int
	quitting bool
}

type cycleMsg struct {
	rec ardu88.CycleRecord
}

type regsMsg struct {
	regs ardu88.Registers
}

type monitorErrMsg struct {
	err error
}

func initialMonitorModel(client *ardu88.Client, connInfo string) monitorModel {
	columns := []table.Column{
		{Title: "Reg", Width: 5},
		{Title: "Val", Width: 5},
		{Title: "Reg", Width: 5},
		{Title: "Val", Width: 5},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(7),
		table.WithFocused(false),
	)

	return monitorModel{
		client:   client,
		connInfo: connInfo,
		regTable: t,
	}
}

//////////////////////////////////////////////////////////////
// Commands
//////////////////////////////////////////////////////////////

func stepCycle(client *ardu88.Client, seq uint32) tea.Cmd {
	return func() tea.Msg {
		rec, err := client.CaptureCycle(seq)
		if err != nil {
			return monitorErrMsg{err: err}
		}
		return cycleMsg{rec: rec}
	}
}

func readRegisters(client *ardu88.Client) tea.Cmd {
	return func() tea.Msg {
		regs, err := client.StoreRegisters()
		if err != nil {
			return monitorErrMsg{err: err}
		}
		return regsMsg{regs: regs}
	}
}

//////////////////////////////////////////////////////////////
// Update
//////////////////////////////////////////////////////////////

func (m monitorModel) Init() tea.Cmd {
	return readRegisters(m.client)
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			if m.stepping {
				return m, nil
			}
			m.stepping = true
			m.lastErr = ""
			return m, stepCycle(m.client, m.nextSeq)
		case "r":
			m.lastErr = ""
			return m, readRegisters(m.client)
		}

	case cycleMsg:
		m.stepping = false
		m.nextSeq++
		m.cycles = append(m.cycles, msg.rec)
		if len(m.cycles) > maxCycleLog {
			m.cycles = m.cycles[len(m.cycles)-maxCycleLog:]
		}
		return m, nil

	case regsMsg:
		m.regs = msg.regs
		m.haveRegs = true
		m.regTable.SetRows(registerRows(msg.regs))
		return m, nil

	case monitorErrMsg:
		m.stepping = false
		m.lastErr = msg.err.Error()
		return m, nil
	}

	return m, nil
}

func registerRows(r ardu88.Registers) []table.Row {
	return []table.Row{
		{"AX", fmt.Sprintf("%04X", r.AX), "CS", fmt.Sprintf("%04X", r.CS)},
		{"BX", fmt.Sprintf("%04X", r.BX), "DS", fmt.Sprintf("%04X", r.DS)},
		{"CX", fmt.Sprintf("%04X", r.CX), "ES", fmt.Sprintf("%04X", r.ES)},
		{"DX", fmt.Sprintf("%04X", r.DX), "SS", fmt.Sprintf("%04X", r.SS)},
		{"SP", fmt.Sprintf("%04X", r.SP), "IP", fmt.Sprintf("%04X", r.IP)},
		{"BP", fmt.Sprintf("%04X", r.BP), "FL", fmt.Sprintf("%04X", r.FLAGS)},
		{"SI", fmt.Sprintf("%04X", r.SI), "DI", fmt.Sprintf("%04X", r.DI)},
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m monitorModel) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render("ardu88 monitor") + "  " + helpStyle.Render(m.connInfo)

	regPanel := "reading registers..."
	if m.haveRegs {
		regPanel = m.regTable.View()
	}

	busPanel := "no cycles stepped yet"
	if len(m.cycles) > 0 {
		last := m.cycles[len(m.cycles)-1]
		busPanel = busStyle.Render(fmt.Sprintf("%s q%d", last, last.QueueLen))
	}

	logLines := ""
	for _, rec := range m.cycles {
		logLines += fmt.Sprintf("%4d  %s\n", rec.Seq, rec)
	}
	if logLines == "" {
		logLines = "(empty)\n"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render("Registers\n"+regPanel),
			panelStyle.Render("Bus\n"+busPanel),
		),
		panelStyle.Render("Cycle log\n"+logLines),
	)

	if m.lastErr != "" {
		body += "\n" + errStyle.Render("error: "+m.lastErr)
	}

	body += "\n" + helpStyle.Render("space: step  r: read registers  q: quit")
	return body
}
