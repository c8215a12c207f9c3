package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/importer"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateSourceSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type sourceOption struct {
	source importer.Source
	label  string
}

var sourceOptions = []sourceOption{
	{source: importer.SourceAuto, label: "Detect from header"},
	{source: importer.SourceSAM, label: "SAM.gov entity extract"},
	{source: importer.SourceAcquiTrack, label: "AcquiTrack vendor export"},
}

type ImportModel struct {
	CommonModel
	vendorService *vendor.Service
	importService *importer.Service

	state        importState
	filePicker   filepicker.Model
	sourceCursor int

	result *vendor.ImportResult
	status string
	err    error
}

func NewImportModel(vendorSvc *vendor.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		vendorService: vendorSvc,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Vendors" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateSourceSelect {
		return "Esc: back | ↑/↓: choose source | Enter: select"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateSourceSelect {
			return m.updateSourceSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.result = msg.result

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Registered %d vendors, rejected %d.", len(msg.result.Created), len(msg.result.Rejected))

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing vendors from %s...", path)

		return m, m.importCmd(sourceOptions[m.sourceCursor].source, path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult:
		m.state = importStateSourceSelect
		m.result = nil
		m.err = nil
		m.status = ""

		return m, nil
	case importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateSourceSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
	case "down", "j":
		if m.sourceCursor < len(sourceOptions)-1 {
			m.sourceCursor++
		}
	case "enter":
		m.state = importStateFilePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSourceSelect:
		return m.viewSourceSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select vendor file (%s):\n\n%s", sourceOptions[m.sourceCursor].label, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewSourceSelect() string {
	var b strings.Builder

	b.WriteString("File source:\n\n")

	for i, opt := range sourceOptions {
		cursor := " "
		if i == m.sourceCursor {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, opt.label)
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status))

	if m.result != nil && len(m.result.Rejected) > 0 {
		b.WriteString("\n\nRejected rows:\n")

		for _, r := range m.result.Rejected {
			fmt.Fprintf(&b, "  %3d  %-30s %s\n", r.Row, r.Name, labelStyle.Render(r.Err))
		}
	}

	b.WriteString("\n\n(Esc to go back)")

	return style.Render(b.String())
}

// Messages

type importResultMsg struct {
	result *vendor.ImportResult
	err    error
}

func (m ImportModel) importCmd(source importer.Source, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.importService.Import(source, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(actor.WithActor(context.Background(), operator), importTimeout)
		defer cancel()

		result, err := m.vendorService.Import(ctx, rows)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}
