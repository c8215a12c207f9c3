package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/acquitrack/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/acquitrack/internal/app"
	"github.com/MrJamesThe3rd/acquitrack/internal/config"
	"github.com/MrJamesThe3rd/acquitrack/internal/logger"
	"github.com/MrJamesThe3rd/acquitrack/internal/seed"
)

const logFile = "acquitrack-tui.log"

type screen int

const (
	screenMenu screen = iota
	screenDashboard
	screenRequests
	screenReview
	screenVendors
	screenImport
	screenExport
)

type model struct {
	app     *app.App
	current screen
	active  view.View
	width   int
	height  int
}

type menuEntry struct {
	key    string
	label  string
	screen screen
}

var menu = []menuEntry{
	{key: "1", label: "Dashboard", screen: screenDashboard},
	{key: "2", label: "Purchase Requests", screen: screenRequests},
	{key: "3", label: "Review Queue", screen: screenReview},
	{key: "4", label: "Vendors", screen: screenVendors},
	{key: "5", label: "Import Vendors", screen: screenImport},
	{key: "6", label: "Export Reports", screen: screenExport},
}

func (m model) open(s screen) view.View {
	a := m.app

	switch s {
	case screenDashboard:
		return view.NewDashboardModel(a.PurchaseRequests, a.Reports)
	case screenRequests:
		return view.NewRequestsModel(a.PurchaseRequests)
	case screenReview:
		return view.NewReviewModel(a.PurchaseRequests)
	case screenVendors:
		return view.NewVendorsModel(a.Vendors)
	case screenImport:
		return view.NewImportModel(a.Vendors, a.Importer)
	case screenExport:
		return view.NewExportModel(a.Reports)
	}

	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == screenMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = screenMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	if v, ok := next.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, e := range menu {
		if e.key != msg.String() {
			continue
		}

		m.current = e.screen
		m.active = m.open(e.screen)

		initCmd := m.active.Init()
		if m.width == 0 {
			return m, initCmd
		}

		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

		return m, tea.Batch(initCmd, func() tea.Msg { return size })
	}

	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.current == screenMenu || m.active == nil {
		s := titleStyle.Render("AcquiTrack") + "\n\n"
		for _, e := range menu {
			s += fmt.Sprintf("%s. %s\n", e.key, e.label)
		}

		return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(1, 1, 0).Render(titleStyle.Render(m.active.Title())),
		m.active.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(helpStyle.Render(m.active.ShortHelp())),
	)
}

func main() {
	if err := run(); err != nil {
		slog.Error("tui failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to a file so they do not tear the alt screen.
	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	slog.SetDefault(logger.New(f, logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}))

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer a.Close()

	view.ActAs(seed.Actor(cfg.Auth.DefaultUserID))

	p := tea.NewProgram(model{app: a, current: screenMenu}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	return nil
}
