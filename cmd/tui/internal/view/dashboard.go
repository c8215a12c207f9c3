package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/report"
)

// DashboardModel shows pipeline counts and the headline analytics.
type DashboardModel struct {
	CommonModel
	prService     *purchaserequest.Service
	reportService *report.Service

	stats     purchaserequest.Stats
	analytics *report.Analytics
	loading   bool
	err       error
}

func NewDashboardModel(prSvc *purchaserequest.Service, reportSvc *report.Service) DashboardModel {
	return DashboardModel{
		prService:     prSvc,
		reportService: reportSvc,
		loading:       true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
		m.analytics = msg.analytics

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	s := m.stats
	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total", fmt.Sprint(s.Total)),
		card("Draft", fmt.Sprint(s.Draft)),
		card("Submitted", fmt.Sprint(s.Submitted)),
		card("Under Review", fmt.Sprint(s.UnderReview)),
		card("Approved", fmt.Sprint(s.Approved)),
		card("Rejected", fmt.Sprint(s.Rejected)),
	)

	values := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Value", FormatAmount(s.TotalValue)),
		card("Average Value", FormatAmount(s.AvgValue)),
	)

	sections := []string{
		lipgloss.NewStyle().Bold(true).Render("Procurement Pipeline"),
		counts,
		values,
	}

	if a := m.analytics; a != nil {
		sections = append(sections,
			"",
			fmt.Sprintf("Average processing time: %.1f days", a.Procurement.AverageProcessingDays),
			"",
			lipgloss.NewStyle().Bold(true).Render("Spending by Category"),
			categoryLines(a.Spending.Categories),
			lipgloss.NewStyle().Bold(true).Render("Funding Utilization"),
			fundingLines(a.Spending.Funding),
			lipgloss.NewStyle().Bold(true).Render("Vendors"),
			fmt.Sprintf("%d registered, %d active, average rating %.2f",
				a.Vendors.TotalVendors, a.Vendors.ActiveVendors, a.Vendors.AverageRating),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func categoryLines(categories []report.CategorySpending) string {
	if len(categories) == 0 {
		return labelStyle.Render("  no spend recorded\n")
	}

	var b strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&b, "  %-24s %16s %6.1f%%\n", c.Category, FormatAmount(c.Amount), c.Percentage)
	}

	return b.String()
}

func fundingLines(funding []report.FundingUtilization) string {
	var b strings.Builder
	for _, f := range funding {
		fmt.Fprintf(&b, "  %-40s %16s of %16s %6.1f%%\n",
			f.SourceName, FormatAmount(f.Utilized), FormatAmount(f.Budget), f.UtilizationPercent)
	}

	return b.String()
}

type dashboardLoadedMsg struct {
	stats     purchaserequest.Stats
	analytics *report.Analytics
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := m.prService.Stats(ctx, purchaserequest.Filter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		analytics, err := m.reportService.Analytics(ctx, purchaserequest.Filter{})

		return dashboardLoadedMsg{stats: stats, analytics: analytics, err: err}
	}
}
