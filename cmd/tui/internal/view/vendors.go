package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

type vendorsState int

const (
	vendorsStateSearch vendorsState = iota
	vendorsStateList
	vendorsStateRating
)

var vendorStatusCycle = append([]vendor.Status{""}, vendor.Statuses...)

// vendorItem wraps a vendor summary to implement list.Item.
type vendorItem struct {
	summary vendor.Summary
}

func (i vendorItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.summary.Status))
	return fmt.Sprintf("%s  %s", i.summary.Name, status)
}

func (i vendorItem) Description() string {
	rating := "unrated"
	if r := i.summary.OverallRating; r != nil {
		rating = fmt.Sprintf("%.1f/5", *r)
	}

	return fmt.Sprintf("CAGE %s | DUNS %s | %s | %s", i.summary.CageCode, i.summary.DUNS, i.summary.BusinessType, rating)
}

func (i vendorItem) FilterValue() string { return i.summary.Name }

// ratingDraft holds the performance form bindings.
type ratingDraft struct {
	contractID string
	title      string
	overall    string
	quality    string
	schedule   string
	cost       string
	management string
	comments   string
}

type VendorsModel struct {
	CommonModel
	vendorService *vendor.Service

	state       vendorsState
	searchInput textinput.Model
	list        list.Model
	statusIdx   int
	total       int

	selected *vendor.Vendor
	form     *huh.Form
	rating   *ratingDraft

	loading bool
	status  string
}

func NewVendorsModel(vendorSvc *vendor.Service) VendorsModel {
	ti := textinput.New()
	ti.Placeholder = "Name, CAGE code or DUNS"
	ti.Prompt = "Search: "
	ti.Width = 40
	ti.Focus()

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 18)
	l.Title = "Vendors"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return VendorsModel{
		vendorService: vendorSvc,
		searchInput:   ti,
		list:          l,
		loading:       true,
	}
}

func (m VendorsModel) Title() string { return "Vendors" }

func (m VendorsModel) ShortHelp() string {
	switch m.state {
	case vendorsStateList:
		return "Esc: back | Tab: search | Enter: details | f: status | p: add rating"
	case vendorsStateRating:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter/Tab: results"
}

func (m VendorsModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd())
}

func (m VendorsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case vendorSearchMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		items := make([]list.Item, len(msg.result.Vendors))
		for i, s := range msg.result.Vendors {
			items[i] = vendorItem{summary: s}
		}

		m.total = msg.result.TotalCount

		return m, m.list.SetItems(items)

	case vendorLoadedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.selected = msg.vendor

		return m, nil

	case ratingSavedMsg:
		m.state = vendorsStateList
		m.form = nil

		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error saving rating: %v", msg.err))
			return m, nil
		}

		m.selected = msg.vendor
		m.status = fmt.Sprintf("Rating recorded for %s", msg.vendor.Name)

		return m, m.searchCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width/2, msg.Height-10)
		return m, nil
	}

	switch m.state {
	case vendorsStateSearch:
		return m.updateSearch(msg)
	case vendorsStateList:
		return m.updateList(msg)
	case vendorsStateRating:
		return m.updateRating(msg)
	}

	return m, nil
}

func (m VendorsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter, tea.KeyTab:
			m.state = vendorsStateList
			m.searchInput.Blur()

			return m, nil
		}
	}

	before := m.searchInput.Value()

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if m.searchInput.Value() != before {
		return m, tea.Batch(cmd, m.searchCmd())
	}

	return m, cmd
}

func (m VendorsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.state = vendorsStateSearch
			m.searchInput.Focus()

			return m, textinput.Blink
		case "f":
			m.statusIdx = (m.statusIdx + 1) % len(vendorStatusCycle)
			return m, m.searchCmd()
		case "enter":
			if item, ok := m.list.SelectedItem().(vendorItem); ok {
				return m, m.loadVendorCmd(item)
			}

			return m, nil
		case "p":
			if m.selected == nil {
				m.status = "Open a vendor with Enter first"
				return m, nil
			}

			m.rating = &ratingDraft{overall: "5", quality: "5", schedule: "5", cost: "5", management: "5"}
			m.form = buildRatingForm(m.rating)
			m.state = vendorsStateRating

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m VendorsModel) updateRating(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = vendorsStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveRatingCmd(m.selected, m.rating)
}

func validRating(s string) error {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || r < 1 || r > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	return nil
}

func buildRatingForm(d *ratingDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Contract ID").Value(&d.contractID).Validate(notBlank("contract id")),
			huh.NewInput().Title("Contract Title").Value(&d.title),
			huh.NewInput().Title("Overall").Value(&d.overall).Validate(validRating),
			huh.NewInput().Title("Quality").Value(&d.quality).Validate(validRating),
			huh.NewInput().Title("Schedule").Value(&d.schedule).Validate(validRating),
			huh.NewInput().Title("Cost").Value(&d.cost).Validate(validRating),
			huh.NewInput().Title("Management").Value(&d.management).Validate(validRating),
			huh.NewText().Title("Comments").Value(&d.comments),
		).Title("Past Performance"),
	).WithWidth(50).WithShowHelp(false)
}

func (m VendorsModel) View() string {
	statusLabel := "All"
	if s := vendorStatusCycle[m.statusIdx]; s != "" {
		statusLabel = string(s)
	}

	header := fmt.Sprintf("%s\nFilter: [f] Status: %s | %d found", m.searchInput.View(), activeStyle(statusLabel), m.total)

	left := m.list.View()
	if m.loading {
		left = "Searching..."
	}

	var right string

	switch {
	case m.state == vendorsStateRating && m.form != nil:
		right = m.form.View()
	case m.selected != nil:
		right = vendorDetail(m.selected)
	}

	body := left
	if right != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left,
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(56).
				Render(right),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lipgloss.NewStyle().PaddingBottom(1).Render(header), body)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func vendorDetail(v *vendor.Vendor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", lipgloss.NewStyle().Bold(true).Render(v.Name))
	fmt.Fprintf(&b, "Status:        %s\n", v.Status)
	fmt.Fprintf(&b, "Business type: %s\n", v.BusinessType)
	fmt.Fprintf(&b, "CAGE / DUNS:   %s / %s\n", v.CageCode, v.DUNS)

	if c := v.PointOfContact; c.Name != "" {
		fmt.Fprintf(&b, "Contact:       %s, %s\n", c.Name, c.Email)
	}

	if a := v.Address; a.City != "" {
		fmt.Fprintf(&b, "Location:      %s, %s\n", a.City, a.State)
	}

	if len(v.Capabilities) > 0 {
		fmt.Fprintf(&b, "\nCapabilities: %s\n", strings.Join(v.Capabilities, ", "))
	}

	if avg, ok := v.AverageRating(); ok {
		fmt.Fprintf(&b, "\nAverage rating %.2f over %d contracts\n", avg, len(v.PastPerformance))
	}

	for _, r := range v.PastPerformance {
		fmt.Fprintf(&b, "  %-20s %.1f  %s\n", r.ContractID, r.OverallRating, labelStyle.Render(r.ContractTitle))
	}

	return b.String()
}

// Messages

type vendorSearchMsg struct {
	result vendor.SearchResult
	err    error
}

type vendorLoadedMsg struct {
	vendor *vendor.Vendor
	err    error
}

type ratingSavedMsg struct {
	vendor *vendor.Vendor
	err    error
}

func (m VendorsModel) searchCmd() tea.Cmd {
	filter := vendor.Filter{Term: strings.TrimSpace(m.searchInput.Value())}
	if s := vendorStatusCycle[m.statusIdx]; s != "" {
		filter.Statuses = []vendor.Status{s}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.vendorService.Search(ctx, filter, vendor.Page{Size: vendor.MaxPageSize})

		return vendorSearchMsg{result: result, err: err}
	}
}

func (m VendorsModel) loadVendorCmd(item vendorItem) tea.Cmd {
	id := item.summary.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		v, err := m.vendorService.Get(ctx, id)

		return vendorLoadedMsg{vendor: v, err: err}
	}
}

func (m VendorsModel) saveRatingCmd(v *vendor.Vendor, d *ratingDraft) tea.Cmd {
	id := v.ID

	return func() tea.Msg {
		parse := func(s string) float64 {
			r, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
			return r
		}

		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.vendorService.AddPerformanceRating(ctx, id, vendor.RatingParams{
			ContractID:       strings.TrimSpace(d.contractID),
			ContractTitle:    strings.TrimSpace(d.title),
			OverallRating:    parse(d.overall),
			QualityRating:    parse(d.quality),
			ScheduleRating:   parse(d.schedule),
			CostRating:       parse(d.cost),
			ManagementRating: parse(d.management),
			Comments:         strings.TrimSpace(d.comments),
		})

		return ratingSavedMsg{vendor: updated, err: err}
	}
}
