package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

type requestsState int

const (
	requestsStateBrowse requestsState = iota
	requestsStateNote
	requestsStateCreate
)

var (
	statusCycle = []purchaserequest.Status{
		"", // all
		purchaserequest.StatusDraft,
		purchaserequest.StatusSubmitted,
		purchaserequest.StatusUnderReview,
		purchaserequest.StatusApproved,
		purchaserequest.StatusRejected,
		purchaserequest.StatusCancelled,
	}
	priorityCycle = []purchaserequest.Priority{
		"",
		purchaserequest.PriorityUrgent,
		purchaserequest.PriorityHigh,
		purchaserequest.PriorityMedium,
		purchaserequest.PriorityLow,
	}
)

// noteAction is a transition that asks for a comment before it runs.
type noteAction struct {
	label    string
	target   purchaserequest.Status
	required bool
}

var noteActions = map[string]noteAction{
	"a": {label: "Approve", target: purchaserequest.StatusApproved},
	"x": {label: "Reject", target: purchaserequest.StatusRejected, required: true},
	"c": {label: "Cancel", target: purchaserequest.StatusCancelled, required: true},
}

// directTransitions run immediately on a key press.
var directTransitions = map[string]purchaserequest.Status{
	"s": purchaserequest.StatusSubmitted,
	"v": purchaserequest.StatusUnderReview,
	"o": purchaserequest.StatusDraft,
}

type RequestsModel struct {
	CommonModel
	prService *purchaserequest.Service

	state requestsState
	table table.Model
	prs   []*purchaserequest.PurchaseRequest

	statusIdx   int
	priorityIdx int
	showDetail  bool

	form    *huh.Form
	note    *string
	pending noteAction
	draft   *prDraft

	users   []*purchaserequest.UserReference
	sources []*purchaserequest.FundingSource

	loading bool
	err     error
	status  string
}

func NewRequestsModel(prSvc *purchaserequest.Service) RequestsModel {
	columns := []table.Column{
		{Title: "PR Number", Width: 12},
		{Title: "Status", Width: 13},
		{Title: "Priority", Width: 8},
		{Title: "Amount", Width: 14},
		{Title: "Requester", Width: 16},
		{Title: "Organization", Width: 32},
		{Title: "Need Date", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return RequestsModel{
		prService: prSvc,
		table:     t,
		loading:   true,
	}
}

func (m RequestsModel) Title() string { return "Purchase Requests" }

func (m RequestsModel) ShortHelp() string {
	switch m.state {
	case requestsStateNote, requestsStateCreate:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: details | f: status | p: priority | n: new | s: submit | v: review | a: approve | x: reject | c: cancel | o: reopen | r: refresh"
}

func (m RequestsModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadReferenceCmd())
}

func (m RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.prs = msg.prs
		m.refreshTable()

		return m, nil

	case referenceLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading reference data: %v", msg.err)
			return m, nil
		}

		m.users, m.sources = msg.users, msg.sources

		return m, nil

	case requestSavedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = fmt.Sprintf("%s is now %s", msg.pr.PRNumber, msg.pr.Status)
		}

		m.state = requestsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case requestsStateNote, requestsStateCreate:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m RequestsModel) selected() *purchaserequest.PurchaseRequest {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.prs) {
		return nil
	}

	return m.prs[idx]
}

func (m RequestsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	key := keyMsg.String()

	switch key {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "enter":
		m.showDetail = !m.showDetail
		return m, nil
	case "f":
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		return m, m.loadCmd()
	case "p":
		m.priorityIdx = (m.priorityIdx + 1) % len(priorityCycle)
		return m, m.loadCmd()
	case "n":
		return m.enterCreate()
	}

	if target, ok := directTransitions[key]; ok {
		if pr := m.selected(); pr != nil {
			return m, m.transitionCmd(pr, target, "")
		}

		return m, nil
	}

	if action, ok := noteActions[key]; ok {
		return m.enterNote(action)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RequestsModel) enterNote(action noteAction) (tea.Model, tea.Cmd) {
	pr := m.selected()
	if pr == nil {
		return m, nil
	}

	if !purchaserequest.CanTransition(pr.Status, action.target) {
		m.status = errorStyle(fmt.Sprintf("Cannot %s a %s request", strings.ToLower(action.label), pr.Status))
		return m, nil
	}

	m.note = new(string)
	m.pending = action

	input := huh.NewText().
		Title(fmt.Sprintf("%s %s", action.label, pr.PRNumber)).
		Description("Recorded in the audit history").
		Value(m.note)

	if action.required {
		input = input.Validate(notBlank("reason"))
	}

	m.form = huh.NewForm(huh.NewGroup(input)).WithWidth(50).WithShowHelp(false)
	m.state = requestsStateNote
	m.table.Blur()

	return m, m.form.Init()
}

func (m RequestsModel) enterCreate() (tea.Model, tea.Cmd) {
	if len(m.users) == 0 || len(m.sources) == 0 {
		m.status = "Reference data is still loading"
		return m, nil
	}

	m.draft = newDraft(m.users)
	m.form = buildCreateForm(m.draft, m.users, m.sources)
	m.state = requestsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m RequestsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = requestsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == requestsStateCreate {
		return m, m.createCmd(m.draft)
	}

	pr := m.selected()
	if pr == nil {
		m.state = requestsStateBrowse
		return m, nil
	}

	return m, m.transitionCmd(pr, m.pending.target, strings.TrimSpace(*m.note))
}

func (m RequestsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading purchase requests...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	statusLabel := "All"
	if s := statusCycle[m.statusIdx]; s != "" {
		statusLabel = string(s)
	}

	priorityLabel := "All"
	if p := priorityCycle[m.priorityIdx]; p != "" {
		priorityLabel = string(p)
	}

	header := fmt.Sprintf(
		"Filter: [f] Status: %s | [p] Priority: %s | %d shown",
		activeStyle(statusLabel),
		activeStyle(priorityLabel),
		len(m.prs),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	var panel string

	switch {
	case m.state != requestsStateBrowse && m.form != nil:
		panel = m.form.View()
	case m.showDetail:
		if pr := m.selected(); pr != nil {
			panel = detail(pr)
		}
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(64).
				Render(panel),
		)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func detail(pr *purchaserequest.PurchaseRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", lipgloss.NewStyle().Bold(true).Render(pr.PRNumber), statusBadge(pr.Status))
	fmt.Fprintf(&b, "Requester:  %s\n", pr.Requester.Name)
	fmt.Fprintf(&b, "Funding:    %s (%s)\n", pr.FundingSource.Name, pr.FundingSource.Code)
	fmt.Fprintf(&b, "Need date:  %s\n", FormatDate(pr.NeedDate))
	fmt.Fprintf(&b, "Total:      %s\n", FormatAmount(pr.TotalAmount))

	if pr.Justification != "" {
		fmt.Fprintf(&b, "\n%s\n", pr.Justification)
	}

	b.WriteString("\nLine items:\n")

	for _, li := range pr.LineItems {
		fmt.Fprintf(&b, "  %d x %s @ %s = %s\n", li.Quantity, li.Description, FormatAmount(li.UnitPrice), FormatAmount(li.TotalPrice))
	}

	b.WriteString("\nHistory:\n")

	for _, e := range pr.History {
		fmt.Fprintf(&b, "  %s  %-14s %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Action, e.ActorName)

		if e.Details != "" {
			fmt.Fprintf(&b, "      %s\n", labelStyle.Render(e.Details))
		}
	}

	return b.String()
}

func (m *RequestsModel) filter() purchaserequest.Filter {
	var f purchaserequest.Filter

	if s := statusCycle[m.statusIdx]; s != "" {
		f.Statuses = []purchaserequest.Status{s}
	}

	if p := priorityCycle[m.priorityIdx]; p != "" {
		f.Priorities = []purchaserequest.Priority{p}
	}

	return f
}

func (m *RequestsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.prs))
	for _, pr := range m.prs {
		rows = append(rows, table.Row{
			pr.PRNumber,
			string(pr.Status),
			string(pr.Priority),
			FormatAmount(pr.TotalAmount),
			pr.Requester.Name,
			pr.Organization,
			FormatDate(pr.NeedDate),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type requestsLoadedMsg struct {
	prs []*purchaserequest.PurchaseRequest
	err error
}

type referenceLoadedMsg struct {
	users   []*purchaserequest.UserReference
	sources []*purchaserequest.FundingSource
	err     error
}

type requestSavedMsg struct {
	pr  *purchaserequest.PurchaseRequest
	err error
}

func (m RequestsModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		prs, err := m.prService.List(ctx, filter)

		return requestsLoadedMsg{prs: prs, err: err}
	}
}

func (m RequestsModel) loadReferenceCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		users, err := m.prService.Users(ctx)
		if err != nil {
			return referenceLoadedMsg{err: err}
		}

		sources, err := m.prService.FundingSources(ctx)

		return referenceLoadedMsg{users: users, sources: sources, err: err}
	}
}

func (m RequestsModel) transitionCmd(pr *purchaserequest.PurchaseRequest, target purchaserequest.Status, note string) tea.Cmd {
	id := pr.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.prService.TransitionWithNote(ctx, id, target, note)

		return requestSavedMsg{pr: updated, err: err}
	}
}

func (m RequestsModel) createCmd(d *prDraft) tea.Cmd {
	return func() tea.Msg {
		params, err := d.params()
		if err != nil {
			return requestSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		pr, err := m.prService.Create(ctx, params)

		return requestSavedMsg{pr: pr, err: err}
	}
}
