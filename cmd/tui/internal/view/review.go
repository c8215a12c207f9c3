package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

type reviewState int

const (
	reviewStateTimeframe reviewState = iota
	reviewStateReviewing
)

// ReviewModel walks the approver through every submitted or under review request one by one.
type ReviewModel struct {
	CommonModel
	prService *purchaserequest.Service

	state     reviewState
	timeframe TimeframePicker
	period    string

	queue      []*purchaserequest.PurchaseRequest
	current    *purchaserequest.PurchaseRequest
	totalCount int
	decided    int

	commentInput textinput.Model

	status  string
	loading bool
}

func NewReviewModel(prSvc *purchaserequest.Service) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Comment (required to reject)"
	ti.Width = 60

	return ReviewModel{
		prService:    prSvc,
		state:        reviewStateTimeframe,
		timeframe:    NewTimeframePicker(TimeframeAll),
		commentInput: ti,
	}
}

func (m ReviewModel) Title() string { return "Review Queue" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateTimeframe {
		return "Esc: back | Enter: select"
	}

	return "Enter: approve | Ctrl+X: reject | Tab: skip | Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = reviewStateReviewing
		m.period = msg.Label
		m.loading = true

		return m, m.loadQueueCmd(msg.Filter())

	case reviewQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error loading queue: %v", msg.err))
			return m, nil
		}

		m.queue = msg.prs
		m.totalCount = len(m.queue)
		m.decided = 0
		m.nextRequest()

		return m, textinput.Blink

	case reviewDecisionMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.decided++
		m.nextRequest()

		if m.current != nil {
			m.status = fmt.Sprintf("%s %s. %s", msg.pr.PRNumber, msg.pr.Status, m.status)
		}

		return m, textinput.Blink
	}

	if m.state == reviewStateTimeframe {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframe.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.timeframe, cmd = m.timeframe.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.loading {
		switch keyMsg.String() {
		case "esc":
			m.state = reviewStateTimeframe
			m.timeframe.Reset()
			m.current = nil
			m.status = ""

			return m, nil
		case "tab":
			if m.current != nil {
				m.nextRequest()
			}

			return m, nil
		case "enter":
			if m.current != nil {
				return m, m.decideCmd(m.current, purchaserequest.StatusApproved, m.commentInput.Value())
			}
		case "ctrl+x":
			if m.current == nil {
				return m, nil
			}

			reason := strings.TrimSpace(m.commentInput.Value())
			if reason == "" {
				m.status = errorStyle("A comment is required to reject")
				return m, nil
			}

			return m, m.decideCmd(m.current, purchaserequest.StatusRejected, reason)
		}
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)

	return m, cmd
}

func (m *ReviewModel) nextRequest() {
	m.commentInput.SetValue("")

	if len(m.queue) == 0 {
		m.current = nil
		m.commentInput.Blur()
		m.status = fmt.Sprintf("Queue empty. %d of %d decided.", m.decided, m.totalCount)

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)
	m.commentInput.Focus()
}

func (m ReviewModel) View() string {
	if m.state == reviewStateTimeframe {
		return lipgloss.NewStyle().Padding(2).Render(m.timeframe.View())
	}

	var content string

	switch {
	case m.loading:
		content = "Loading review queue..."
	case m.current != nil:
		content = fmt.Sprintf("%s (%s)\n\n%s\n\n%s\n\n(Enter approve, Ctrl+X reject, Tab skip, Esc back)",
			m.status, m.period, detail(m.current), m.commentInput.View())
	default:
		content = m.status + "\n\n(Esc to back)"
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type reviewQueueMsg struct {
	prs []*purchaserequest.PurchaseRequest
	err error
}

func (m ReviewModel) loadQueueCmd(filter purchaserequest.Filter) tea.Cmd {
	filter.Statuses = []purchaserequest.Status{purchaserequest.StatusSubmitted, purchaserequest.StatusUnderReview}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		prs, err := m.prService.List(ctx, filter)

		return reviewQueueMsg{prs: prs, err: err}
	}
}

type reviewDecisionMsg struct {
	pr  *purchaserequest.PurchaseRequest
	err error
}

// decideCmd records the decision. A request still in submitted is moved into review first so both steps are audited.
func (m ReviewModel) decideCmd(pr *purchaserequest.PurchaseRequest, target purchaserequest.Status, comment string) tea.Cmd {
	id, status := pr.ID, pr.Status
	comment = strings.TrimSpace(comment)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if status == purchaserequest.StatusSubmitted {
			if _, err := m.prService.StartReview(ctx, id); err != nil {
				return reviewDecisionMsg{err: err}
			}
		}

		var (
			updated *purchaserequest.PurchaseRequest
			err     error
		)

		switch target {
		case purchaserequest.StatusApproved:
			updated, err = m.prService.Approve(ctx, id, comment)
		case purchaserequest.StatusRejected:
			updated, err = m.prService.Reject(ctx, id, comment)
		default:
			err = errors.New("unsupported review decision")
		}

		return reviewDecisionMsg{pr: updated, err: err}
	}
}
