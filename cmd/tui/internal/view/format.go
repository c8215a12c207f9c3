package view

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

const dbTimeout = 5 * time.Second

// operator is the actor every TUI mutation is recorded under.
var operator = actor.System

// ActAs sets the user the TUI records in audit history.
func ActAs(a actor.Actor) {
	operator = a
}

// FormatAmount renders money with two decimals and thousands separators, e.g. $30,000.00.
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}

		b.WriteRune(r)
	}

	return sign + "$" + b.String() + "." + frac
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for store operations, carrying the TUI operator.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(actor.WithActor(context.Background(), operator), dbTimeout)
}

var statusColors = map[purchaserequest.Status]string{
	purchaserequest.StatusDraft:       "245",
	purchaserequest.StatusSubmitted:   "39",
	purchaserequest.StatusUnderReview: "214",
	purchaserequest.StatusApproved:    "46",
	purchaserequest.StatusRejected:    "196",
	purchaserequest.StatusCancelled:   "240",
}

func statusBadge(s purchaserequest.Status) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(statusColors[s])).Render(string(s))
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}
