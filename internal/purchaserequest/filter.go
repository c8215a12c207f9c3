package purchaserequest

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Filter is a conjunctive set of optional predicates. A zero-valued field imposes no constraint.
type Filter struct {
	Statuses     []Status
	Priorities   []Priority
	Requester    string // Case-insensitive substring of the requester name
	Organization string // Case-insensitive substring of the name or of its initials
	DateFrom     *time.Time
	DateTo       *time.Time
	AmountMin    *decimal.Decimal
	AmountMax    *decimal.Decimal
	Categories   []ItemCategory // Matches when any line item has one of the categories
}

// Query returns the purchase requests matching f in their original order.
// The input slice and its elements are never modified.
func Query(prs []*PurchaseRequest, f Filter) []*PurchaseRequest {
	out := make([]*PurchaseRequest, 0, len(prs))

	for _, pr := range prs {
		if f.Matches(pr) {
			out = append(out, pr)
		}
	}

	return out
}

// Matches reports whether pr satisfies every constraint of f.
func (f Filter) Matches(pr *PurchaseRequest) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, pr.Status) {
		return false
	}

	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, pr.Priority) {
		return false
	}

	if f.Requester != "" && !containsFold(pr.Requester.Name, f.Requester) {
		return false
	}

	if f.Organization != "" && !matchesOrganization(pr.Organization, f.Organization) {
		return false
	}

	if f.DateFrom != nil && pr.CreatedAt.Before(*f.DateFrom) {
		return false
	}

	if f.DateTo != nil && pr.CreatedAt.After(*f.DateTo) {
		return false
	}

	if f.AmountMin != nil && pr.TotalAmount.LessThan(*f.AmountMin) {
		return false
	}

	if f.AmountMax != nil && pr.TotalAmount.GreaterThan(*f.AmountMax) {
		return false
	}

	if len(f.Categories) > 0 && !hasCategory(pr.LineItems, f.Categories) {
		return false
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// matchesOrganization also accepts abbreviations, so "IT" finds "Information Technology Division".
func matchesOrganization(org, q string) bool {
	return containsFold(org, q) || containsFold(initials(org), q)
}

func initials(s string) string {
	var b strings.Builder
	for _, w := range strings.Fields(s) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}

	return b.String()
}

func hasCategory(items []LineItem, categories []ItemCategory) bool {
	for _, it := range items {
		if slices.Contains(categories, it.Category) {
			return true
		}
	}

	return false
}
