package purchaserequest_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

func fixturePRs() []*purchaserequest.PurchaseRequest {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC) }

	return []*purchaserequest.PurchaseRequest{
		{
			PRNumber:     "PR-2025-001",
			Requester:    purchaserequest.UserReference{Name: "John Smith"},
			Organization: "Information Technology Division",
			Status:       purchaserequest.StatusSubmitted,
			Priority:     purchaserequest.PriorityHigh,
			TotalAmount:  decimal.NewFromInt(15000),
			CreatedAt:    day(5),
			LineItems:    []purchaserequest.LineItem{{Category: purchaserequest.CategoryITEquipment}},
		},
		{
			PRNumber:     "PR-2025-002",
			Requester:    purchaserequest.UserReference{Name: "Sarah Johnson"},
			Organization: "Logistics Command",
			Status:       purchaserequest.StatusDraft,
			Priority:     purchaserequest.PriorityLow,
			TotalAmount:  decimal.NewFromInt(500),
			CreatedAt:    day(10),
			LineItems:    []purchaserequest.LineItem{{Category: purchaserequest.CategoryOfficeSupplies}},
		},
		{
			PRNumber:     "PR-2025-003",
			Requester:    purchaserequest.UserReference{Name: "Mike Davis"},
			Organization: "IT Security Office",
			Status:       purchaserequest.StatusSubmitted,
			Priority:     purchaserequest.PriorityUrgent,
			TotalAmount:  decimal.NewFromInt(75000),
			CreatedAt:    day(20),
			LineItems: []purchaserequest.LineItem{
				{Category: purchaserequest.CategoryProfessionalServices},
				{Category: purchaserequest.CategoryITEquipment},
			},
		},
	}
}

func numbers(prs []*purchaserequest.PurchaseRequest) []string {
	out := make([]string, len(prs))
	for i, pr := range prs {
		out[i] = pr.PRNumber
	}

	return out
}

func TestQuery(t *testing.T) {
	from := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter purchaserequest.Filter
		want   []string
	}{
		{
			name: "EmptyFilterKeepsAll",
			want: []string{"PR-2025-001", "PR-2025-002", "PR-2025-003"},
		},
		{
			name:   "StatusPreservesOrder",
			filter: purchaserequest.Filter{Statuses: []purchaserequest.Status{purchaserequest.StatusSubmitted}},
			want:   []string{"PR-2025-001", "PR-2025-003"},
		},
		{
			name:   "OrganizationCaseInsensitive",
			filter: purchaserequest.Filter{Organization: "IT"},
			want:   []string{"PR-2025-001", "PR-2025-003"},
		},
		{
			name:   "OrganizationInitials",
			filter: purchaserequest.Filter{Organization: "itd"},
			want:   []string{"PR-2025-001"},
		},
		{
			name:   "RequesterSubstring",
			filter: purchaserequest.Filter{Requester: "JOHN"},
			want:   []string{"PR-2025-001", "PR-2025-002"},
		},
		{
			name:   "DateRangeInclusive",
			filter: purchaserequest.Filter{DateFrom: &from, DateTo: &to},
			want:   []string{"PR-2025-001", "PR-2025-002"},
		},
		{
			name: "AmountBoundsInclusive",
			filter: purchaserequest.Filter{
				AmountMin: new(decimal.NewFromInt(500)),
				AmountMax: new(decimal.NewFromInt(15000)),
			},
			want: []string{"PR-2025-001", "PR-2025-002"},
		},
		{
			name:   "AnyLineItemCategory",
			filter: purchaserequest.Filter{Categories: []purchaserequest.ItemCategory{purchaserequest.CategoryITEquipment}},
			want:   []string{"PR-2025-001", "PR-2025-003"},
		},
		{
			name: "Conjunctive",
			filter: purchaserequest.Filter{
				Statuses:   []purchaserequest.Status{purchaserequest.StatusSubmitted},
				Priorities: []purchaserequest.Priority{purchaserequest.PriorityUrgent},
			},
			want: []string{"PR-2025-003"},
		},
		{
			name:   "NoMatch",
			filter: purchaserequest.Filter{Statuses: []purchaserequest.Status{purchaserequest.StatusApproved}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prs := fixturePRs()
			got := purchaserequest.Query(prs, tt.filter)

			assert.Equal(t, tt.want, numbers(got))
			assert.Equal(t, []string{"PR-2025-001", "PR-2025-002", "PR-2025-003"}, numbers(prs))
		})
	}
}
