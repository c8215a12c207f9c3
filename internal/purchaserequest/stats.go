package purchaserequest

import "github.com/shopspring/decimal"

// Stats holds per-status counts and value aggregates of a collection.
type Stats struct {
	Total       int
	Draft       int
	Submitted   int
	UnderReview int
	Approved    int
	Rejected    int
	Cancelled   int
	TotalValue  decimal.Decimal
	AvgValue    decimal.Decimal // Zero when Total is zero
}

// ComputeStats reduces prs into Stats. It is recomputed on every call and has no side effects.
func ComputeStats(prs []*PurchaseRequest) Stats {
	s := Stats{
		Total:      len(prs),
		TotalValue: decimal.Zero,
		AvgValue:   decimal.Zero,
	}

	for _, pr := range prs {
		switch pr.Status {
		case StatusDraft:
			s.Draft++
		case StatusSubmitted:
			s.Submitted++
		case StatusUnderReview:
			s.UnderReview++
		case StatusApproved:
			s.Approved++
		case StatusRejected:
			s.Rejected++
		case StatusCancelled:
			s.Cancelled++
		}

		s.TotalValue = s.TotalValue.Add(pr.TotalAmount)
	}

	if s.Total > 0 {
		s.AvgValue = s.TotalValue.Div(decimal.NewFromInt(int64(s.Total)))
	}

	return s
}
