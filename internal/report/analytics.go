package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

const topPerformers = 5

type Analytics struct {
	Procurement ProcurementMetrics
	Spending    SpendingAnalysis
	Vendors     VendorPerformance
}

type ProcurementMetrics struct {
	TotalRequests         int
	ActiveRequests        int // Draft, submitted or under review
	CompletedRequests     int // Approved
	AverageProcessingDays float64
	TotalValue            decimal.Decimal
	AverageRequestValue   decimal.Decimal
	ByStatus              []StatusBreakdown
	ByPriority            []PriorityBreakdown
}

type StatusBreakdown struct {
	Status     purchaserequest.Status
	Count      int
	Percentage float64
	Value      decimal.Decimal
}

type PriorityBreakdown struct {
	Priority     purchaserequest.Priority
	Count        int
	Percentage   float64
	AverageValue decimal.Decimal
}

type SpendingAnalysis struct {
	Monthly    []MonthlySpending
	Categories []CategorySpending
	Funding    []FundingUtilization
}

type MonthlySpending struct {
	Month        string // YYYY-MM of creation
	Amount       decimal.Decimal
	RequestCount int
	AverageValue decimal.Decimal
}

type CategorySpending struct {
	Category      purchaserequest.ItemCategory
	Amount        decimal.Decimal
	Percentage    float64
	LineItemCount int
	TopVendors    []string
}

// FundingUtilization compares approved spend with a source's balance. It is informational and never enforced.
type FundingUtilization struct {
	SourceID           string
	SourceName         string
	Budget             decimal.Decimal
	Utilized           decimal.Decimal
	Remaining          decimal.Decimal
	UtilizationPercent float64
}

type VendorPerformance struct {
	TotalVendors  int
	ActiveVendors int
	AverageRating float64
	TopPerformers []VendorRating
}

type VendorRating struct {
	VendorID      string
	VendorName    string
	OverallRating float64
	ContractCount int
}

// Analytics computes procurement, spending and vendor metrics over the purchase requests matching filter.
func (s *Service) Analytics(ctx context.Context, filter purchaserequest.Filter) (*Analytics, error) {
	prs, err := s.prs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing purchase requests: %w", err)
	}

	sources, err := s.prs.FundingSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing funding sources: %w", err)
	}

	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}

	return ComputeAnalytics(prs, sources, vendors), nil
}

func ComputeAnalytics(prs []*purchaserequest.PurchaseRequest, sources []*purchaserequest.FundingSource, vendors []*vendor.Vendor) *Analytics {
	return &Analytics{
		Procurement: procurementMetrics(prs),
		Spending: SpendingAnalysis{
			Monthly:    monthlySpending(prs),
			Categories: categorySpending(prs),
			Funding:    fundingUtilization(prs, sources),
		},
		Vendors: vendorPerformance(vendors),
	}
}

func procurementMetrics(prs []*purchaserequest.PurchaseRequest) ProcurementMetrics {
	stats := purchaserequest.ComputeStats(prs)

	m := ProcurementMetrics{
		TotalRequests:       stats.Total,
		ActiveRequests:      stats.Draft + stats.Submitted + stats.UnderReview,
		CompletedRequests:   stats.Approved,
		TotalValue:          stats.TotalValue,
		AverageRequestValue: stats.AvgValue,
	}

	statusValue := make(map[purchaserequest.Status]decimal.Decimal)
	statusCount := make(map[purchaserequest.Status]int)
	priorityValue := make(map[purchaserequest.Priority]decimal.Decimal)
	priorityCount := make(map[purchaserequest.Priority]int)

	var (
		decided  int
		totalDur float64
	)

	for _, pr := range prs {
		statusCount[pr.Status]++
		statusValue[pr.Status] = statusValue[pr.Status].Add(pr.TotalAmount)
		priorityCount[pr.Priority]++
		priorityValue[pr.Priority] = priorityValue[pr.Priority].Add(pr.TotalAmount)

		if pr.SubmittedAt == nil {
			continue
		}

		decision := pr.ApprovedAt
		if decision == nil {
			decision = pr.RejectedAt
		}

		if decision != nil {
			decided++
			totalDur += decision.Sub(*pr.SubmittedAt).Hours() / 24
		}
	}

	if decided > 0 {
		m.AverageProcessingDays = totalDur / float64(decided)
	}

	for _, st := range purchaserequest.Statuses {
		m.ByStatus = append(m.ByStatus, StatusBreakdown{
			Status:     st,
			Count:      statusCount[st],
			Percentage: percent(statusCount[st], len(prs)),
			Value:      statusValue[st],
		})
	}

	for _, p := range []purchaserequest.Priority{
		purchaserequest.PriorityLow, purchaserequest.PriorityMedium,
		purchaserequest.PriorityHigh, purchaserequest.PriorityUrgent,
	} {
		b := PriorityBreakdown{Priority: p, Count: priorityCount[p], Percentage: percent(priorityCount[p], len(prs))}
		if b.Count > 0 {
			b.AverageValue = priorityValue[p].Div(decimal.NewFromInt(int64(b.Count)))
		}

		m.ByPriority = append(m.ByPriority, b)
	}

	return m
}

func monthlySpending(prs []*purchaserequest.PurchaseRequest) []MonthlySpending {
	byMonth := make(map[string]*MonthlySpending)

	for _, pr := range prs {
		key := pr.CreatedAt.Format("2006-01")

		ms, ok := byMonth[key]
		if !ok {
			ms = &MonthlySpending{Month: key}
			byMonth[key] = ms
		}

		ms.Amount = ms.Amount.Add(pr.TotalAmount)
		ms.RequestCount++
	}

	out := make([]MonthlySpending, 0, len(byMonth))
	for _, ms := range byMonth {
		ms.AverageValue = ms.Amount.Div(decimal.NewFromInt(int64(ms.RequestCount)))
		out = append(out, *ms)
	}

	slices.SortFunc(out, func(a, b MonthlySpending) int { return cmp.Compare(a.Month, b.Month) })

	return out
}

func categorySpending(prs []*purchaserequest.PurchaseRequest) []CategorySpending {
	type acc struct {
		amount  decimal.Decimal
		items   int
		vendors map[string]decimal.Decimal
	}

	byCategory := make(map[purchaserequest.ItemCategory]*acc)
	total := decimal.Zero

	for _, pr := range prs {
		for _, li := range pr.LineItems {
			a, ok := byCategory[li.Category]
			if !ok {
				a = &acc{vendors: make(map[string]decimal.Decimal)}
				byCategory[li.Category] = a
			}

			a.amount = a.amount.Add(li.TotalPrice)
			a.items++
			total = total.Add(li.TotalPrice)

			if li.Vendor != "" {
				a.vendors[li.Vendor] = a.vendors[li.Vendor].Add(li.TotalPrice)
			}
		}
	}

	var out []CategorySpending

	for _, c := range purchaserequest.Categories {
		a, ok := byCategory[c]
		if !ok {
			continue
		}

		cs := CategorySpending{
			Category:      c,
			Amount:        a.amount,
			LineItemCount: a.items,
			TopVendors:    topVendors(a.vendors, 3),
		}

		if total.IsPositive() {
			cs.Percentage = a.amount.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		out = append(out, cs)
	}

	return out
}

func topVendors(spend map[string]decimal.Decimal, n int) []string {
	names := make([]string, 0, len(spend))
	for name := range spend {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		if c := spend[b].Cmp(spend[a]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	if len(names) > n {
		names = names[:n]
	}

	return names
}

func fundingUtilization(prs []*purchaserequest.PurchaseRequest, sources []*purchaserequest.FundingSource) []FundingUtilization {
	utilized := make(map[string]decimal.Decimal)

	for _, pr := range prs {
		if pr.Status == purchaserequest.StatusApproved {
			utilized[pr.FundingSource.ID] = utilized[pr.FundingSource.ID].Add(pr.TotalAmount)
		}
	}

	out := make([]FundingUtilization, 0, len(sources))

	for _, fs := range sources {
		fu := FundingUtilization{
			SourceID:   fs.ID,
			SourceName: fs.Name,
			Budget:     fs.AvailableBalance,
			Utilized:   utilized[fs.ID],
			Remaining:  fs.AvailableBalance.Sub(utilized[fs.ID]),
		}

		if fs.AvailableBalance.IsPositive() {
			fu.UtilizationPercent = fu.Utilized.Div(fs.AvailableBalance).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		out = append(out, fu)
	}

	return out
}

func vendorPerformance(vendors []*vendor.Vendor) VendorPerformance {
	stats := vendor.ComputeStats(vendors)

	vp := VendorPerformance{
		TotalVendors:  stats.Total,
		ActiveVendors: stats.Active,
		AverageRating: stats.AverageRating,
	}

	for _, v := range vendors {
		if avg, ok := v.AverageRating(); ok {
			vp.TopPerformers = append(vp.TopPerformers, VendorRating{
				VendorID:      v.ID.String(),
				VendorName:    v.Name,
				OverallRating: avg,
				ContractCount: len(v.PastPerformance),
			})
		}
	}

	slices.SortFunc(vp.TopPerformers, func(a, b VendorRating) int {
		if c := cmp.Compare(b.OverallRating, a.OverallRating); c != 0 {
			return c
		}

		return cmp.Compare(a.VendorName, b.VendorName)
	})

	if len(vp.TopPerformers) > topPerformers {
		vp.TopPerformers = vp.TopPerformers[:topPerformers]
	}

	return vp
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(n) / float64(total) * 100
}
