package report

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/report"
)

type statusBreakdownResponse struct {
	Status     purchaserequest.Status `json:"status"`
	Count      int                    `json:"count"`
	Percentage float64                `json:"percentage"`
	Value      decimal.Decimal        `json:"value"`
}

type priorityBreakdownResponse struct {
	Priority     purchaserequest.Priority `json:"priority"`
	Count        int                      `json:"count"`
	Percentage   float64                  `json:"percentage"`
	AverageValue decimal.Decimal          `json:"average_value"`
}

type procurementResponse struct {
	TotalRequests         int                         `json:"total_requests"`
	ActiveRequests        int                         `json:"active_requests"`
	CompletedRequests     int                         `json:"completed_requests"`
	AverageProcessingDays float64                     `json:"average_processing_days"`
	TotalValue            decimal.Decimal             `json:"total_value"`
	AverageRequestValue   decimal.Decimal             `json:"average_request_value"`
	ByStatus              []statusBreakdownResponse   `json:"by_status"`
	ByPriority            []priorityBreakdownResponse `json:"by_priority"`
}

type monthlyResponse struct {
	Month        string          `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	RequestCount int             `json:"request_count"`
	AverageValue decimal.Decimal `json:"average_value"`
}

type categoryResponse struct {
	Category      purchaserequest.ItemCategory `json:"category"`
	Amount        decimal.Decimal              `json:"amount"`
	Percentage    float64                      `json:"percentage"`
	LineItemCount int                          `json:"line_item_count"`
	TopVendors    []string                     `json:"top_vendors"`
}

type fundingResponse struct {
	SourceID           string          `json:"source_id"`
	SourceName         string          `json:"source_name"`
	Budget             decimal.Decimal `json:"budget"`
	Utilized           decimal.Decimal `json:"utilized"`
	Remaining          decimal.Decimal `json:"remaining"`
	UtilizationPercent float64         `json:"utilization_percent"`
}

type spendingResponse struct {
	Monthly    []monthlyResponse  `json:"monthly"`
	Categories []categoryResponse `json:"categories"`
	Funding    []fundingResponse  `json:"funding"`
}

type vendorRatingResponse struct {
	VendorID      string  `json:"vendor_id"`
	VendorName    string  `json:"vendor_name"`
	OverallRating float64 `json:"overall_rating"`
	ContractCount int     `json:"contract_count"`
}

type vendorPerformanceResponse struct {
	TotalVendors  int                    `json:"total_vendors"`
	ActiveVendors int                    `json:"active_vendors"`
	AverageRating float64                `json:"average_rating"`
	TopPerformers []vendorRatingResponse `json:"top_performers"`
}

type analyticsResponse struct {
	Procurement procurementResponse       `json:"procurement"`
	Spending    spendingResponse          `json:"spending"`
	Vendors     vendorPerformanceResponse `json:"vendors"`
}

func toAnalyticsResponse(a *report.Analytics) analyticsResponse {
	p := a.Procurement

	resp := analyticsResponse{
		Procurement: procurementResponse{
			TotalRequests:         p.TotalRequests,
			ActiveRequests:        p.ActiveRequests,
			CompletedRequests:     p.CompletedRequests,
			AverageProcessingDays: p.AverageProcessingDays,
			TotalValue:            p.TotalValue,
			AverageRequestValue:   p.AverageRequestValue,
			ByStatus:              make([]statusBreakdownResponse, len(p.ByStatus)),
			ByPriority:            make([]priorityBreakdownResponse, len(p.ByPriority)),
		},
		Spending: spendingResponse{
			Monthly:    make([]monthlyResponse, len(a.Spending.Monthly)),
			Categories: make([]categoryResponse, len(a.Spending.Categories)),
			Funding:    make([]fundingResponse, len(a.Spending.Funding)),
		},
		Vendors: vendorPerformanceResponse{
			TotalVendors:  a.Vendors.TotalVendors,
			ActiveVendors: a.Vendors.ActiveVendors,
			AverageRating: a.Vendors.AverageRating,
			TopPerformers: make([]vendorRatingResponse, len(a.Vendors.TopPerformers)),
		},
	}

	for i, s := range p.ByStatus {
		resp.Procurement.ByStatus[i] = statusBreakdownResponse(s)
	}

	for i, b := range p.ByPriority {
		resp.Procurement.ByPriority[i] = priorityBreakdownResponse(b)
	}

	for i, m := range a.Spending.Monthly {
		resp.Spending.Monthly[i] = monthlyResponse(m)
	}

	for i, c := range a.Spending.Categories {
		resp.Spending.Categories[i] = categoryResponse{
			Category:      c.Category,
			Amount:        c.Amount,
			Percentage:    c.Percentage,
			LineItemCount: c.LineItemCount,
			TopVendors:    append([]string{}, c.TopVendors...),
		}
	}

	for i, f := range a.Spending.Funding {
		resp.Spending.Funding[i] = fundingResponse(f)
	}

	for i, v := range a.Vendors.TopPerformers {
		resp.Vendors.TopPerformers[i] = vendorRatingResponse(v)
	}

	return resp
}
