package purchaserequest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

type userResponse struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Email        string                   `json:"email,omitempty"`
	Organization string                   `json:"organization,omitempty"`
	Role         purchaserequest.UserRole `json:"role,omitempty"`
}

type fundingSourceResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Code             string          `json:"code"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	FiscalYear       int             `json:"fiscal_year"`
}

type lineItemResponse struct {
	ID            uuid.UUID                    `json:"id"`
	Description   string                       `json:"description"`
	Quantity      int                          `json:"quantity"`
	UnitPrice     decimal.Decimal              `json:"unit_price"`
	TotalPrice    decimal.Decimal              `json:"total_price"`
	UnitOfMeasure string                       `json:"unit_of_measure"`
	PartNumber    string                       `json:"part_number,omitempty"`
	Vendor        string                       `json:"vendor,omitempty"`
	Category      purchaserequest.ItemCategory `json:"category"`
}

type changeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type auditEntryResponse struct {
	ID        uuid.UUID                   `json:"id"`
	Action    purchaserequest.AuditAction `json:"action"`
	ActorID   string                      `json:"actor_id"`
	ActorName string                      `json:"actor_name"`
	Timestamp time.Time                   `json:"timestamp"`
	Details   string                      `json:"details"`
	Changes   map[string]changeResponse   `json:"changes,omitempty"`
}

type purchaseRequestResponse struct {
	ID            uuid.UUID                `json:"id"`
	PRNumber      string                   `json:"pr_number"`
	Requester     userResponse             `json:"requester"`
	Organization  string                   `json:"organization"`
	NeedDate      *time.Time               `json:"need_date,omitempty"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	LineItems     []lineItemResponse       `json:"line_items"`
	FundingSource fundingSourceResponse    `json:"funding_source"`
	Status        purchaserequest.Status   `json:"status"`
	Priority      purchaserequest.Priority `json:"priority"`
	Justification string                   `json:"justification"`
	History       []auditEntryResponse     `json:"history"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	SubmittedAt   *time.Time               `json:"submitted_at,omitempty"`
	ApprovedAt    *time.Time               `json:"approved_at,omitempty"`
	RejectedAt    *time.Time               `json:"rejected_at,omitempty"`
}

type summaryResponse struct {
	ID            uuid.UUID                `json:"id"`
	PRNumber      string                   `json:"pr_number"`
	Requester     string                   `json:"requester"`
	Organization  string                   `json:"organization"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	Status        purchaserequest.Status   `json:"status"`
	Priority      purchaserequest.Priority `json:"priority"`
	NeedDate      *time.Time               `json:"need_date,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	LineItemCount int                      `json:"line_item_count"`
}

type statsResponse struct {
	Total       int             `json:"total"`
	Draft       int             `json:"draft"`
	Submitted   int             `json:"submitted"`
	UnderReview int             `json:"under_review"`
	Approved    int             `json:"approved"`
	Rejected    int             `json:"rejected"`
	Cancelled   int             `json:"cancelled"`
	TotalValue  decimal.Decimal `json:"total_value"`
	AvgValue    decimal.Decimal `json:"avg_value"`
}

func toResponse(pr *purchaserequest.PurchaseRequest) purchaseRequestResponse {
	resp := purchaseRequestResponse{
		ID:            pr.ID,
		PRNumber:      pr.PRNumber,
		Requester:     toUserResponse(&pr.Requester),
		Organization:  pr.Organization,
		NeedDate:      optionalTime(pr.NeedDate),
		TotalAmount:   pr.TotalAmount,
		LineItems:     make([]lineItemResponse, len(pr.LineItems)),
		FundingSource: toFundingSourceResponse(&pr.FundingSource),
		Status:        pr.Status,
		Priority:      pr.Priority,
		Justification: pr.Justification,
		History:       make([]auditEntryResponse, len(pr.History)),
		CreatedAt:     pr.CreatedAt,
		UpdatedAt:     pr.UpdatedAt,
		SubmittedAt:   pr.SubmittedAt,
		ApprovedAt:    pr.ApprovedAt,
		RejectedAt:    pr.RejectedAt,
	}

	for i, it := range pr.LineItems {
		resp.LineItems[i] = lineItemResponse{
			ID:            it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			TotalPrice:    it.TotalPrice,
			UnitOfMeasure: it.UnitOfMeasure,
			PartNumber:    it.PartNumber,
			Vendor:        it.Vendor,
			Category:      it.Category,
		}
	}

	for i, e := range pr.History {
		entry := auditEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			ActorID:   e.ActorID,
			ActorName: e.ActorName,
			Timestamp: e.Timestamp,
			Details:   e.Details,
		}

		if len(e.Changes) > 0 {
			entry.Changes = make(map[string]changeResponse, len(e.Changes))
			for field, c := range e.Changes {
				entry.Changes[field] = changeResponse{From: c.From, To: c.To}
			}
		}

		resp.History[i] = entry
	}

	return resp
}

func toResponseList(prs []*purchaserequest.PurchaseRequest) []purchaseRequestResponse {
	resp := make([]purchaseRequestResponse, len(prs))
	for i, pr := range prs {
		resp[i] = toResponse(pr)
	}

	return resp
}

func toSummaryList(summaries []purchaserequest.Summary) []summaryResponse {
	resp := make([]summaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = summaryResponse{
			ID:            s.ID,
			PRNumber:      s.PRNumber,
			Requester:     s.Requester,
			Organization:  s.Organization,
			TotalAmount:   s.TotalAmount,
			Status:        s.Status,
			Priority:      s.Priority,
			NeedDate:      optionalTime(s.NeedDate),
			CreatedAt:     s.CreatedAt,
			LineItemCount: s.LineItemCount,
		}
	}

	return resp
}

func toStatsResponse(s purchaserequest.Stats) statsResponse {
	return statsResponse{
		Total:       s.Total,
		Draft:       s.Draft,
		Submitted:   s.Submitted,
		UnderReview: s.UnderReview,
		Approved:    s.Approved,
		Rejected:    s.Rejected,
		Cancelled:   s.Cancelled,
		TotalValue:  s.TotalValue,
		AvgValue:    s.AvgValue,
	}
}

func toUserResponse(u *purchaserequest.UserReference) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Organization: u.Organization, Role: u.Role}
}

func toFundingSourceResponse(f *purchaserequest.FundingSource) fundingSourceResponse {
	return fundingSourceResponse{
		ID:               f.ID,
		Name:             f.Name,
		Code:             f.Code,
		AvailableBalance: f.AvailableBalance,
		FiscalYear:       f.FiscalYear,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
