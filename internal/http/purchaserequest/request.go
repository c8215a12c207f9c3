package purchaserequest

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

type lineItemRequest struct {
	Description   string                       `json:"description"`
	Quantity      int                          `json:"quantity"`
	UnitPrice     decimal.Decimal              `json:"unit_price"`
	UnitOfMeasure string                       `json:"unit_of_measure"`
	PartNumber    string                       `json:"part_number,omitempty"`
	Vendor        string                       `json:"vendor,omitempty"`
	Category      purchaserequest.ItemCategory `json:"category"`
}

type createRequest struct {
	RequesterID     string                   `json:"requester_id,omitempty"`
	Organization    string                   `json:"organization"`
	NeedDate        string                   `json:"need_date,omitempty"`
	Justification   string                   `json:"justification"`
	Priority        purchaserequest.Priority `json:"priority"`
	FundingSourceID string                   `json:"funding_source_id"`
	LineItems       []lineItemRequest        `json:"line_items"`
}

func (req createRequest) params() (purchaserequest.CreateParams, error) {
	p := purchaserequest.CreateParams{
		RequesterID:     req.RequesterID,
		Organization:    req.Organization,
		Justification:   req.Justification,
		Priority:        req.Priority,
		FundingSourceID: req.FundingSourceID,
		LineItems:       toLineItemParams(req.LineItems),
	}

	if req.NeedDate != "" {
		t, err := parseDate(req.NeedDate)
		if err != nil {
			return p, fmt.Errorf("need_date: %w", err)
		}

		p.NeedDate = t
	}

	return p, nil
}

type updateRequest struct {
	Organization    *string                   `json:"organization,omitempty"`
	NeedDate        *string                   `json:"need_date,omitempty"`
	Justification   *string                   `json:"justification,omitempty"`
	Priority        *purchaserequest.Priority `json:"priority,omitempty"`
	FundingSourceID *string                   `json:"funding_source_id,omitempty"`
	LineItems       []lineItemRequest         `json:"line_items,omitempty"`
}

func (req updateRequest) params() (purchaserequest.UpdateParams, error) {
	p := purchaserequest.UpdateParams{
		Organization:    req.Organization,
		Justification:   req.Justification,
		Priority:        req.Priority,
		FundingSourceID: req.FundingSourceID,
	}

	if req.LineItems != nil {
		p.LineItems = toLineItemParams(req.LineItems)
	}

	if req.NeedDate != nil {
		t, err := parseDate(*req.NeedDate)
		if err != nil {
			return p, fmt.Errorf("need_date: %w", err)
		}

		p.NeedDate = new(t)
	}

	return p, nil
}

type transitionRequest struct {
	Status purchaserequest.Status `json:"status"`
	Note   string                 `json:"note,omitempty"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func toLineItemParams(items []lineItemRequest) []purchaserequest.LineItemParams {
	out := make([]purchaserequest.LineItemParams, len(items))
	for i, it := range items {
		out[i] = purchaserequest.LineItemParams{
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			UnitOfMeasure: it.UnitOfMeasure,
			PartNumber:    it.PartNumber,
			Vendor:        it.Vendor,
			Category:      it.Category,
		}
	}

	return out
}

// ParseFilter reads the list filters from a query string. Unknown parameters are ignored.
// A date_to given as a calendar day includes the whole day.
func ParseFilter(q url.Values) (purchaserequest.Filter, error) {
	f := purchaserequest.Filter{
		Requester:    strings.TrimSpace(q.Get("requester")),
		Organization: strings.TrimSpace(q.Get("organization")),
	}

	for _, s := range splitList(q.Get("status")) {
		f.Statuses = append(f.Statuses, purchaserequest.Status(s))
	}

	for _, s := range splitList(q.Get("priority")) {
		f.Priorities = append(f.Priorities, purchaserequest.Priority(s))
	}

	for _, s := range splitList(q.Get("category")) {
		f.Categories = append(f.Categories, purchaserequest.ItemCategory(s))
	}

	if s := q.Get("date_from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return f, fmt.Errorf("date_from: %w", err)
		}

		f.DateFrom = new(t)
	}

	if s := q.Get("date_to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return f, fmt.Errorf("date_to: %w", err)
		}

		if len(s) == len(time.DateOnly) {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}

		f.DateTo = new(t)
	}

	if s := q.Get("amount_min"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fmt.Errorf("amount_min: %w", err)
		}

		f.AmountMin = new(d)
	}

	if s := q.Get("amount_max"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fmt.Errorf("amount_max: %w", err)
		}

		f.AmountMax = new(d)
	}

	return f, nil
}

// parseDate accepts a calendar day or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", s)
	}

	return t, nil
}

func splitList(s string) []string {
	var out []string

	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
