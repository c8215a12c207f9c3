package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

// Document is a rendered report.
type Document struct {
	ReportID    string
	Format      Format
	Filename    string
	ContentType string
	GeneratedAt time.Time
	Data        []byte
}

// table is the format-independent shape every report renders to.
type table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type jsonDocument struct {
	Report      string    `json:"report"`
	Name        string    `json:"name"`
	GeneratedAt time.Time `json:"generated_at"`
	table
}

// Generate renders one catalogue report in the requested format over the purchase requests matching filter.
func (s *Service) Generate(ctx context.Context, reportID string, format Format, filter purchaserequest.Filter) (*Document, error) {
	def, err := lookup(reportID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, reportID)
	}

	if format == "" {
		format = def.Formats[0]
	}

	if !def.Supports(format) {
		return nil, fmt.Errorf("%w: %s does not support %q", ErrUnsupportedFormat, def.ID, format)
	}

	t, err := s.build(ctx, def.ID, filter)
	if err != nil {
		return nil, err
	}

	if t.Rows == nil {
		t.Rows = [][]string{}
	}

	now := s.now()
	doc := &Document{
		ReportID:    def.ID,
		Format:      format,
		Filename:    fmt.Sprintf("%s_%s.%s", def.ID, now.Format("20060102"), format),
		GeneratedAt: now,
	}

	switch format {
	case FormatCSV:
		doc.ContentType = "text/csv"
		doc.Data, err = renderCSV(t)
	case FormatJSON:
		doc.ContentType = "application/json"
		doc.Data, err = json.MarshalIndent(jsonDocument{Report: def.ID, Name: def.Name, GeneratedAt: now, table: t}, "", "  ")
	}

	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", def.ID, err)
	}

	return doc, nil
}

func (s *Service) build(ctx context.Context, reportID string, filter purchaserequest.Filter) (table, error) {
	switch reportID {
	case ReportProcurementPipeline:
		prs, err := s.prs.List(ctx, filter)
		if err != nil {
			return table{}, fmt.Errorf("listing purchase requests: %w", err)
		}

		return pipelineTable(prs), nil
	case ReportComplianceAudit:
		prs, err := s.prs.List(ctx, filter)
		if err != nil {
			return table{}, fmt.Errorf("listing purchase requests: %w", err)
		}

		return auditTable(prs), nil
	case ReportVendorPerformance:
		vendors, err := s.vendors.List(ctx)
		if err != nil {
			return table{}, fmt.Errorf("listing vendors: %w", err)
		}

		t := table{Columns: []string{"Vendor", "CAGE Code", "DUNS", "Status", "Business Type", "Average Rating", "Ratings"}}

		for _, v := range vendors {
			rating := ""
			if avg, ok := v.AverageRating(); ok {
				rating = strconv.FormatFloat(avg, 'f', 2, 64)
			}

			t.Rows = append(t.Rows, []string{
				v.Name, v.CageCode, v.DUNS, string(v.Status), string(v.BusinessType),
				rating, strconv.Itoa(len(v.PastPerformance)),
			})
		}

		return t, nil
	}

	a, err := s.Analytics(ctx, filter)
	if err != nil {
		return table{}, err
	}

	switch reportID {
	case ReportSpendAnalysis:
		return spendTable(a.Spending.Categories), nil
	case ReportFundingUtilization:
		return fundingTable(a.Spending.Funding), nil
	}

	return table{}, fmt.Errorf("%w: %q", ErrUnknownReport, reportID)
}

func pipelineTable(prs []*purchaserequest.PurchaseRequest) table {
	t := table{Columns: []string{"PR Number", "Requester", "Organization", "Status", "Priority", "Total Amount", "Need Date", "Created"}}

	for _, pr := range prs {
		if pr.Status.Terminal() || pr.Status == purchaserequest.StatusRejected {
			continue
		}

		t.Rows = append(t.Rows, []string{
			pr.PRNumber,
			pr.Requester.Name,
			pr.Organization,
			string(pr.Status),
			string(pr.Priority),
			pr.TotalAmount.StringFixed(2),
			formatDate(pr.NeedDate),
			formatDate(pr.CreatedAt),
		})
	}

	return t
}

func auditTable(prs []*purchaserequest.PurchaseRequest) table {
	t := table{Columns: []string{"PR Number", "Timestamp", "Action", "Actor", "Details", "Changes"}}

	for _, pr := range prs {
		for _, e := range pr.History {
			t.Rows = append(t.Rows, []string{
				pr.PRNumber,
				e.Timestamp.UTC().Format(time.RFC3339),
				string(e.Action),
				e.ActorName,
				e.Details,
				formatChanges(e.Changes),
			})
		}
	}

	return t
}

func spendTable(categories []CategorySpending) table {
	t := table{Columns: []string{"Category", "Amount", "Percentage", "Line Items", "Top Vendors"}}

	for _, c := range categories {
		t.Rows = append(t.Rows, []string{
			string(c.Category),
			c.Amount.StringFixed(2),
			strconv.FormatFloat(c.Percentage, 'f', 1, 64),
			strconv.Itoa(c.LineItemCount),
			strings.Join(c.TopVendors, "; "),
		})
	}

	return t
}

func fundingTable(funding []FundingUtilization) table {
	t := table{Columns: []string{"Source", "Name", "Budget", "Utilized", "Remaining", "Utilization %"}}

	for _, f := range funding {
		t.Rows = append(t.Rows, []string{
			f.SourceID,
			f.SourceName,
			f.Budget.StringFixed(2),
			f.Utilized.StringFixed(2),
			f.Remaining.StringFixed(2),
			strconv.FormatFloat(f.UtilizationPercent, 'f', 1, 64),
		})
	}

	return t
}

func renderCSV(t table) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, err
	}

	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}

func formatChanges(changes map[string]purchaserequest.Change) string {
	if len(changes) == 0 {
		return ""
	}

	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s -> %s", k, changes[k].From, changes[k].To)
	}

	return strings.Join(parts, "; ")
}
