package report

import (
	"context"
	"errors"
	"time"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

var (
	ErrUnknownReport     = errors.New("unknown report")
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

type Category string

const (
	CategoryProcurement Category = "procurement"
	CategoryFinancial   Category = "financial"
	CategoryVendor      Category = "vendor"
	CategoryCompliance  Category = "compliance"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Definition describes a report that can be generated. The first format is the preferred one.
type Definition struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Formats     []Format
}

func (d Definition) Supports(f Format) bool {
	for _, known := range d.Formats {
		if known == f {
			return true
		}
	}

	return false
}

const (
	ReportProcurementPipeline = "procurement-pipeline"
	ReportSpendAnalysis       = "spend-analysis"
	ReportVendorPerformance   = "vendor-performance"
	ReportFundingUtilization  = "funding-utilization"
	ReportComplianceAudit     = "compliance-audit"
)

var catalogue = []Definition{
	{
		ID:          ReportProcurementPipeline,
		Name:        "Procurement Pipeline Report",
		Description: "Status of all active purchase requests",
		Category:    CategoryProcurement,
		Formats:     []Format{FormatCSV, FormatJSON},
	},
	{
		ID:          ReportSpendAnalysis,
		Name:        "Spend Analysis Report",
		Description: "Breakdown of spending by item category and vendor",
		Category:    CategoryFinancial,
		Formats:     []Format{FormatCSV, FormatJSON},
	},
	{
		ID:          ReportVendorPerformance,
		Name:        "Vendor Performance Report",
		Description: "Past performance ratings for every registered vendor",
		Category:    CategoryVendor,
		Formats:     []Format{FormatCSV, FormatJSON},
	},
	{
		ID:          ReportFundingUtilization,
		Name:        "Funding Utilization Report",
		Description: "Approved spend against each funding source balance",
		Category:    CategoryFinancial,
		Formats:     []Format{FormatCSV},
	},
	{
		ID:          ReportComplianceAudit,
		Name:        "Compliance Audit Report",
		Description: "Full audit trail of every purchase request",
		Category:    CategoryCompliance,
		Formats:     []Format{FormatJSON, FormatCSV},
	},
}

// PurchaseRequests is the read side of the purchase request service.
type PurchaseRequests interface {
	List(ctx context.Context, filter purchaserequest.Filter) ([]*purchaserequest.PurchaseRequest, error)
	FundingSources(ctx context.Context) ([]*purchaserequest.FundingSource, error)
}

type Vendors interface {
	List(ctx context.Context) ([]*vendor.Vendor, error)
}

type Service struct {
	prs     PurchaseRequests
	vendors Vendors
	now     func() time.Time
}

func NewService(prs PurchaseRequests, vendors Vendors) *Service {
	return &Service{prs: prs, vendors: vendors, now: time.Now}
}

// Catalogue lists the built-in reports.
func (s *Service) Catalogue() []Definition {
	out := make([]Definition, len(catalogue))
	copy(out, catalogue)

	return out
}

func lookup(id string) (Definition, error) {
	for _, d := range catalogue {
		if d.ID == id {
			return d, nil
		}
	}

	return Definition{}, ErrUnknownReport
}
