// Package seed holds the demo data the API and TUI start with.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

// namespace keeps seeded ids stable across restarts.
var namespace = uuid.MustParse("6f1c2a9e-3d4b-4c8a-9e57-0a8b1c2d3e4f")

func id(name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(name))
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("seed: bad timestamp %q", s))
	}

	return t
}

func day(s string) time.Time {
	return at(s + "T00:00:00Z")
}

func Users() []purchaserequest.UserReference {
	return []purchaserequest.UserReference{
		{ID: "user-1", Name: "John Smith", Email: "john.smith@agency.gov", Organization: "Information Technology Division", Role: purchaserequest.RoleRequester},
		{ID: "user-2", Name: "Sarah Johnson", Email: "sarah.johnson@agency.gov", Organization: "Operations Division", Role: purchaserequest.RoleContractingOfficer},
		{ID: "user-3", Name: "Michael Chen", Email: "michael.chen@agency.gov", Organization: "Facilities Management", Role: purchaserequest.RoleRequester},
		{ID: "user-4", Name: "Lisa Rodriguez", Email: "lisa.rodriguez@agency.gov", Organization: "Finance Division", Role: purchaserequest.RoleFinancialAnalyst},
	}
}

// Actor resolves a user id against the seeded directory. Unknown ids act under their own id as name.
func Actor(userID string) actor.Actor {
	for _, u := range Users() {
		if u.ID == userID {
			return actor.Actor{ID: u.ID, Name: u.Name}
		}
	}

	return actor.Actor{ID: userID, Name: userID}
}

func FundingSources() []purchaserequest.FundingSource {
	return []purchaserequest.FundingSource{
		{ID: "fund-1", Name: "Operations and Maintenance", Code: "O&M-2025", AvailableBalance: decimal.NewFromInt(2500000), FiscalYear: 2025},
		{ID: "fund-2", Name: "Information Technology Modernization", Code: "IT-MOD-2025", AvailableBalance: decimal.NewFromInt(1800000), FiscalYear: 2025},
		{ID: "fund-3", Name: "Facilities and Infrastructure", Code: "FAC-2025", AvailableBalance: decimal.NewFromInt(950000), FiscalYear: 2025},
	}
}

func lineItem(name, description string, quantity int, unitPrice string, uom, partNumber, vendorName string, category purchaserequest.ItemCategory) purchaserequest.LineItem {
	price := decimal.RequireFromString(unitPrice)

	return purchaserequest.LineItem{
		ID:            id(name),
		Description:   description,
		Quantity:      quantity,
		UnitPrice:     price,
		TotalPrice:    price.Mul(decimal.NewFromInt(int64(quantity))),
		UnitOfMeasure: uom,
		PartNumber:    partNumber,
		Vendor:        vendorName,
		Category:      category,
	}
}

func entry(name string, action purchaserequest.AuditAction, user purchaserequest.UserReference, ts, details string) purchaserequest.AuditEntry {
	return purchaserequest.AuditEntry{
		ID:        id(name),
		Action:    action,
		ActorID:   user.ID,
		ActorName: user.Name,
		Timestamp: at(ts),
		Details:   details,
	}
}

func total(items []purchaserequest.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}

	return sum
}

// PurchaseRequests returns four requests covering the draft, under review, approved and rejected states.
func PurchaseRequests() []*purchaserequest.PurchaseRequest {
	users := Users()
	funds := FundingSources()
	john, sarah, michael, lisa := users[0], users[1], users[2], users[3]

	updated := entry("audit-2", purchaserequest.ActionUpdated, john, "2025-08-15T10:30:00Z", "Added justification and funding source")
	updated.Changes = map[string]purchaserequest.Change{
		"justification": {From: "", To: "Required for Q4 2025 office expansion project"},
	}

	prs := []*purchaserequest.PurchaseRequest{
		{
			ID:            id("pr-1"),
			PRNumber:      "PR-2025-001",
			Requester:     john,
			Organization:  "Information Technology Division",
			NeedDate:      day("2025-09-15"),
			LineItems:     []purchaserequest.LineItem{lineItem("line-1", "Laptop computers - Dell Latitude 5000 series", 25, "1200", "each", "DELL-LAT-5000", "Dell Technologies", purchaserequest.CategoryITEquipment)},
			FundingSource: funds[1],
			Status:        purchaserequest.StatusUnderReview,
			Priority:      purchaserequest.PriorityHigh,
			Justification: "Required for Q4 2025 office expansion project. Current laptops are 5+ years old and no longer supported.",
			History: []purchaserequest.AuditEntry{
				entry("audit-1", purchaserequest.ActionCreated, john, "2025-08-15T09:00:00Z", "Purchase request created"),
				updated,
				entry("audit-3", purchaserequest.ActionSubmitted, john, "2025-08-15T11:45:00Z", "Purchase request submitted for approval"),
				entry("audit-3b", purchaserequest.ActionReviewStarted, sarah, "2025-08-16T14:30:00Z", "Review started"),
			},
			CreatedAt:   at("2025-08-15T09:00:00Z"),
			UpdatedAt:   at("2025-08-16T14:30:00Z"),
			SubmittedAt: new(at("2025-08-15T11:45:00Z")),
		},
		{
			ID:            id("pr-2"),
			PRNumber:      "PR-2025-002",
			Requester:     michael,
			Organization:  "Facilities Management",
			NeedDate:      day("2025-08-30"),
			LineItems:     []purchaserequest.LineItem{lineItem("line-2", "Office chairs - ergonomic task chairs", 50, "350", "each", "", "", purchaserequest.CategoryOfficeSupplies)},
			FundingSource: funds[2],
			Status:        purchaserequest.StatusApproved,
			Priority:      purchaserequest.PriorityMedium,
			Justification: "Ergonomic chairs needed for new office space to meet workplace safety requirements.",
			History: []purchaserequest.AuditEntry{
				entry("audit-4", purchaserequest.ActionCreated, michael, "2025-08-10T14:00:00Z", "Purchase request created"),
				entry("audit-5", purchaserequest.ActionSubmitted, michael, "2025-08-10T15:30:00Z", "Purchase request submitted for approval"),
				entry("audit-6", purchaserequest.ActionApproved, sarah, "2025-08-12T10:15:00Z", "Purchase request approved by contracting officer"),
			},
			CreatedAt:   at("2025-08-10T14:00:00Z"),
			UpdatedAt:   at("2025-08-12T10:15:00Z"),
			SubmittedAt: new(at("2025-08-10T15:30:00Z")),
			ApprovedAt:  new(at("2025-08-12T10:15:00Z")),
		},
		{
			ID:            id("pr-3"),
			PRNumber:      "PR-2025-003",
			Requester:     john,
			Organization:  "Operations Division",
			NeedDate:      day("2025-10-01"),
			LineItems:     []purchaserequest.LineItem{lineItem("line-3", "Professional cleaning services - 12 months", 1, "45000", "contract", "", "", purchaserequest.CategoryProfessionalServices)},
			FundingSource: funds[0],
			Status:        purchaserequest.StatusDraft,
			Priority:      purchaserequest.PriorityLow,
			Justification: "Annual cleaning services contract renewal for FY 2025.",
			History: []purchaserequest.AuditEntry{
				entry("audit-7", purchaserequest.ActionCreated, john, "2025-08-18T16:00:00Z", "Purchase request created as draft"),
			},
			CreatedAt: at("2025-08-18T16:00:00Z"),
			UpdatedAt: at("2025-08-18T16:00:00Z"),
		},
		{
			ID:           id("pr-4"),
			PRNumber:     "PR-2025-004",
			Requester:    michael,
			Organization: "Facilities Management",
			NeedDate:     day("2025-09-01"),
			LineItems: []purchaserequest.LineItem{
				lineItem("line-4", "Printer paper - 20lb bond, case of 10 reams", 25, "85", "case", "", "", purchaserequest.CategoryOfficeSupplies),
				lineItem("line-5", "Toner cartridges - HP LaserJet compatible", 50, "127.5", "each", "HP-83A-CF283A", "", purchaserequest.CategoryOfficeSupplies),
			},
			FundingSource: funds[0],
			Status:        purchaserequest.StatusRejected,
			Priority:      purchaserequest.PriorityLow,
			Justification: "Office supplies for Q4 2025 operations.",
			History: []purchaserequest.AuditEntry{
				entry("audit-8", purchaserequest.ActionCreated, michael, "2025-08-05T11:00:00Z", "Purchase request created"),
				entry("audit-9", purchaserequest.ActionSubmitted, michael, "2025-08-05T14:30:00Z", "Purchase request submitted for approval"),
				entry("audit-10", purchaserequest.ActionRejected, lisa, "2025-08-07T09:15:00Z", "Purchase request rejected - insufficient justification for quantity"),
			},
			CreatedAt:   at("2025-08-05T11:00:00Z"),
			UpdatedAt:   at("2025-08-07T09:15:00Z"),
			SubmittedAt: new(at("2025-08-05T14:30:00Z")),
			RejectedAt:  new(at("2025-08-07T09:15:00Z")),
		},
	}

	for _, pr := range prs {
		pr.TotalAmount = total(pr.LineItems)
	}

	return prs
}

type vendorRow struct {
	key          string
	name         string
	cage         string
	duns         string
	status       vendor.Status
	businessType vendor.BusinessType
	lastActivity string
	rating       float64
	capabilities []string
}

var vendorRows = []vendorRow{
	{"vendor-001", "Acme Defense Solutions", "1A2B3", "123456789", vendor.StatusActive, vendor.BusinessSmall, "2025-08-15", 4.5, []string{"IT Services", "Cybersecurity", "Software Development", "System Integration"}},
	{"vendor-002", "TechForward Industries", "4C5D6", "987654321", vendor.StatusActive, vendor.BusinessWomanOwned, "2025-08-12", 4.2, []string{"Software Development", "Cloud Solutions", "Data Analytics", "Mobile Applications"}},
	{"vendor-003", "Global Manufacturing Corp", "7E8F9", "456789123", vendor.StatusInactive, vendor.BusinessLarge, "2025-07-20", 3.8, []string{"Manufacturing", "Logistics"}},
	{"vendor-004", "Veteran Solutions LLC", "2G3H4", "789123456", vendor.StatusActive, vendor.BusinessVeteranOwned, "2025-08-10", 4.7, []string{"Consulting", "Training"}},
	{"vendor-005", "Minority Tech Enterprises", "5I6J7", "321654987", vendor.StatusPendingReview, vendor.BusinessSmallDisadvantaged, "2025-08-08", 4.0, []string{"IT Services", "Data Analytics"}},
	{"vendor-006", "HUBZone Construction Co", "8K9L0", "654987321", vendor.StatusActive, vendor.BusinessHUBZone, "2025-08-05", 4.1, []string{"Construction", "Maintenance"}},
	{"vendor-007", "Suspended Services Inc", "3M4N5", "147258369", vendor.StatusSuspended, vendor.BusinessSmall, "2025-06-15", 2.5, []string{"Professional Services"}},
	{"vendor-008", "Excellence Engineering", "6O7P8", "258369147", vendor.StatusActive, vendor.BusinessServiceDisabledVeteran, "2025-08-14", 4.8, []string{"Engineering Services", "Research & Development"}},
}

// Vendors returns eight vendors across every status except debarred, each with one past performance rating.
func Vendors() []*vendor.Vendor {
	out := make([]*vendor.Vendor, 0, len(vendorRows))

	for i, row := range vendorRows {
		last := day(row.lastActivity)
		review := last.AddDate(0, -1, 0)

		out = append(out, &vendor.Vendor{
			ID:           id(row.key),
			Name:         row.name,
			CageCode:     row.cage,
			DUNS:         row.duns,
			Status:       row.status,
			BusinessType: row.businessType,
			Capabilities: row.capabilities,
			PastPerformance: []vendor.PerformanceRating{{
				ID:               id(fmt.Sprintf("perf-%03d", i+1)),
				ContractID:       fmt.Sprintf("CONTRACT-2024-%03d", i+1),
				StartDate:        review.AddDate(-1, 0, 0),
				EndDate:          review,
				OverallRating:    row.rating,
				QualityRating:    row.rating,
				ScheduleRating:   row.rating,
				CostRating:       row.rating,
				ManagementRating: row.rating,
				ReviewDate:       review,
			}},
			LastActivity: last,
			CreatedAt:    day("2023-05-10"),
			UpdatedAt:    last,
			RegisteredAt: day("2023-05-15"),
		})
	}

	acme, techForward := out[0], out[1]

	acme.PointOfContact = vendor.Contact{Name: "John Smith", Title: "Business Development Manager", Email: "j.smith@acmedefense.com", Phone: "(555) 123-4567"}
	acme.Address = vendor.Address{Street: "123 Defense Boulevard", City: "Arlington", State: "VA", ZipCode: "22201", Country: "USA"}
	acme.PastPerformance[0].ContractTitle = "Network Security Implementation"
	acme.PastPerformance[0].Comments = "Excellent performance on all deliverables"
	acme.Certifications = []vendor.Certification{{
		ID:                id("cert-001"),
		Type:              "iso_9001",
		Name:              "ISO 9001:2015 Quality Management",
		IssuedBy:          "ISO Certification Body",
		IssuedDate:        day("2024-03-15"),
		ExpiresDate:       new(day("2027-03-15")),
		CertificateNumber: "ISO-9001-2024-ACM",
		Active:            true,
	}}
	acme.Documents = []vendor.Document{{
		ID:         id("doc-001"),
		Type:       "w9",
		Title:      "W-9 Tax Form 2025",
		Filename:   "acme-w9-2025.pdf",
		Size:       245760,
		UploadedAt: day("2025-01-15"),
		ExpiresAt:  new(day("2025-12-31")),
		Active:     true,
	}}

	techForward.PointOfContact = vendor.Contact{Name: "Sarah Johnson", Title: "CEO", Email: "s.johnson@techforward.com", Phone: "(555) 987-6543"}
	techForward.Address = vendor.Address{Street: "456 Innovation Drive", City: "Austin", State: "TX", ZipCode: "78701", Country: "USA"}
	techForward.PastPerformance[0].ContractTitle = "Enterprise Software Modernization"
	techForward.PastPerformance[0].Comments = "Strong technical delivery with minor schedule adjustments"

	return out
}

// Loader is the subset of a purchase request repository seeding needs.
type Loader interface {
	NextSequence(ctx context.Context) (int, error)
	CreatePurchaseRequest(ctx context.Context, pr *purchaserequest.PurchaseRequest) error
	ListPurchaseRequests(ctx context.Context) ([]*purchaserequest.PurchaseRequest, error)
}

// LoadPurchaseRequests inserts prs into an empty repository and advances its number sequence past them.
// A repository that already holds data is left untouched.
func LoadPurchaseRequests(ctx context.Context, repo Loader, prs []*purchaserequest.PurchaseRequest) (bool, error) {
	existing, err := repo.ListPurchaseRequests(ctx)
	if err != nil {
		return false, fmt.Errorf("listing purchase requests: %w", err)
	}

	if len(existing) > 0 {
		return false, nil
	}

	for _, pr := range prs {
		if _, err := repo.NextSequence(ctx); err != nil {
			return false, err
		}

		if err := repo.CreatePurchaseRequest(ctx, pr); err != nil {
			return false, fmt.Errorf("seeding %s: %w", pr.PRNumber, err)
		}
	}

	return true, nil
}

// VendorLoader is the subset of a vendor repository seeding needs.
type VendorLoader interface {
	CreateVendor(ctx context.Context, v *vendor.Vendor) error
	ListVendors(ctx context.Context) ([]*vendor.Vendor, error)
}

// LoadVendors inserts vendors into an empty repository.
func LoadVendors(ctx context.Context, repo VendorLoader, vendors []*vendor.Vendor) (bool, error) {
	existing, err := repo.ListVendors(ctx)
	if err != nil {
		return false, fmt.Errorf("listing vendors: %w", err)
	}

	if len(existing) > 0 {
		return false, nil
	}

	for _, v := range vendors {
		if err := repo.CreateVendor(ctx, v); err != nil {
			return false, fmt.Errorf("seeding vendor %s: %w", v.Name, err)
		}
	}

	return true, nil
}
