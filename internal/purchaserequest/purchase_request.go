package purchaserequest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Priority is the urgency a requester assigns to a purchase request.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}

	return false
}

// ItemCategory classifies a line item for filtering and spend reporting.
type ItemCategory string

const (
	CategoryOfficeSupplies       ItemCategory = "office_supplies"
	CategoryITEquipment          ItemCategory = "it_equipment"
	CategoryProfessionalServices ItemCategory = "professional_services"
	CategoryConstruction         ItemCategory = "construction"
	CategoryMaintenance          ItemCategory = "maintenance"
	CategoryVehicles             ItemCategory = "vehicles"
	CategoryOther                ItemCategory = "other"
)

// Categories lists every item category in display order.
var Categories = []ItemCategory{
	CategoryOfficeSupplies,
	CategoryITEquipment,
	CategoryProfessionalServices,
	CategoryConstruction,
	CategoryMaintenance,
	CategoryVehicles,
	CategoryOther,
}

func (c ItemCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

type UserRole string

const (
	RoleRequester             UserRole = "requester"
	RoleContractingOfficer    UserRole = "contracting_officer"
	RoleContractingSpecialist UserRole = "contracting_specialist"
	RoleProgramManager        UserRole = "program_manager"
	RoleFinancialAnalyst      UserRole = "financial_analyst"
	RoleAdmin                 UserRole = "admin"
)

// AuditAction names the kind of mutation an audit entry records.
type AuditAction string

const (
	ActionCreated       AuditAction = "created"
	ActionUpdated       AuditAction = "updated"
	ActionSubmitted     AuditAction = "submitted"
	ActionReviewStarted AuditAction = "review_started"
	ActionApproved      AuditAction = "approved"
	ActionRejected      AuditAction = "rejected"
	ActionCancelled     AuditAction = "cancelled"
	ActionReopened      AuditAction = "reopened"
)

// PurchaseRequest is the central workflow entity.
type PurchaseRequest struct {
	ID            uuid.UUID
	PRNumber      string
	Requester     UserReference
	Organization  string
	NeedDate      time.Time
	TotalAmount   decimal.Decimal // Always the sum of LineItems[i].TotalPrice
	LineItems     []LineItem
	FundingSource FundingSource
	Status        Status
	Priority      Priority
	Justification string
	History       []AuditEntry // Append-only
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	RejectedAt    *time.Time
}

// LineItem is one ordered position of a purchase request.
type LineItem struct {
	ID            uuid.UUID
	Description   string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal // Quantity * UnitPrice
	UnitOfMeasure string
	PartNumber    string
	Vendor        string
	Category      ItemCategory
}

// FundingSource is a named budget bucket. AvailableBalance is advisory only.
type FundingSource struct {
	ID               string
	Name             string
	Code             string
	AvailableBalance decimal.Decimal
	FiscalYear       int
}

type UserReference struct {
	ID           string
	Name         string
	Email        string
	Organization string
	Role         UserRole
}

// AuditEntry is an immutable record of one state-changing action.
type AuditEntry struct {
	ID        uuid.UUID
	Action    AuditAction
	ActorID   string
	ActorName string
	Timestamp time.Time
	Details   string
	Changes   map[string]Change
}

// Change holds the before and after value of a single updated field.
type Change struct {
	From string
	To   string
}

// Summary is the read-only projection used by list and dashboard views.
type Summary struct {
	ID            uuid.UUID
	PRNumber      string
	Requester     string
	Organization  string
	TotalAmount   decimal.Decimal
	Status        Status
	Priority      Priority
	NeedDate      time.Time
	CreatedAt     time.Time
	LineItemCount int
}

func (pr *PurchaseRequest) Summary() Summary {
	return Summary{
		ID:            pr.ID,
		PRNumber:      pr.PRNumber,
		Requester:     pr.Requester.Name,
		Organization:  pr.Organization,
		TotalAmount:   pr.TotalAmount,
		Status:        pr.Status,
		Priority:      pr.Priority,
		NeedDate:      pr.NeedDate,
		CreatedAt:     pr.CreatedAt,
		LineItemCount: len(pr.LineItems),
	}
}

// Summaries projects each purchase request, keeping the input order.
func Summaries(prs []*PurchaseRequest) []Summary {
	out := make([]Summary, len(prs))
	for i, pr := range prs {
		out[i] = pr.Summary()
	}

	return out
}

// Clone returns a deep copy so callers never share slices or pointers with a store.
func (pr *PurchaseRequest) Clone() *PurchaseRequest {
	if pr == nil {
		return nil
	}

	c := *pr
	c.LineItems = append([]LineItem(nil), pr.LineItems...)

	c.History = make([]AuditEntry, len(pr.History))
	for i, e := range pr.History {
		c.History[i] = e.clone()
	}

	c.SubmittedAt = cloneTime(pr.SubmittedAt)
	c.ApprovedAt = cloneTime(pr.ApprovedAt)
	c.RejectedAt = cloneTime(pr.RejectedAt)

	return &c
}

func (e AuditEntry) clone() AuditEntry {
	if e.Changes == nil {
		return e
	}

	changes := make(map[string]Change, len(e.Changes))
	for k, v := range e.Changes {
		changes[k] = v
	}

	e.Changes = changes

	return e
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := *t

	return &v
}

// lineTotal computes the total of a single line item.
func lineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// sumLineItems returns the sum of all line item totals.
func sumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}

	return total
}
