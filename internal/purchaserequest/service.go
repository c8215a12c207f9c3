package purchaserequest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/logger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchaserequest

// Repository owns the canonical purchase request collection.
// Implementations must return copies and must apply UpdatePurchaseRequest atomically:
// when fn returns an error nothing is written.
type Repository interface {
	NextSequence(ctx context.Context) (int, error)
	CreatePurchaseRequest(ctx context.Context, pr *PurchaseRequest) error
	GetPurchaseRequest(ctx context.Context, id uuid.UUID) (*PurchaseRequest, error)
	ListPurchaseRequests(ctx context.Context) ([]*PurchaseRequest, error)
	UpdatePurchaseRequest(ctx context.Context, id uuid.UUID, fn func(pr *PurchaseRequest) error) (*PurchaseRequest, error)
}

// Directory resolves the reference data a purchase request points at.
type Directory interface {
	GetUser(ctx context.Context, id string) (*UserReference, error)
	ListUsers(ctx context.Context) ([]*UserReference, error)
	GetFundingSource(ctx context.Context, id string) (*FundingSource, error)
	ListFundingSources(ctx context.Context) ([]*FundingSource, error)
}

const (
	opCreate     = "purchase_request.create"
	opUpdate     = "purchase_request.update"
	opTransition = "purchase_request.transition"
)

type Service struct {
	repo     Repository
	dir      Directory
	now      func() time.Time
	notifier Notifier
	metrics  MetricsRecorder
}

func NewService(repo Repository, dir Directory, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		dir:      dir,
		now:      time.Now,
		notifier: nopNotifier{},
		metrics:  nopMetrics{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type LineItemParams struct {
	Description   string
	Quantity      int
	UnitPrice     decimal.Decimal
	UnitOfMeasure string
	PartNumber    string
	Vendor        string
	Category      ItemCategory
}

type CreateParams struct {
	RequesterID     string // Defaults to the actor in the context
	Organization    string
	NeedDate        time.Time
	Justification   string
	Priority        Priority
	FundingSourceID string
	LineItems       []LineItemParams
}

// UpdateParams carries the fields to change. Nil pointers and a nil LineItems slice are left untouched.
type UpdateParams struct {
	Organization    *string
	NeedDate        *time.Time
	Justification   *string
	Priority        *Priority
	FundingSourceID *string
	LineItems       []LineItemParams
}

func (s *Service) Create(ctx context.Context, params CreateParams) (_ *PurchaseRequest, err error) {
	defer s.observe(opCreate, time.Now(), &err)

	org := strings.TrimSpace(params.Organization)
	if org == "" {
		return nil, fmt.Errorf("%w: organization is required", ErrValidation)
	}

	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	items, err := buildLineItems(params.LineItems)
	if err != nil {
		return nil, err
	}

	requesterID := params.RequesterID
	if requesterID == "" {
		requesterID = actor.FromContext(ctx).ID
	}

	requester, err := s.dir.GetUser(ctx, requesterID)
	if err != nil {
		return nil, referenceError("requester", requesterID, err)
	}

	funding, err := s.dir.GetFundingSource(ctx, params.FundingSourceID)
	if err != nil {
		return nil, referenceError("funding source", params.FundingSourceID, err)
	}

	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocating pr number: %w", err)
	}

	now := s.now()
	pr := &PurchaseRequest{
		ID:            uuid.New(),
		PRNumber:      FormatPRNumber(now.Year(), seq),
		Requester:     *requester,
		Organization:  org,
		NeedDate:      params.NeedDate,
		TotalAmount:   sumLineItems(items),
		LineItems:     items,
		FundingSource: *funding,
		Status:        StatusDraft,
		Priority:      priority,
		Justification: strings.TrimSpace(params.Justification),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	pr.History = []AuditEntry{newEntry(ctx, ActionCreated, now, "Purchase request created", nil)}

	if err := s.repo.CreatePurchaseRequest(ctx, pr); err != nil {
		return nil, fmt.Errorf("creating purchase request: %w", err)
	}

	s.notifier.Notify(ctx, pr.Clone(), pr.History[0])
	logger.WithContext(ctx).Info("purchase request created", "id", pr.ID, "pr_number", pr.PRNumber)

	return pr, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (_ *PurchaseRequest, err error) {
	defer s.observe(opUpdate, time.Now(), &err)

	var funding *FundingSource
	if params.FundingSourceID != nil {
		funding, err = s.dir.GetFundingSource(ctx, *params.FundingSourceID)
		if err != nil {
			return nil, referenceError("funding source", *params.FundingSourceID, err)
		}
	}

	var items []LineItem
	if params.LineItems != nil {
		items, err = buildLineItems(params.LineItems)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()

	updated, err := s.repo.UpdatePurchaseRequest(ctx, id, func(pr *PurchaseRequest) error {
		if !pr.Status.Editable() {
			return fmt.Errorf("%w: %s purchase requests cannot be edited", ErrInvalidTransition, pr.Status)
		}

		changes := make(map[string]Change)

		if params.Organization != nil {
			org := strings.TrimSpace(*params.Organization)
			if org == "" {
				return fmt.Errorf("%w: organization is required", ErrValidation)
			}

			recordChange(changes, "organization", pr.Organization, org)
			pr.Organization = org
		}

		if params.NeedDate != nil {
			recordChange(changes, "need_date", pr.NeedDate.Format(time.DateOnly), params.NeedDate.Format(time.DateOnly))
			pr.NeedDate = *params.NeedDate
		}

		if params.Justification != nil {
			j := strings.TrimSpace(*params.Justification)
			recordChange(changes, "justification", pr.Justification, j)
			pr.Justification = j
		}

		if params.Priority != nil {
			if !params.Priority.Valid() {
				return fmt.Errorf("%w: unknown priority %q", ErrValidation, *params.Priority)
			}

			recordChange(changes, "priority", string(pr.Priority), string(*params.Priority))
			pr.Priority = *params.Priority
		}

		if funding != nil {
			recordChange(changes, "funding_source", pr.FundingSource.ID, funding.ID)
			pr.FundingSource = *funding
		}

		if items != nil {
			total := sumLineItems(items)
			recordChange(changes, "line_items", strconv.Itoa(len(pr.LineItems)), strconv.Itoa(len(items)))
			recordChange(changes, "total_amount", pr.TotalAmount.StringFixed(2), total.StringFixed(2))
			pr.LineItems = items
			pr.TotalAmount = total
		}

		if len(changes) == 0 {
			changes = nil
		}

		pr.UpdatedAt = now
		pr.History = append(pr.History, newEntry(ctx, ActionUpdated, now, "Purchase request updated", changes))

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, updated.Clone(), updated.History[len(updated.History)-1])

	return updated, nil
}

// Transition moves a purchase request to target if the lifecycle permits it.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, target Status) (*PurchaseRequest, error) {
	return s.transition(ctx, id, target, "")
}

func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*PurchaseRequest, error) {
	return s.transition(ctx, id, StatusSubmitted, "")
}

func (s *Service) StartReview(ctx context.Context, id uuid.UUID) (*PurchaseRequest, error) {
	return s.transition(ctx, id, StatusUnderReview, "")
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID, comment string) (*PurchaseRequest, error) {
	return s.transition(ctx, id, StatusApproved, comment)
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) (*PurchaseRequest, error) {
	return s.transition(ctx, id, StatusRejected, reason)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*PurchaseRequest, error) {
	return s.transition(ctx, id, StatusCancelled, reason)
}

// Reopen returns a rejected purchase request to draft so it can be edited and resubmitted.
func (s *Service) Reopen(ctx context.Context, id uuid.UUID) (*PurchaseRequest, error) {
	return s.transition(ctx, id, StatusDraft, "")
}

// TransitionWithNote is Transition with a free-text note appended to the audit details.
func (s *Service) TransitionWithNote(ctx context.Context, id uuid.UUID, target Status, note string) (*PurchaseRequest, error) {
	return s.transition(ctx, id, target, note)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, target Status, note string) (_ *PurchaseRequest, err error) {
	defer s.observe(opTransition, time.Now(), &err)

	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}

	now := s.now()

	var from Status

	updated, err := s.repo.UpdatePurchaseRequest(ctx, id, func(pr *PurchaseRequest) error {
		if !CanTransition(pr.Status, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, pr.Status, target)
		}

		from = pr.Status
		pr.Status = target
		pr.UpdatedAt = now

		switch target {
		case StatusSubmitted:
			setOnce(&pr.SubmittedAt, now)
		case StatusApproved:
			setOnce(&pr.ApprovedAt, now)
		case StatusRejected:
			setOnce(&pr.RejectedAt, now)
		}

		details := transitionDetails(target)
		if note = strings.TrimSpace(note); note != "" {
			details += ": " + note
		}

		pr.History = append(pr.History, newEntry(ctx, transitionAction(target), now, details, map[string]Change{
			"status": {From: string(from), To: string(target)},
		}))

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, updated.Clone(), updated.History[len(updated.History)-1])
	logger.WithContext(ctx).Info("purchase request transitioned",
		"id", updated.ID, "from", from, "to", updated.Status)

	return updated, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PurchaseRequest, error) {
	return s.repo.GetPurchaseRequest(ctx, id)
}

// List returns the purchase requests matching filter in insertion order.
func (s *Service) List(ctx context.Context, filter Filter) ([]*PurchaseRequest, error) {
	prs, err := s.repo.ListPurchaseRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing purchase requests: %w", err)
	}

	return Query(prs, filter), nil
}

func (s *Service) Summaries(ctx context.Context, filter Filter) ([]Summary, error) {
	prs, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return Summaries(prs), nil
}

func (s *Service) Stats(ctx context.Context, filter Filter) (Stats, error) {
	prs, err := s.List(ctx, filter)
	if err != nil {
		return Stats{}, err
	}

	return ComputeStats(prs), nil
}

func (s *Service) FundingSources(ctx context.Context) ([]*FundingSource, error) {
	return s.dir.ListFundingSources(ctx)
}

func (s *Service) Users(ctx context.Context) ([]*UserReference, error) {
	return s.dir.ListUsers(ctx)
}

// FormatPRNumber renders the human-readable PR number, e.g. PR-2025-007.
func FormatPRNumber(year, seq int) string {
	return fmt.Sprintf("PR-%d-%03d", year, seq)
}

func (s *Service) observe(op string, start time.Time, err *error) {
	s.metrics.Observe(op, time.Since(start), *err)
}

func buildLineItems(params []LineItemParams) ([]LineItem, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", ErrValidation)
	}

	items := make([]LineItem, len(params))

	for i, p := range params {
		desc := strings.TrimSpace(p.Description)
		if desc == "" {
			return nil, fmt.Errorf("%w: line item %d: description is required", ErrValidation, i+1)
		}

		if p.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line item %d: quantity must be positive", ErrValidation, i+1)
		}

		if !p.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: line item %d: unit price must be positive", ErrValidation, i+1)
		}

		category := p.Category
		if category == "" {
			category = CategoryOther
		}

		if !category.Valid() {
			return nil, fmt.Errorf("%w: line item %d: unknown category %q", ErrValidation, i+1, category)
		}

		items[i] = LineItem{
			ID:            uuid.New(),
			Description:   desc,
			Quantity:      p.Quantity,
			UnitPrice:     p.UnitPrice,
			TotalPrice:    lineTotal(p.Quantity, p.UnitPrice),
			UnitOfMeasure: strings.TrimSpace(p.UnitOfMeasure),
			PartNumber:    strings.TrimSpace(p.PartNumber),
			Vendor:        strings.TrimSpace(p.Vendor),
			Category:      category,
		}
	}

	return items, nil
}

func newEntry(ctx context.Context, action AuditAction, at time.Time, details string, changes map[string]Change) AuditEntry {
	a := actor.FromContext(ctx)

	return AuditEntry{
		ID:        uuid.New(),
		Action:    action,
		ActorID:   a.ID,
		ActorName: a.Name,
		Timestamp: at,
		Details:   details,
		Changes:   changes,
	}
}

func transitionDetails(target Status) string {
	switch target {
	case StatusSubmitted:
		return "Purchase request submitted for approval"
	case StatusUnderReview:
		return "Purchase request review started"
	case StatusApproved:
		return "Purchase request approved"
	case StatusRejected:
		return "Purchase request rejected"
	case StatusCancelled:
		return "Purchase request cancelled"
	case StatusDraft:
		return "Purchase request reopened for editing"
	}

	return "Purchase request status changed"
}

func recordChange(changes map[string]Change, field, from, to string) {
	if from != to {
		changes[field] = Change{From: from, To: to}
	}
}

func setOnce(dst **time.Time, at time.Time) {
	if *dst == nil {
		*dst = &at
	}
}

func referenceError(kind, id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: unknown %s %q", ErrValidation, kind, id)
	}

	return fmt.Errorf("resolving %s: %w", kind, err)
}
