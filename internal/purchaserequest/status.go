package purchaserequest

// Status represents the lifecycle state of a purchase request.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
)

// Statuses lists every lifecycle state in workflow order.
var Statuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
}

var validNext = map[Status]map[Status]bool{
	StatusDraft:       {StatusSubmitted: true, StatusCancelled: true},
	StatusSubmitted:   {StatusUnderReview: true, StatusCancelled: true},
	StatusUnderReview: {StatusApproved: true, StatusRejected: true},
	StatusRejected:    {StatusDraft: true},
	StatusApproved:    {},
	StatusCancelled:   {},
}

// CanTransition reports whether a purchase request may move from current to target.
func CanTransition(current, target Status) bool {
	return validNext[current][target]
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

// Editable reports whether a purchase request in status s may still have its content changed.
// Only drafts and rejected requests awaiting rework are open for editing.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusRejected
}

// transitionAction maps the target of a permitted transition to the audit action it records.
func transitionAction(target Status) AuditAction {
	switch target {
	case StatusSubmitted:
		return ActionSubmitted
	case StatusUnderReview:
		return ActionReviewStarted
	case StatusApproved:
		return ActionApproved
	case StatusRejected:
		return ActionRejected
	case StatusCancelled:
		return ActionCancelled
	case StatusDraft:
		return ActionReopened
	}

	return ActionUpdated
}
