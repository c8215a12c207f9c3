package events

import (
	"encoding/json"
	"time"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

const eventVersion = 1

// Envelope wraps every published event. CorrelationID is the purchase request id,
// which is also the partition key so events of one request stay ordered.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id"`
	Payload       json.RawMessage `json:"payload"`
}

// AuditPayload is the body of a purchase request audit event.
type AuditPayload struct {
	PurchaseRequestID string                 `json:"purchase_request_id"`
	PRNumber          string                 `json:"pr_number"`
	Status            string                 `json:"status"`
	Organization      string                 `json:"organization"`
	TotalAmount       string                 `json:"total_amount"`
	EntryID           string                 `json:"entry_id"`
	Action            string                 `json:"action"`
	ActorID           string                 `json:"actor_id"`
	ActorName         string                 `json:"actor_name"`
	Details           string                 `json:"details,omitempty"`
	Changes           map[string]FieldChange `json:"changes,omitempty"`
}

type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EventType maps an audit action to its event name, e.g. "purchase_request.approved".
func EventType(action purchaserequest.AuditAction) string {
	return "purchase_request." + string(action)
}

func newAuditPayload(pr *purchaserequest.PurchaseRequest, entry purchaserequest.AuditEntry) AuditPayload {
	p := AuditPayload{
		PurchaseRequestID: pr.ID.String(),
		PRNumber:          pr.PRNumber,
		Status:            string(pr.Status),
		Organization:      pr.Organization,
		TotalAmount:       pr.TotalAmount.StringFixed(2),
		EntryID:           entry.ID.String(),
		Action:            string(entry.Action),
		ActorID:           entry.ActorID,
		ActorName:         entry.ActorName,
		Details:           entry.Details,
	}

	if len(entry.Changes) > 0 {
		p.Changes = make(map[string]FieldChange, len(entry.Changes))
		for field, c := range entry.Changes {
			p.Changes[field] = FieldChange{From: c.From, To: c.To}
		}
	}

	return p
}
