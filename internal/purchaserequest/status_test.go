package purchaserequest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

func TestCanTransition(t *testing.T) {
	allowed := map[purchaserequest.Status][]purchaserequest.Status{
		purchaserequest.StatusDraft:       {purchaserequest.StatusSubmitted, purchaserequest.StatusCancelled},
		purchaserequest.StatusSubmitted:   {purchaserequest.StatusUnderReview, purchaserequest.StatusCancelled},
		purchaserequest.StatusUnderReview: {purchaserequest.StatusApproved, purchaserequest.StatusRejected},
		purchaserequest.StatusRejected:    {purchaserequest.StatusDraft},
	}

	for _, from := range purchaserequest.Statuses {
		for _, to := range purchaserequest.Statuses {
			want := false

			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}

			assert.Equal(t, want, purchaserequest.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, purchaserequest.CanTransition("pending_approval", purchaserequest.StatusApproved))
	assert.False(t, purchaserequest.CanTransition(purchaserequest.StatusDraft, "on_hold"))
}

func TestStatus_Terminal(t *testing.T) {
	tests := []struct {
		status purchaserequest.Status
		want   bool
	}{
		{purchaserequest.StatusDraft, false},
		{purchaserequest.StatusSubmitted, false},
		{purchaserequest.StatusUnderReview, false},
		{purchaserequest.StatusRejected, false},
		{purchaserequest.StatusApproved, true},
		{purchaserequest.StatusCancelled, true},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Terminal())
		})
	}
}

func TestStatus_Editable(t *testing.T) {
	editable := map[purchaserequest.Status]bool{
		purchaserequest.StatusDraft:    true,
		purchaserequest.StatusRejected: true,
	}

	for _, s := range purchaserequest.Statuses {
		assert.Equal(t, editable[s], s.Editable(), string(s))
	}
}
