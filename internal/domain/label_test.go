package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want StatusLabel
	}{
		{"workflow approved", Request{Status: StatusApproved}, LabelApproved},
		{"workflow rejected", Request{Status: StatusRejected}, LabelRejected},
		{"workflow cancelled", Request{Status: StatusCancelled}, LabelCancelled},
		{"workflow pending stakeholder", Request{Status: StatusPendingStakeholderReview}, LabelPending},
		{"legacy free-text approval", Request{AdminAction: "Approved by admin on 2026-01-10"}, LabelApproved},
		{"legacy completed event", Request{Event: &Event{Status: "Completed"}}, LabelApproved},
		{"legacy waiting", Request{AdminAction: "Waiting for stakeholder"}, LabelPending},
		{"empty request defaults to pending", Request{}, LabelPending},
		// Reject wins over approve regardless of field order.
		{
			"reject outranks approve",
			Request{AdminAction: "Approved", CoordinatorFinalAction: "Rejected: venue unavailable"},
			LabelRejected,
		},
		// Event status is consulted ahead of the rest.
		{
			"cancelled event with pending status",
			Request{Status: StatusPendingAdminReview, Event: &Event{Status: "Cancelled"}},
			LabelPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayLabel(&tt.req))
		})
	}
}

func TestPendingStage(t *testing.T) {
	assert.Equal(t, "Waiting for stakeholder review", PendingStage(&Request{Status: StatusPendingStakeholderReview}))
	assert.Equal(t, "Waiting for admin review", PendingStage(&Request{Status: StatusPendingAdminReview}))
	assert.Equal(t, "", PendingStage(&Request{Status: StatusApproved}))

	// Legacy records fall back to which decision fields are recorded.
	assert.Equal(t, "Waiting for admin review", PendingStage(&Request{}))
	assert.Equal(t, "Waiting for stakeholder confirmation",
		PendingStage(&Request{AdminAction: "Rescheduled to 2026-03-01"}))
	assert.Equal(t, "Waiting for stakeholder review",
		PendingStage(&Request{AdminAction: "Forwarded", StakeholderID: "s1"}))
}
