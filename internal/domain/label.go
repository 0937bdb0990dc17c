package domain

import "strings"

// StatusLabel is the fixed display vocabulary for badge coloring. The
// derivation is deliberately lossy and must never feed authorization.
type StatusLabel string

const (
	LabelApproved  StatusLabel = "Approved"
	LabelPending   StatusLabel = "Pending"
	LabelRejected  StatusLabel = "Rejected"
	LabelCancelled StatusLabel = "Cancelled"
)

// DisplayLabel maps the request's raw status and action fields onto the
// display vocabulary. Fields are concatenated in priority order (event
// status, request status, AdminAction, CoordinatorFinalAction) and matched
// by substring, first match wins.
func DisplayLabel(r *Request) StatusLabel {
	var parts []string
	if r.Event != nil && r.Event.Status != "" {
		parts = append(parts, r.Event.Status)
	}
	if r.Status != "" {
		parts = append(parts, string(r.Status))
	}
	if r.AdminAction != "" {
		parts = append(parts, r.AdminAction)
	}
	if r.CoordinatorFinalAction != "" {
		parts = append(parts, r.CoordinatorFinalAction)
	}

	haystack := strings.ToLower(strings.Join(parts, " "))
	switch {
	case strings.Contains(haystack, "reject"):
		return LabelRejected
	case strings.Contains(haystack, "approve"), strings.Contains(haystack, "complete"):
		return LabelApproved
	case strings.Contains(haystack, "pending"),
		strings.Contains(haystack, "waiting"),
		strings.Contains(haystack, "awaiting"):
		return LabelPending
	case strings.Contains(haystack, "cancel"):
		return LabelCancelled
	default:
		return LabelPending
	}
}

// PendingStage produces the human-readable sublabel shown under a Pending
// badge. Workflow statuses take precedence; legacy records fall back to
// which decision fields have been recorded and whether a stakeholder is
// attached at all.
func PendingStage(r *Request) string {
	switch r.Status {
	case StatusPendingStakeholderReview:
		return "Waiting for stakeholder review"
	case StatusPendingCoordinatorReview:
		return "Waiting for coordinator review"
	case StatusPendingAdminReview:
		return "Waiting for admin review"
	case StatusRescheduledByAdmin:
		return "Rescheduled by admin, awaiting confirmation"
	case StatusRescheduledByCoordinator:
		return "Rescheduled by coordinator, awaiting confirmation"
	case StatusRescheduledByStakeholder:
		return "Rescheduled by stakeholder, awaiting review"
	case StatusApproved, StatusRejected, StatusCancelled:
		return ""
	}

	if containsFold(r.AdminAction, "resched") && r.StakeholderFinalAction == "" {
		return "Waiting for stakeholder confirmation"
	}
	if r.AdminAction == "" {
		return "Waiting for admin review"
	}
	if r.StakeholderID != "" && r.StakeholderFinalAction == "" {
		return "Waiting for stakeholder review"
	}
	if r.CoordinatorFinalAction == "" {
		return "Waiting for coordinator review"
	}
	return ""
}
