package domain

// DetailBlock names the narrative block the detail screen renders for a
// request. Selection runs in a fixed priority order over the same legacy
// fields the label derivation reads.
type DetailBlock string

const (
	DetailStakeholderRescheduled DetailBlock = "stakeholder-rescheduled"
	DetailAdminRescheduled       DetailBlock = "admin-rescheduled"
	DetailEdited                 DetailBlock = "edited"
	DetailRejected               DetailBlock = "rejected"
	DetailCancelled              DetailBlock = "cancelled"
	DetailCreation               DetailBlock = "creation"
)

// SelectDetailBlock picks the narrative block for the request. Stakeholder
// reschedules are checked before admin reschedules, then edits, rejections
// and cancellations; everything else renders the full creation detail.
func SelectDetailBlock(r *Request) DetailBlock {
	switch {
	case r.Status == StatusRescheduledByStakeholder,
		containsFold(r.StakeholderFinalAction, "resched"):
		return DetailStakeholderRescheduled
	case r.Status == StatusRescheduledByAdmin,
		r.Status == StatusRescheduledByCoordinator,
		containsFold(r.AdminAction, "resched"),
		containsFold(r.CoordinatorFinalAction, "resched"):
		return DetailAdminRescheduled
	case r.IsEdit():
		return DetailEdited
	case r.Status == StatusRejected,
		containsFold(r.AdminAction, "reject"),
		containsFold(r.CoordinatorFinalAction, "reject"),
		containsFold(r.StakeholderFinalAction, "reject"):
		return DetailRejected
	case r.Status == StatusCancelled,
		containsFold(r.AdminAction, "cancel"),
		containsFold(r.CoordinatorFinalAction, "cancel"):
		return DetailCancelled
	default:
		return DetailCreation
	}
}

// CategoryKind folds the free-form category string onto the three known
// kinds by substring, defaulting to blood drives.
func CategoryKind(raw string) EventCategory {
	switch {
	case containsFold(raw, "training"):
		return CategoryTraining
	case containsFold(raw, "advocacy"):
		return CategoryAdvocacy
	case containsFold(raw, "blood"):
		return CategoryBloodDrive
	default:
		return CategoryBloodDrive
	}
}
