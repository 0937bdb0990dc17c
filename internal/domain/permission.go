package domain

// DeriveActions computes the set of actions the viewer may take on the
// request.
//
// Explicit permission sources always win: when the upstream attaches an
// allowedActions array it is authoritative and no inference runs. Boolean
// capability flags likewise grant their mapped actions unconditionally.
// Only capabilities with no explicit decision fall back to the
// status-by-role table. Upstream data is trusted as sent; apparent
// mismatches between explicit permissions and status are not reconciled.
func DeriveActions(r *Request, v Viewer) ActionSet {
	set := NewActionSet()
	for _, a := range r.Flags.actions() {
		set.Add(a)
	}

	if r.hasExplicitAllowedActions() {
		for _, raw := range r.AllowedActions {
			set.Add(NormalizeAction(raw))
		}
		return set
	}

	inferStatusActions(r, v, set)
	return set
}

func inferStatusActions(r *Request, v Viewer, set ActionSet) {
	switch r.Status {
	case StatusPendingStakeholderReview:
		// Only the referenced stakeholder decides at this stage.
		if v.ID != "" && v.ID == r.StakeholderID {
			set.Add(ActionAccept)
			set.Add(ActionReject)
		}
		return

	case StatusPendingCoordinatorReview:
		if (v.ID != "" && v.ID == r.CoordinatorID) || v.IsAdmin {
			set.Add(ActionAccept)
			set.Add(ActionReject)
			if !r.IsEdit() {
				set.Add(ActionReschedule)
			}
		}
		return

	case StatusPendingAdminReview:
		if v.IsAdmin || v.IsCoordinator() {
			set.Add(ActionAccept)
			set.Add(ActionReject)
			if !r.IsEdit() {
				set.Add(ActionReschedule)
			}
		}
		return
	}

	// Legacy records without workflow statuses: a reschedule recorded in
	// AdminAction awaits the stakeholder's confirmation, while admins and
	// coordinators may still overrule it.
	if containsFold(r.AdminAction, "resched") {
		if v.ID != "" && v.ID == r.StakeholderID && r.StakeholderFinalAction == "" {
			set.Add(ActionConfirm)
			set.Add(ActionDecline)
		}
		if v.IsAdmin || v.IsCoordinator() {
			set.Add(ActionAccept)
			set.Add(ActionReject)
		}
		return
	}

	if r.AdminAction == "" && v.IsAdmin {
		set.Add(ActionAccept)
		set.Add(ActionReject)
		if !r.IsEdit() {
			set.Add(ActionReschedule)
		}
	}
}
