package domain

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// RequestStatus is the workflow status vocabulary used by the upstream API.
// Older records may carry free-text action fields instead; those are kept on
// the Request and consulted by the label and permission derivations.
type RequestStatus string

const (
	StatusPendingStakeholderReview RequestStatus = "Pending_Stakeholder_Review"
	StatusPendingCoordinatorReview RequestStatus = "Pending_Coordinator_Review"
	StatusPendingAdminReview       RequestStatus = "Pending_Admin_Review"
	StatusRescheduledByAdmin       RequestStatus = "Rescheduled_By_Admin"
	StatusRescheduledByCoordinator RequestStatus = "Rescheduled_By_Coordinator"
	StatusRescheduledByStakeholder RequestStatus = "Rescheduled_By_Stakeholder"
	StatusApproved                 RequestStatus = "Approved"
	StatusRejected                 RequestStatus = "Rejected"
	StatusCancelled                RequestStatus = "Cancelled"
)

type EventCategory string

const (
	CategoryBloodDrive EventCategory = "BloodDrive"
	CategoryTraining   EventCategory = "Training"
	CategoryAdvocacy   EventCategory = "Advocacy"
)

// Action is a normalized action name. The canonical vocabulary is fixed;
// upstream payloads may use synonyms which NormalizeAction folds in.
type Action string

const (
	ActionView        Action = "view"
	ActionAccept      Action = "accept"
	ActionReject      Action = "reject"
	ActionReschedule  Action = "reschedule"
	ActionConfirm     Action = "confirm"
	ActionDecline     Action = "decline"
	ActionCancel      Action = "cancel"
	ActionDelete      Action = "delete"
	ActionManageStaff Action = "manage-staff"
)

var actionAliases = map[string]Action{
	"approve":      ActionAccept,
	"approved":     ActionAccept,
	"resched":      ActionReschedule,
	"rescheduled":  ActionReschedule,
	"manage_staff": ActionManageStaff,
	"managestaff":  ActionManageStaff,
}

// NormalizeAction lowercases and trims a raw action name and folds known
// synonyms onto the canonical vocabulary.
func NormalizeAction(raw string) Action {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := actionAliases[s]; ok {
		return alias
	}
	return Action(s)
}

// ActionSet is the set of actions a viewer may take on a request.
type ActionSet map[Action]struct{}

func NewActionSet(actions ...Action) ActionSet {
	s := make(ActionSet, len(actions))
	for _, a := range actions {
		s.Add(a)
	}
	return s
}

func (s ActionSet) Add(a Action) {
	s[a] = struct{}{}
}

// Has reports whether the set contains the named action. Lookups tolerate
// synonyms: Has("approve") matches a set containing "accept".
func (s ActionSet) Has(raw string) bool {
	_, ok := s[NormalizeAction(raw)]
	return ok
}

func (s ActionSet) Contains(a Action) bool {
	_, ok := s[a]
	return ok
}

// List returns the actions in stable sorted order for response payloads.
func (s ActionSet) List() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, string(a))
	}
	sort.Strings(out)
	return out
}

// ActionFlags mirror the optional per-capability booleans some upstream
// endpoints attach to a request. A set flag grants the mapped action; an
// unset flag carries no signal either way.
type ActionFlags struct {
	CanAccept      bool `json:"canAccept"`
	CanReject      bool `json:"canReject"`
	CanReschedule  bool `json:"canReschedule"`
	CanManageStaff bool `json:"canManageStaff"`
	CanAdminAction bool `json:"canAdminAction"`
	CanDelete      bool `json:"canDelete"`
	CanConfirm     bool `json:"canConfirm"`
	CanDecline     bool `json:"canDecline"`
	CanView        bool `json:"canView"`
}

func (f ActionFlags) actions() []Action {
	var out []Action
	if f.CanAccept {
		out = append(out, ActionAccept)
	}
	if f.CanReject {
		out = append(out, ActionReject)
	}
	if f.CanReschedule {
		out = append(out, ActionReschedule)
	}
	if f.CanManageStaff {
		out = append(out, ActionManageStaff)
	}
	if f.CanAdminAction {
		out = append(out, ActionCancel)
	}
	if f.CanDelete {
		out = append(out, ActionDelete)
	}
	if f.CanConfirm {
		out = append(out, ActionConfirm)
	}
	if f.CanDecline {
		out = append(out, ActionDecline)
	}
	if f.CanView {
		out = append(out, ActionView)
	}
	return out
}

// Event is the canonical form of the event embedded in (or referenced by)
// a request.
type Event struct {
	Title    string        `json:"title"`
	Location string        `json:"location"`
	StartsAt *time.Time    `json:"starts_at,omitempty"`
	EndsAt   *time.Time    `json:"ends_at,omitempty"`
	Category EventCategory `json:"category"`
	Status   string        `json:"status,omitempty"`

	// Category-specific payload. Only the fields for the event's own
	// category are meaningful; the rest stay nil.
	TargetDonations  *int `json:"target_donations,omitempty"`
	MaxParticipants  *int `json:"max_participants,omitempty"`
	ExpectedAudience *int `json:"expected_audience,omitempty"`
}

// Request is the canonical request shape every downstream component consumes.
// It is produced exclusively by NormalizeRequest; nothing outside the
// normalization boundary reads raw upstream field names.
type Request struct {
	ID     string        `json:"id"`
	Status RequestStatus `json:"status"`

	// Legacy free-text decision fields, superseded by Status but still
	// consulted alongside it.
	AdminAction            string `json:"admin_action,omitempty"`
	CoordinatorFinalAction string `json:"coordinator_final_action,omitempty"`
	StakeholderFinalAction string `json:"stakeholder_final_action,omitempty"`

	CoordinatorID string `json:"coordinator_id,omitempty"`
	StakeholderID string `json:"stakeholder_id,omitempty"`
	ContactName   string `json:"contact_name,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`

	Event *Event `json:"event,omitempty"`

	// OriginalData present and non-empty marks an edit-type request
	// (a modification of an existing event rather than a creation).
	OriginalData json.RawMessage `json:"original_data,omitempty"`

	// Explicit permission sources sent by the upstream. When present they
	// are authoritative over any status-based inference.
	AllowedActions []string    `json:"allowed_actions,omitempty"`
	Flags          ActionFlags `json:"flags"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsEdit reports whether the request modifies an existing event. Edit
// requests never offer reschedule regardless of status.
func (r *Request) IsEdit() bool {
	trimmed := strings.TrimSpace(string(r.OriginalData))
	return trimmed != "" && trimmed != "{}" && trimmed != "null"
}

func (r *Request) hasExplicitAllowedActions() bool {
	return r.AllowedActions != nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
