package domain

import "strings"

// Viewer is the authenticated dashboard user as seen by the derivation
// logic: an id, a free-form role string, and two independent admin axes.
// IsAdmin means system-level administrator; IsStaffTypeAdmin is the
// staff-classification axis and deliberately does not imply IsAdmin.
type Viewer struct {
	ID               string `json:"id"`
	Role             string `json:"role"`
	IsAdmin          bool   `json:"is_admin"`
	IsStaffTypeAdmin bool   `json:"is_staff_type_admin"`
}

// NewViewer derives the admin flags from the role and staff-type strings.
// A role counts as system admin only when it carries both a "sys"/"system"
// marker and "admin"; a bare staff-level "Admin" is a different axis.
func NewViewer(id, role, staffType string) Viewer {
	return Viewer{
		ID:               id,
		Role:             role,
		IsAdmin:          isSystemAdminRole(role),
		IsStaffTypeAdmin: containsFold(staffType, "admin"),
	}
}

func isSystemAdminRole(role string) bool {
	r := strings.ToLower(role)
	return strings.Contains(r, "sys") && strings.Contains(r, "admin")
}

func (v Viewer) IsCoordinator() bool {
	return containsFold(v.Role, "coordinator")
}

func (v Viewer) IsStakeholder() bool {
	return containsFold(v.Role, "stakeholder")
}

// IsZero reports whether identity resolution failed and the viewer carries
// no usable identity.
func (v Viewer) IsZero() bool {
	return v.ID == "" && v.Role == ""
}
