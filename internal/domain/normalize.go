package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// NormalizeRequest converts a raw upstream request document into the
// canonical Request. The upstream emits several shapes for the same entity
// depending on endpoint and record age: alternately-cased field names,
// actor ids flat or nested under sub-objects, timestamps as ISO strings,
// epoch numbers or wrapper objects. All of that tolerance lives here and
// nowhere else.
func NormalizeRequest(raw json.RawMessage) (*Request, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode request document: %w", err)
	}
	return normalize(m), nil
}

// NormalizeRequests converts a list response, skipping documents that fail
// to decode rather than failing the whole page.
func NormalizeRequests(raw []json.RawMessage) []Request {
	out := make([]Request, 0, len(raw))
	for _, doc := range raw {
		r, err := NormalizeRequest(doc)
		if err != nil || r.ID == "" {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func normalize(m map[string]any) *Request {
	r := &Request{
		ID:                     firstString(m, "Request_ID", "RequestId", "_id", "requestId"),
		Status:                 RequestStatus(firstString(m, "Status", "status")),
		AdminAction:            firstString(m, "AdminAction", "adminAction", "admin_action"),
		CoordinatorFinalAction: firstString(m, "CoordinatorFinalAction", "coordinatorFinalAction", "coordinator_final_action"),
		StakeholderFinalAction: firstString(m, "StakeholderFinalAction", "stakeholderFinalAction", "stakeholder_final_action"),
		CreatedAt:              firstTime(m, "createdAt", "CreatedAt", "created_at"),
	}

	r.CoordinatorID = actorID(m, "coordinator", "coordinator_id", "Coordinator_ID", "coordinatorId")
	r.StakeholderID = actorID(m, "stakeholder", "stakeholder_id", "Stakeholder_ID", "stakeholderId")

	if sub := subObject(m, "stakeholder", "Stakeholder"); sub != nil {
		r.ContactName = firstString(sub, "name", "Name", "fullName", "Full_Name")
		r.ContactEmail = firstString(sub, "email", "Email", "contactEmail")
	}
	if r.ContactEmail == "" {
		r.ContactEmail = firstString(m, "contactEmail", "ContactEmail", "email")
	}

	ev := subObject(m, "event", "Event", "eventDetails", "EventDetails")
	if ev == nil {
		// Some list endpoints flatten the event onto the request itself.
		ev = m
	}
	r.Event = normalizeEvent(ev)

	if od, ok := firstValue(m, "originalData", "OriginalData", "original_data"); ok {
		if encoded, err := json.Marshal(od); err == nil {
			r.OriginalData = encoded
		}
	}

	r.AllowedActions = allowedActions(m, ev)
	r.Flags = actionFlags(m, ev)

	return r
}

func normalizeEvent(m map[string]any) *Event {
	e := &Event{
		Title:    firstString(m, "title", "Title", "eventTitle", "Event_Title", "name"),
		Location: firstString(m, "location", "Location", "venue", "Venue", "address"),
		Status:   firstString(m, "eventStatus", "EventStatus"),
		StartsAt: firstTime(m, "startsAt", "startDate", "Start_Date", "StartTime", "Start_Time", "start"),
		EndsAt:   firstTime(m, "endsAt", "endDate", "End_Date", "EndTime", "End_Time", "end"),
	}
	// Event-level status lives under plain "status" only when the map is a
	// dedicated event object; on a flattened request that key is the
	// request status.
	if e.Status == "" {
		if _, isRequest := firstValue(m, "Request_ID", "RequestId", "requestId"); !isRequest {
			e.Status = firstString(m, "status", "Status")
		}
	}

	e.Category = CategoryKind(firstString(m, "category", "Category", "eventCategory", "Event_Category", "type"))

	e.TargetDonations = firstInt(m, "targetDonations", "TargetDonations", "target_donation_count", "targetBloodUnits", "Target_Blood_Units")
	e.MaxParticipants = firstInt(m, "maxParticipants", "MaxParticipants", "max_participants", "participantLimit")
	e.ExpectedAudience = firstInt(m, "expectedAudience", "ExpectedAudience", "expected_audience_size", "audienceSize")

	if e.Title == "" && e.Location == "" && e.StartsAt == nil {
		return nil
	}
	return e
}

func actorID(m map[string]any, nestedKey string, flatKeys ...string) string {
	if id := firstString(m, flatKeys...); id != "" {
		return id
	}
	if sub := subObject(m, nestedKey); sub != nil {
		return firstString(sub, "_id", "id", "Id", flatKeys[0])
	}
	return ""
}

func allowedActions(maps ...map[string]any) []string {
	for _, m := range maps {
		if m == nil {
			continue
		}
		v, ok := firstValue(m, "allowedActions", "AllowedActions", "allowed_actions")
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(list))
		for _, entry := range list {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func actionFlags(maps ...map[string]any) ActionFlags {
	return ActionFlags{
		CanAccept:      flagTrue(maps, "canAccept"),
		CanReject:      flagTrue(maps, "canReject"),
		CanReschedule:  flagTrue(maps, "canReschedule"),
		CanManageStaff: flagTrue(maps, "canManageStaff"),
		CanAdminAction: flagTrue(maps, "canAdminAction"),
		CanDelete:      flagTrue(maps, "canDelete"),
		CanConfirm:     flagTrue(maps, "canConfirm"),
		CanDecline:     flagTrue(maps, "canDecline"),
		CanView:        flagTrue(maps, "canView"),
	}
}

func flagTrue(maps []map[string]any, key string) bool {
	for _, m := range maps {
		if m == nil {
			continue
		}
		if b, ok := m[key].(bool); ok && b {
			return true
		}
	}
	return false
}

func firstValue(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(m map[string]any, keys ...string) string {
	v, ok := firstValue(m, keys...)
	if !ok {
		return ""
	}
	return stringify(v)
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case map[string]any:
		// Mongo extended-JSON object id.
		if oid, ok := s["$oid"].(string); ok {
			return oid
		}
	}
	return ""
}

func firstInt(m map[string]any, keys ...string) *int {
	v, ok := firstValue(m, keys...)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return &i
		}
	}
	return nil
}

func firstTime(m map[string]any, keys ...string) *time.Time {
	v, ok := firstValue(m, keys...)
	if !ok {
		return nil
	}
	return parseTimestamp(v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(v any) *time.Time {
	switch t := v.(type) {
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed
			}
		}
		if epoch, err := strconv.ParseFloat(t, 64); err == nil {
			return epochTime(epoch)
		}
	case float64:
		return epochTime(t)
	case map[string]any:
		// Epoch-in-object wrappers: {"$date": ...} or {"epoch": ...}.
		if inner, ok := firstValue(t, "$date", "epoch", "seconds"); ok {
			return parseTimestamp(inner)
		}
	}
	return nil
}

func epochTime(epoch float64) *time.Time {
	// The upstream mixes second and millisecond precision.
	var parsed time.Time
	if epoch > 1e12 {
		parsed = time.UnixMilli(int64(epoch)).UTC()
	} else {
		parsed = time.Unix(int64(epoch), 0).UTC()
	}
	return &parsed
}

func subObject(m map[string]any, keys ...string) map[string]any {
	v, ok := firstValue(m, keys...)
	if !ok {
		return nil
	}
	sub, _ := v.(map[string]any)
	return sub
}
