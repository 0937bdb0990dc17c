package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRequest_ModernShape(t *testing.T) {
	raw := json.RawMessage(`{
		"requestId": "req-42",
		"status": "Pending_Coordinator_Review",
		"coordinator_id": "c1",
		"stakeholder": {"_id": "s1", "name": "Dewi", "email": "dewi@example.org"},
		"event": {
			"title": "Community Blood Drive",
			"location": "Town Hall",
			"category": "blood_drive",
			"startsAt": "2026-09-12T09:00:00Z",
			"targetDonations": 120
		},
		"allowedActions": ["view", "accept"],
		"canReject": true
	}`)

	r, err := NormalizeRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, "req-42", r.ID)
	assert.Equal(t, StatusPendingCoordinatorReview, r.Status)
	assert.Equal(t, "c1", r.CoordinatorID)
	assert.Equal(t, "s1", r.StakeholderID)
	assert.Equal(t, "Dewi", r.ContactName)
	assert.Equal(t, "dewi@example.org", r.ContactEmail)

	require.NotNil(t, r.Event)
	assert.Equal(t, "Community Blood Drive", r.Event.Title)
	assert.Equal(t, CategoryBloodDrive, r.Event.Category)
	require.NotNil(t, r.Event.TargetDonations)
	assert.Equal(t, 120, *r.Event.TargetDonations)
	require.NotNil(t, r.Event.StartsAt)
	assert.Equal(t, 2026, r.Event.StartsAt.Year())

	assert.Equal(t, []string{"view", "accept"}, r.AllowedActions)
	assert.True(t, r.Flags.CanReject)
}

func TestNormalizeRequest_LegacyShape(t *testing.T) {
	raw := json.RawMessage(`{
		"Request_ID": {"$oid": "65a1b2c3d4"},
		"Status": "",
		"AdminAction": "Rescheduled to next week",
		"Stakeholder_ID": "s9",
		"Event_Title": "Donor Training",
		"Venue": "Clinic B",
		"Start_Date": 1757664000,
		"type": "training_session",
		"originalData": {"Event_Title": "Old Training"}
	}`)

	r, err := NormalizeRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, "65a1b2c3d4", r.ID)
	assert.Equal(t, "Rescheduled to next week", r.AdminAction)
	assert.Equal(t, "s9", r.StakeholderID)
	assert.True(t, r.IsEdit())

	require.NotNil(t, r.Event)
	assert.Equal(t, "Donor Training", r.Event.Title)
	assert.Equal(t, "Clinic B", r.Event.Location)
	assert.Equal(t, CategoryTraining, r.Event.Category)
	require.NotNil(t, r.Event.StartsAt)
	assert.Equal(t, time.Date(2025, 9, 12, 8, 0, 0, 0, time.UTC), r.Event.StartsAt.UTC())

	// No explicit permissions on legacy records.
	assert.Nil(t, r.AllowedActions)
}

func TestNormalizeRequest_TimestampWrappers(t *testing.T) {
	raw := json.RawMessage(`{
		"requestId": "r1",
		"createdAt": {"$date": 1757664000000},
		"event": {"title": "X", "startsAt": {"epoch": "1757664000"}}
	}`)

	r, err := NormalizeRequest(raw)
	require.NoError(t, err)

	require.NotNil(t, r.CreatedAt)
	require.NotNil(t, r.Event)
	require.NotNil(t, r.Event.StartsAt)
	assert.Equal(t, r.CreatedAt.UTC(), r.Event.StartsAt.UTC())
}

func TestNormalizeRequest_MalformedDocument(t *testing.T) {
	_, err := NormalizeRequest(json.RawMessage(`[1,2,3]`))
	assert.Error(t, err)

	_, err = NormalizeRequest(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestNormalizeRequests_SkipsBadDocuments(t *testing.T) {
	docs := []json.RawMessage{
		json.RawMessage(`{"requestId": "a"}`),
		json.RawMessage(`"just a string"`),
		json.RawMessage(`{"noId": true}`),
		json.RawMessage(`{"requestId": "b"}`),
	}

	out := NormalizeRequests(docs)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}
