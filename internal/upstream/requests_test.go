package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"unite-dashboard/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zap.NewNop())
}

func TestActionInput_WirePayload(t *testing.T) {
	t.Run("accept omits the note", func(t *testing.T) {
		in := ActionInput{Action: domain.ActionAccept, Note: "should not appear"}
		payload := in.wirePayload()
		assert.Equal(t, "accept", payload["action"])
		_, hasNote := payload["note"]
		assert.False(t, hasNote)
	})

	t.Run("confirm omits the note", func(t *testing.T) {
		in := ActionInput{Action: domain.ActionConfirm, Note: "nope"}
		_, hasNote := in.wirePayload()["note"]
		assert.False(t, hasNote)
	})

	t.Run("reject carries the note", func(t *testing.T) {
		in := ActionInput{Action: domain.ActionReject, Note: "venue conflict"}
		assert.Equal(t, "venue conflict", in.wirePayload()["note"])
	})

	t.Run("reschedule carries the date in UTC", func(t *testing.T) {
		date := time.Date(2026, 9, 12, 16, 0, 0, 0, time.FixedZone("WIB", 7*3600))
		in := ActionInput{Action: domain.ActionReschedule, RescheduledDate: &date}
		assert.Equal(t, "2026-09-12T09:00:00Z", in.wirePayload()["rescheduledDate"])
	})
}

func TestActionInput_LegacySuffix(t *testing.T) {
	assert.Equal(t, "coordinator-action", ActionInput{Role: "District Coordinator"}.legacySuffix())
	assert.Equal(t, "stakeholder-action", ActionInput{Role: "Stakeholder"}.legacySuffix())
	assert.Equal(t, "admin-action", ActionInput{Role: "System Administrator"}.legacySuffix())
	assert.Equal(t, "admin-action", ActionInput{}.legacySuffix())
}

func TestClient_ListRequests(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/event-requests", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("skip"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"requestId": "a", "status": "Approved"},
				{"requestId": "b", "status": "Pending_Admin_Review"},
			},
			"totalCount":   2,
			"statusCounts": map[string]int64{"Approved": 1},
		})
	})

	list, err := c.ListRequests(context.Background(), "tok", domain.ListParams{Skip: 5, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, int64(1), list.StatusCounts["Approved"])
	assert.Equal(t, domain.StatusApproved, list.Items[0].Status)
}

func TestClient_GetRequest_UnwrapsEnvelope(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"request": map[string]any{"requestId": "r1", "status": "Rejected"},
		})
	})

	req, err := c.GetRequest(context.Background(), "tok", "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", req.ID)
	assert.Equal(t, domain.StatusRejected, req.Status)
}

func TestClient_SubmitAction_LegacyFallback(t *testing.T) {
	var paths []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/event-requests/r1/actions" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	err := c.SubmitAction(context.Background(), "tok", "r1", ActionInput{
		Action: domain.ActionAccept,
		Role:   "District Coordinator",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/api/event-requests/r1/actions",
		"/api/event-requests/r1/coordinator-action",
	}, paths)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	t.Run("message field", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"message": "note is required"})
		})

		err := c.SubmitAction(context.Background(), "tok", "r1", ActionInput{Action: domain.ActionReject})
		var ue *Error
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, http.StatusUnprocessableEntity, ue.StatusCode)
		assert.Equal(t, "note is required", ue.Message)
	})

	t.Run("errors array", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"errors": []string{"bad date", "bad venue"}})
		})

		_, err := c.GetRequest(context.Background(), "tok", "r1")
		var ue *Error
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "bad date; bad venue", ue.Message)
	})

	t.Run("empty body falls back to status text", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := c.GetRequest(context.Background(), "tok", "r1")
		var ue *Error
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "Forbidden", ue.Message)
	})
}

func TestIsTimeout(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := c.GetRequest(ctx, "tok", "r1")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))

	assert.False(t, IsTimeout(&Error{StatusCode: 500, Message: "boom"}))
}
