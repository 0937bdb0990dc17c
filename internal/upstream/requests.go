package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"unite-dashboard/internal/domain"
)

// ActionInput is one mutating decision on a request. Role drives the
// legacy endpoint suffix when the unified actions route is unavailable.
type ActionInput struct {
	Action          domain.Action
	Note            string
	RescheduledDate *time.Time
	Role            string
}

// wirePayload builds the POST body. Accept and confirm must not carry a
// note field at all; the upstream validator rejects it.
func (in ActionInput) wirePayload() map[string]any {
	payload := map[string]any{"action": string(in.Action)}
	switch in.Action {
	case domain.ActionAccept, domain.ActionConfirm, domain.ActionDelete:
	default:
		if in.Note != "" {
			payload["note"] = in.Note
		}
	}
	if in.RescheduledDate != nil {
		payload["rescheduledDate"] = formatDate(*in.RescheduledDate)
	}
	return payload
}

// legacySuffix resolves the role-specific action endpoint used by older
// deployments. Unknown roles fall back to the admin route.
func (in ActionInput) legacySuffix() string {
	role := in.Role
	switch {
	case containsFold(role, "coordinator"):
		return "coordinator-action"
	case containsFold(role, "stakeholder"):
		return "stakeholder-action"
	default:
		return "admin-action"
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func (c *client) ListRequests(ctx context.Context, token string, params domain.ListParams) (*domain.RequestList, error) {
	params.Validate()

	query := url.Values{}
	query.Set("skip", strconv.Itoa(params.Skip))
	query.Set("limit", strconv.Itoa(params.Limit))
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}

	// Endpoints differ in how they name the collection and totals.
	var payload struct {
		Requests     []json.RawMessage `json:"requests"`
		Data         []json.RawMessage `json:"data"`
		Items        []json.RawMessage `json:"items"`
		Total        int64             `json:"total"`
		TotalCount   int64             `json:"totalCount"`
		StatusCounts map[string]int64  `json:"statusCounts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/event-requests", token, query, nil, &payload); err != nil {
		return nil, err
	}

	raw := payload.Requests
	if raw == nil {
		raw = payload.Data
	}
	if raw == nil {
		raw = payload.Items
	}

	total := payload.Total
	if total == 0 {
		total = payload.TotalCount
	}
	items := domain.NormalizeRequests(raw)
	if total == 0 {
		total = int64(len(items))
	}

	return &domain.RequestList{
		Items:        items,
		Total:        total,
		Skip:         params.Skip,
		Limit:        params.Limit,
		StatusCounts: payload.StatusCounts,
	}, nil
}

func (c *client) GetRequest(ctx context.Context, token, id string) (*domain.Request, error) {
	var payload json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/event-requests/"+url.PathEscape(id), token, nil, nil, &payload); err != nil {
		return nil, err
	}

	// Detail responses are sometimes wrapped in a request/data envelope.
	var envelope struct {
		Request json.RawMessage `json:"request"`
		Data    json.RawMessage `json:"data"`
	}
	doc := payload
	if json.Unmarshal(payload, &envelope) == nil {
		if len(envelope.Request) > 0 && string(envelope.Request) != "null" {
			doc = envelope.Request
		} else if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
			doc = envelope.Data
		}
	}

	return domain.NormalizeRequest(doc)
}

func (c *client) SubmitAction(ctx context.Context, token, id string, input ActionInput) error {
	path := "/api/event-requests/" + url.PathEscape(id) + "/actions"
	err := c.do(ctx, http.MethodPost, path, token, nil, input.wirePayload(), nil)
	if err == nil || !IsNotFound(err) {
		return err
	}

	// Older deployments only expose role-specific action routes.
	legacy := "/api/event-requests/" + url.PathEscape(id) + "/" + input.legacySuffix()
	c.logger.Debug("actions route missing, falling back to legacy suffix",
		zap.String("request_id", id), zap.String("path", legacy))
	return c.do(ctx, http.MethodPost, legacy, token, nil, input.wirePayload(), nil)
}

func (c *client) DeleteRequest(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/event-requests/"+url.PathEscape(id), token, nil, nil, nil)
}
