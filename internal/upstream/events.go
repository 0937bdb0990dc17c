package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"unite-dashboard/internal/domain"
)

func (c *client) CreateEvent(ctx context.Context, token string, input domain.CreateEventInput, direct bool) error {
	path := "/api/events"
	if direct {
		path = "/api/events/direct"
	}

	payload := map[string]any{
		"title":    input.Title,
		"location": input.Location,
		"startsAt": formatDate(input.StartsAt),
		"endsAt":   formatDate(input.EndsAt),
		"category": string(input.Category),
	}
	if input.TargetDonations != nil {
		payload["targetDonations"] = *input.TargetDonations
	}
	if input.MaxParticipants != nil {
		payload["maxParticipants"] = *input.MaxParticipants
	}
	if input.ExpectedAudience != nil {
		payload["expectedAudience"] = *input.ExpectedAudience
	}
	if input.PosterURL != "" {
		payload["posterUrl"] = input.PosterURL
	}

	return c.do(ctx, http.MethodPost, path, token, nil, payload, nil)
}

func (c *client) PublicEvents(ctx context.Context) ([]domain.PublicEvent, error) {
	var payload struct {
		Events []json.RawMessage `json:"events"`
		Data   []json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/public/events", "", nil, nil, &payload); err != nil {
		return nil, err
	}

	raw := payload.Events
	if raw == nil {
		raw = payload.Data
	}

	out := make([]domain.PublicEvent, 0, len(raw))
	for _, doc := range raw {
		req, err := domain.NormalizeRequest(doc)
		if err != nil || req.Event == nil {
			continue
		}
		out = append(out, domain.PublicEvent{
			ID:       req.ID,
			Title:    req.Event.Title,
			Location: req.Event.Location,
			StartsAt: req.Event.StartsAt,
			EndsAt:   req.Event.EndsAt,
			Category: req.Event.Category,
			Status:   req.Event.Status,
		})
	}
	return out, nil
}
