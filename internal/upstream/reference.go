package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"unite-dashboard/internal/domain"
)

// Reference endpoints share a shape: either a bare array or a wrapped
// {data: [...]} list of loosely-cased documents.
func (c *client) listReference(ctx context.Context, token, path string) ([]map[string]any, error) {
	var payload json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, token, nil, nil, &payload); err != nil {
		return nil, err
	}

	var docs []map[string]any
	if json.Unmarshal(payload, &docs) == nil {
		return docs, nil
	}

	var wrapped struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Data, nil
}

func (c *client) ListStakeholders(ctx context.Context, token string) ([]domain.Stakeholder, error) {
	docs, err := c.listReference(ctx, token, "/api/stakeholders")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Stakeholder, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.Stakeholder{
			ID:           refString(doc, "_id", "id", "Stakeholder_ID"),
			Name:         refString(doc, "name", "Name", "fullName"),
			Email:        refString(doc, "email", "Email"),
			Organization: refString(doc, "organization", "Organization", "orgName"),
			DistrictID:   refString(doc, "district_id", "District_ID", "districtId"),
			StaffType:    refString(doc, "staffType", "Staff_Type", "staff_type"),
		})
	}
	return out, nil
}

func (c *client) ListCoordinators(ctx context.Context, token string) ([]domain.Coordinator, error) {
	docs, err := c.listReference(ctx, token, "/api/coordinators")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Coordinator, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.Coordinator{
			ID:         refString(doc, "_id", "id", "Coordinator_ID"),
			Name:       refString(doc, "name", "Name", "fullName"),
			Email:      refString(doc, "email", "Email"),
			DistrictID: refString(doc, "district_id", "District_ID", "districtId"),
		})
	}
	return out, nil
}

func (c *client) ListDistricts(ctx context.Context, token string) ([]domain.District, error) {
	docs, err := c.listReference(ctx, token, "/api/districts")
	if err != nil {
		return nil, err
	}
	out := make([]domain.District, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.District{
			ID:   refString(doc, "_id", "id", "District_ID"),
			Name: refString(doc, "name", "Name", "districtName"),
			Code: refString(doc, "code", "Code"),
		})
	}
	return out, nil
}

func refString(doc map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && s != "" {
			return s
		}
		if sub, ok := doc[k].(map[string]any); ok {
			if oid, ok := sub["$oid"].(string); ok {
				return oid
			}
		}
	}
	return ""
}
